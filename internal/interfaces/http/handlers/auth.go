// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/domain/session"
	"github.com/your-org/storefront-bff/internal/infrastructure/upstream"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// AuthHandler handles session lifecycle endpoints
type AuthHandler struct {
	sessions *session.Manager
	auth     SessionRevoker
	logger   *logrus.Logger
}

// SessionRevoker revokes the caller's upstream session
type SessionRevoker interface {
	Logout(ctx context.Context) error
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, auth SessionRevoker, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, auth: auth, logger: logger}
}

// Logout handles POST /auth/logout. The local session is torn down even when
// the upstream call fails: the auth signal is gone either way, and a cart left
// behind would leak to the next sign-in.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	token, _ := middleware.GetTokenFromContext(c)
	ctx := upstream.WithToken(c.Request.Context(), token)

	if err := h.auth.Logout(ctx); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Warn("Upstream logout failed")
	}

	if err := h.sessions.Logout(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/checkout"
	"github.com/your-org/storefront-bff/internal/domain/session"
	"github.com/your-org/storefront-bff/internal/infrastructure/upstream"
)

// respondError translates core errors into HTTP responses. Upstream
// rejections keep their own status and wording; everything else gets a
// generic message so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	var apiErr *upstream.APIError

	switch {
	case errors.Is(err, checkout.ErrSubmitInFlight),
		errors.Is(err, session.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoAddress),
		errors.Is(err, checkout.ErrNotReady):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Upstream request timed out"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream request failed"})
	}
}

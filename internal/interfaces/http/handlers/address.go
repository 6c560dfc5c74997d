// internal/interfaces/http/handlers/address.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/address"
	"github.com/your-org/storefront-bff/internal/domain/session"
)

// AddressHandler handles address endpoints
type AddressHandler struct {
	sessions  *session.Manager
	addresses AddressReader
}

// AddressReader is the upstream address surface the handler consumes
type AddressReader interface {
	List(ctx context.Context) ([]address.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(sessions *session.Manager, addresses AddressReader) *AddressHandler {
	return &AddressHandler{sessions: sessions, addresses: addresses}
}

// ListAddresses handles GET /addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	_, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	addrs, err := h.addresses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addrs,
	})
}

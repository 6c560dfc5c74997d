// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/address"
	"github.com/your-org/storefront-bff/internal/domain/checkout"
	"github.com/your-org/storefront-bff/internal/domain/order"
	"github.com/your-org/storefront-bff/internal/domain/session"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	sessions *session.Manager
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *session.Manager) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

// selectionRequest carries the user's checkout selections
type selectionRequest struct {
	AddressID     *uint   `json:"address_id"`
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
}

// checkoutView is the response shape for the checkout flow
type checkoutView struct {
	IntentID      string              `json:"intent_id"`
	State         checkout.State      `json:"state"`
	Addresses     []address.Address   `json:"addresses"`
	AddressID     uint                `json:"address_id"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	Note          string              `json:"note,omitempty"`
	LastError     string              `json:"last_error,omitempty"`
	Order         *order.Order        `json:"order,omitempty"`
}

func newCheckoutView(flow *checkout.Flow) checkoutView {
	addressID, method, note := flow.Selection()
	return checkoutView{
		IntentID:      flow.IntentID(),
		State:         flow.State(),
		Addresses:     flow.Addresses(),
		AddressID:     addressID,
		PaymentMethod: method,
		Note:          note,
		LastError:     flow.LastError(),
		Order:         flow.Order(),
	}
}

// BeginCheckout handles POST /checkout
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	flow, err := s.BeginCheckout(c.Request.Context())
	if err != nil {
		// An empty cart is a terminal flow state, not a request failure; the
		// view carries it for the client to render.
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Checkout started",
				"data":    newCheckoutView(flow),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started",
		"data":    newCheckoutView(flow),
	})
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	flow := s.Checkout()
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No checkout in progress",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout retrieved successfully",
		"data":    newCheckoutView(flow),
	})
}

// UpdateSelection handles PUT /checkout/selection
func (h *CheckoutHandler) UpdateSelection(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	flow := s.Checkout()
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No checkout in progress",
		})
		return
	}

	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.PaymentMethod != nil {
		method := order.PaymentMethod(*req.PaymentMethod)
		if !method.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment method",
			})
			return
		}
		if err := flow.SelectPaymentMethod(method); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.AddressID != nil {
		if err := flow.SelectAddress(*req.AddressID); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Note != nil {
		if err := flow.SetNote(*req.Note); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout updated successfully",
		"data":    newCheckoutView(flow),
	})
}

// SubmitCheckout handles POST /checkout/submit
func (h *CheckoutHandler) SubmitCheckout(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	flow := s.Checkout()
	if flow == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No checkout in progress",
		})
		return
	}

	result, err := flow.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// The ordered cart is gone on the server; drop the local copy too.
	s.Store().Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/order"
	"github.com/your-org/storefront-bff/internal/domain/session"
)

// OrderHandler handles order endpoints. Orders are owned by the upstream; this
// handler is a read-and-cancel pass-through with local lifecycle validation.
type OrderHandler struct {
	sessions *session.Manager
	orders   OrderReader
}

// OrderReader is the upstream order surface the handler consumes
type OrderReader interface {
	Get(ctx context.Context, id uint) (*order.Order, error)
	List(ctx context.Context, params order.ListParams) (*order.List, error)
	Cancel(ctx context.Context, id uint, reason string) error
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(sessions *session.Manager, orders OrderReader) *OrderHandler {
	return &OrderHandler{sessions: sessions, orders: orders}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	_, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	params := order.ListParams{
		Page:   page,
		Limit:  limit,
		Status: order.Status(c.Query("status")),
	}

	list, err := h.orders.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    list.Orders,
		"pagination": gin.H{
			"total":       list.Total,
			"page":        list.Page,
			"limit":       list.Limit,
			"total_pages": list.TotalPages,
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	_, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orders.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	_, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req order.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// Reject cancellations the lifecycle forbids before bothering the upstream
	o, err := h.orders.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if !o.Cancellable() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order can no longer be cancelled",
		})
		return
	}

	if err := h.orders.Cancel(c.Request.Context(), uint(id), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
	})
}

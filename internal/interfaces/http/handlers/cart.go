// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-bff/internal/domain/cart"
	"github.com/your-org/storefront-bff/internal/domain/session"
	"github.com/your-org/storefront-bff/internal/infrastructure/upstream"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions *session.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *session.Manager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// cartView is the response shape for the session's cart
type cartView struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Loading    bool            `json:"loading"`
}

func newCartView(snapshot cart.Snapshot) cartView {
	return cartView{
		Items:      snapshot.Items,
		TotalItems: snapshot.TotalItems,
		TotalPrice: snapshot.TotalPrice,
		Loading:    snapshot.Loading,
	}
}

// sessionContext resolves the caller's session and a context carrying their
// upstream token
func sessionContext(c *gin.Context, sessions *session.Manager) (*session.Session, gin.H) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return nil, gin.H{"error": "Authentication required"}
	}
	token, _ := middleware.GetTokenFromContext(c)
	ctx := upstream.WithToken(c.Request.Context(), token)
	c.Request = c.Request.WithContext(ctx)
	return sessions.Session(ctx, userID), nil
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

// RefreshCart handles POST /cart/refresh
func (h *CartHandler) RefreshCart(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	if err := s.Cart().Refresh(c.Request.Context(), true); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart refreshed successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := s.Cart().AddToCart(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := s.Cart().UpdateItem(c.Request.Context(), uint(itemID), req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	if _, err := s.Cart().RemoveItem(c.Request.Context(), uint(itemID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	s, errBody := sessionContext(c, h.sessions)
	if errBody != nil {
		c.JSON(http.StatusUnauthorized, errBody)
		return
	}

	if err := s.Cart().ClearCart(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    newCartView(s.Store().Snapshot()),
	})
}

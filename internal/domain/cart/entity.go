// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents one line of the cart as confirmed by the upstream API.
// Price and Subtotal are server-computed snapshots and are never recomputed
// locally; discounts and rounding are the upstream's business.
type Item struct {
	ID        uint            `json:"id"`
	CartID    uint            `json:"cart_id"`
	ProductID uint            `json:"product_id"`
	VariantID *uint           `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductInfo    `json:"product,omitempty"`
	Variant   *VariantInfo    `json:"variant,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductInfo carries denormalized product display data so the UI can render
// a line item without a product fetch
type ProductInfo struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Slug   string         `json:"slug"`
	Images []ProductImage `json:"images,omitempty"`
}

// ProductImage represents a product image reference
type ProductImage struct {
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// VariantInfo carries denormalized variant display data
type VariantInfo struct {
	ID            uint   `json:"id"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	StockQuantity int    `json:"stock_quantity"`
}

// Cart is the upstream's full cart snapshot. Every successful mutation
// returns one of these and it replaces the local view wholesale.
type Cart struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Items     []Item          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents update cart item request. Quantity zero is not
// a valid update; removal is a distinct operation.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

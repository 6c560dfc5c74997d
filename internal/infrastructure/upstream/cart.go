// internal/infrastructure/upstream/cart.go
package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-bff/internal/domain/cart"
)

// CartGateway implements cart.Gateway against the upstream cart endpoints.
// Quantity and stock validation stay server-side; this gateway only carries
// the calls and the full snapshots they return.
type CartGateway struct {
	client *Client
}

// NewCartGateway creates a cart gateway
func NewCartGateway(client *Client) *CartGateway {
	return &CartGateway{client: client}
}

// Fetch returns the current server cart
func (g *CartGateway) Fetch(ctx context.Context) (*cart.Cart, error) {
	var out cart.Cart
	if err := g.client.do(ctx, http.MethodGet, "/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem adds an item and returns the full updated cart
func (g *CartGateway) AddItem(ctx context.Context, req *cart.AddToCartRequest) (*cart.Cart, error) {
	var out cart.Cart
	if err := g.client.do(ctx, http.MethodPost, "/cart/items", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem changes a line's quantity and returns the full updated cart
func (g *CartGateway) UpdateItem(ctx context.Context, itemID uint, quantity int) (*cart.Cart, error) {
	var out cart.Cart
	req := &cart.UpdateItemRequest{Quantity: quantity}
	path := fmt.Sprintf("/cart/items/%d", itemID)
	if err := g.client.do(ctx, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveItem deletes a line and returns the full updated cart
func (g *CartGateway) RemoveItem(ctx context.Context, itemID uint) (*cart.Cart, error) {
	var out cart.Cart
	path := fmt.Sprintf("/cart/items/%d", itemID)
	if err := g.client.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Clear empties the server cart
func (g *CartGateway) Clear(ctx context.Context) error {
	return g.client.do(ctx, http.MethodDelete, "/cart/clear", nil, nil, nil)
}

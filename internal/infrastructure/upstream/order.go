// internal/infrastructure/upstream/order.go
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/storefront-bff/internal/domain/order"
)

// OrderGateway talks to the upstream order endpoints
type OrderGateway struct {
	client *Client
}

// NewOrderGateway creates an order gateway
func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

// Create places an order from the user's server cart. The idempotency key is
// the checkout intent ID, so replaying the same intent cannot create a
// second order upstream.
func (g *OrderGateway) Create(ctx context.Context, req *order.CreateOrderRequest, idempotencyKey string) (*order.Order, error) {
	var out order.Order
	headers := map[string]string{"X-Idempotency-Key": idempotencyKey}
	if err := g.client.do(ctx, http.MethodPost, "/orders", headers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one of the user's orders
func (g *OrderGateway) Get(ctx context.Context, id uint) (*order.Order, error) {
	var out order.Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns a page of the user's orders
func (g *OrderGateway) List(ctx context.Context, params order.ListParams) (*order.List, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	path := "/orders"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out order.List
	pagination, err := g.client.doPaginated(ctx, http.MethodGet, path, nil, nil, &out.Orders)
	if err != nil {
		return nil, err
	}
	if pagination != nil {
		out.Total = pagination.Total
		out.Page = pagination.Page
		out.Limit = pagination.Limit
		out.TotalPages = pagination.TotalPages
	} else {
		out.Total = int64(len(out.Orders))
		out.Page = params.Page
		out.Limit = params.Limit
	}
	return &out, nil
}

// Cancel cancels one of the user's orders
func (g *OrderGateway) Cancel(ctx context.Context, id uint, reason string) error {
	path := fmt.Sprintf("/orders/%d/cancel", id)
	req := &order.CancelOrderRequest{Reason: reason}
	return g.client.do(ctx, http.MethodPost, path, nil, req, nil)
}

// internal/infrastructure/upstream/payment.go
package upstream

import (
	"context"
	"net/http"
)

// initiatePaymentRequest is the upstream payment initiation payload
type initiatePaymentRequest struct {
	OrderID uint `json:"order_id"`
}

// initiatePaymentResponse carries the gateway redirect target. A missing
// payment_url means initiation did not produce a redirect.
type initiatePaymentResponse struct {
	PaymentURL string `json:"payment_url,omitempty"`
	Message    string `json:"message,omitempty"`
}

// PaymentGateway initiates online payments for created orders
type PaymentGateway struct {
	client *Client
}

// NewPaymentGateway creates a payment gateway
func NewPaymentGateway(client *Client) *PaymentGateway {
	return &PaymentGateway{client: client}
}

// Initiate requests a payment URL for the order. An empty URL with a nil
// error still means the caller cannot redirect; order creation is never
// retried because of it.
func (g *PaymentGateway) Initiate(ctx context.Context, orderID uint) (string, error) {
	var out initiatePaymentResponse
	req := &initiatePaymentRequest{OrderID: orderID}
	if err := g.client.do(ctx, http.MethodPost, "/payments/initiate", nil, req, &out); err != nil {
		return "", err
	}
	return out.PaymentURL, nil
}

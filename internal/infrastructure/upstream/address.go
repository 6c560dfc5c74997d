// internal/infrastructure/upstream/address.go
package upstream

import (
	"context"
	"net/http"

	"github.com/your-org/storefront-bff/internal/domain/address"
)

// AddressGateway reads the user's saved addresses from the upstream API
type AddressGateway struct {
	client *Client
}

// NewAddressGateway creates an address gateway
func NewAddressGateway(client *Client) *AddressGateway {
	return &AddressGateway{client: client}
}

// List returns the user's addresses in upstream order
func (g *AddressGateway) List(ctx context.Context) ([]address.Address, error) {
	var out []address.Address
	if err := g.client.do(ctx, http.MethodGet, "/addresses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

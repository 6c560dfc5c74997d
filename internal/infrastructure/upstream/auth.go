// internal/infrastructure/upstream/auth.go
package upstream

import (
	"context"
	"net/http"
)

// AuthGateway forwards session lifecycle calls to the upstream auth service.
// Login, registration and token refresh happen directly against the upstream;
// this gateway only carries the logout so the server-side session is revoked
// when the local one is dropped.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates an auth gateway
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Logout revokes the session upstream
func (g *AuthGateway) Logout(ctx context.Context) error {
	return g.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

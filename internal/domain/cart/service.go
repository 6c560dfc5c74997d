// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
)

// Gateway is the remote cart contract. Every mutating call returns the full
// updated cart, never a delta.
type Gateway interface {
	Fetch(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, req *AddToCartRequest) (*Cart, error)
	UpdateItem(ctx context.Context, itemID uint, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, itemID uint) (*Cart, error)
	Clear(ctx context.Context) error
}

// Service orchestrates cart operations for one session. Every operation
// follows the same shape: loading on, gateway call, on success replace the
// store with the returned snapshot, on failure leave the store untouched and
// hand the error back, loading off on every path. There are no retries and
// no optimistic local mutations.
type Service struct {
	gateway Gateway
	store   *Store
}

// NewService creates a cart service bound to a store
func NewService(gateway Gateway, store *Store) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
	}
}

// Store returns the store this service writes to
func (s *Service) Store() *Store {
	return s.store
}

// Refresh fetches the server cart into the store. Without an authenticated
// session there is no server cart, so the store is cleared instead.
func (s *Service) Refresh(ctx context.Context, authenticated bool) error {
	if !authenticated {
		s.store.Clear()
		return nil
	}

	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	seq := s.store.NextSeq()
	serverCart, err := s.gateway.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh cart: %w", err)
	}

	s.store.Replace(seq, serverCart.Items)
	return nil
}

// AddToCart adds an item and lands the returned snapshot in the store
func (s *Service) AddToCart(ctx context.Context, req *AddToCartRequest) (*Cart, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	seq := s.store.NextSeq()
	serverCart, err := s.gateway.AddItem(ctx, req)
	if err != nil {
		return nil, err
	}

	s.store.Replace(seq, serverCart.Items)
	return serverCart, nil
}

// UpdateItem changes a line's quantity
func (s *Service) UpdateItem(ctx context.Context, itemID uint, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	seq := s.store.NextSeq()
	serverCart, err := s.gateway.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}

	s.store.Replace(seq, serverCart.Items)
	return serverCart, nil
}

// RemoveItem deletes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, itemID uint) (*Cart, error) {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	seq := s.store.NextSeq()
	serverCart, err := s.gateway.RemoveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	s.store.Replace(seq, serverCart.Items)
	return serverCart, nil
}

// ClearCart empties the server cart, then the local store
func (s *Service) ClearCart(ctx context.Context) error {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	if err := s.gateway.Clear(ctx); err != nil {
		return err
	}

	s.store.Clear()
	return nil
}

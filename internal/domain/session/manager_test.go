// internal/domain/session/manager_test.go
package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-bff/internal/domain/address"
	"github.com/your-org/storefront-bff/internal/domain/cart"
	"github.com/your-org/storefront-bff/internal/domain/checkout"
	"github.com/your-org/storefront-bff/internal/domain/order"
	infracache "github.com/your-org/storefront-bff/internal/infrastructure/cache"
)

type fakeCartGateway struct {
	mu    sync.Mutex
	cart  *cart.Cart
	err   error
	calls int
}

func (g *fakeCartGateway) Fetch(ctx context.Context) (*cart.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.cart, nil
}

func (g *fakeCartGateway) AddItem(ctx context.Context, req *cart.AddToCartRequest) (*cart.Cart, error) {
	return g.Fetch(ctx)
}

func (g *fakeCartGateway) UpdateItem(ctx context.Context, itemID uint, quantity int) (*cart.Cart, error) {
	return g.Fetch(ctx)
}

func (g *fakeCartGateway) RemoveItem(ctx context.Context, itemID uint) (*cart.Cart, error) {
	return g.Fetch(ctx)
}

func (g *fakeCartGateway) Clear(ctx context.Context) error { return g.err }

type fakeAddressGateway struct {
	addresses []address.Address
}

func (g *fakeAddressGateway) List(ctx context.Context) ([]address.Address, error) {
	return g.addresses, nil
}

type fakeOrderGateway struct{}

func (g *fakeOrderGateway) Create(ctx context.Context, req *order.CreateOrderRequest, idempotencyKey string) (*order.Order, error) {
	return &order.Order{ID: 1}, nil
}

type fakePaymentGateway struct{}

func (g *fakePaymentGateway) Initiate(ctx context.Context, orderID uint) (string, error) {
	return "", nil
}

// memoryCache is an in-process SnapshotCache double
type memoryCache struct {
	mu    sync.Mutex
	items map[uint][]cart.Item
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[uint][]cart.Item)}
}

func (c *memoryCache) Save(ctx context.Context, userID uint, items []cart.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[userID] = items
	return nil
}

func (c *memoryCache) Load(ctx context.Context, userID uint) ([]cart.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.items[userID]
	if !ok {
		return nil, infracache.ErrCacheMiss
	}
	return items, nil
}

func (c *memoryCache) Delete(ctx context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}

func item(id uint, quantity int, subtotal string) cart.Item {
	return cart.Item{
		ID:       id,
		Quantity: quantity,
		Subtotal: decimal.RequireFromString(subtotal),
	}
}

func testGateways(cartGW *fakeCartGateway) Gateways {
	return Gateways{
		Cart:    cartGW,
		Address: &fakeAddressGateway{addresses: []address.Address{{ID: 1, IsDefault: true}}},
		Order:   &fakeOrderGateway{},
		Payment: &fakePaymentGateway{},
	}
}

func TestManagerSessionRefreshesOnFirstSight(t *testing.T) {
	cartGW := &fakeCartGateway{cart: &cart.Cart{Items: []cart.Item{item(1, 2, "10.00")}}}
	m := NewManager(testGateways(cartGW), nil, nil)

	s := m.Session(context.Background(), 7)

	require.Eventually(t, func() bool {
		return s.Store().TotalItems() == 2
	}, time.Second, 10*time.Millisecond, "background refresh lands the server cart")
}

func TestManagerSessionIsReusedPerUser(t *testing.T) {
	cartGW := &fakeCartGateway{cart: &cart.Cart{}}
	m := NewManager(testGateways(cartGW), nil, nil)

	a := m.Session(context.Background(), 7)
	b := m.Session(context.Background(), 7)
	other := m.Session(context.Background(), 8)

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestManagerSessionRehydratesFromCache(t *testing.T) {
	snapshots := newMemoryCache()
	require.NoError(t, snapshots.Save(context.Background(), 7, []cart.Item{item(1, 3, "30.00")}))

	// The upstream fetch fails, so anything visible came from the cache.
	cartGW := &fakeCartGateway{err: errors.New("upstream down")}
	m := NewManager(testGateways(cartGW), snapshots, nil)

	s := m.Session(context.Background(), 7)
	assert.Equal(t, 3, s.Store().TotalItems())
}

func TestManagerPersistsSnapshotsOnChange(t *testing.T) {
	snapshots := newMemoryCache()
	cartGW := &fakeCartGateway{cart: &cart.Cart{Items: []cart.Item{item(1, 2, "10.00")}}}
	m := NewManager(testGateways(cartGW), snapshots, nil)

	m.Session(context.Background(), 7)

	require.Eventually(t, func() bool {
		items, err := snapshots.Load(context.Background(), 7)
		return err == nil && len(items) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestManagerLogoutClearsEverything(t *testing.T) {
	snapshots := newMemoryCache()
	cartGW := &fakeCartGateway{cart: &cart.Cart{Items: []cart.Item{item(1, 2, "10.00")}}}
	m := NewManager(testGateways(cartGW), snapshots, nil)

	s := m.Session(context.Background(), 7)
	require.Eventually(t, func() bool {
		return s.Store().TotalItems() == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, m.Logout(context.Background(), 7))

	assert.Empty(t, s.Store().Items())
	_, err := snapshots.Load(context.Background(), 7)
	assert.ErrorIs(t, err, infracache.ErrCacheMiss)

	// A fresh session replaces the dropped one.
	fresh := m.Session(context.Background(), 7)
	assert.NotSame(t, s, fresh)
}

func TestManagerLogoutUnknownUserIsNoop(t *testing.T) {
	m := NewManager(testGateways(&fakeCartGateway{cart: &cart.Cart{}}), nil, nil)
	require.NoError(t, m.Logout(context.Background(), 99))
}

func TestSessionBeginCheckoutSelectsDefaultAddress(t *testing.T) {
	cartGW := &fakeCartGateway{cart: &cart.Cart{Items: []cart.Item{item(1, 1, "10.00")}}}
	m := NewManager(testGateways(cartGW), nil, nil)

	s := m.Session(context.Background(), 7)
	require.Eventually(t, func() bool {
		return s.Store().TotalItems() == 1
	}, time.Second, 10*time.Millisecond)

	flow, err := s.BeginCheckout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, checkout.StateReady, flow.State())
	addressID, _, _ := flow.Selection()
	assert.Equal(t, uint(1), addressID)
	assert.Same(t, flow, s.Checkout())
}

func TestSessionBeginCheckoutReplacesFlow(t *testing.T) {
	cartGW := &fakeCartGateway{cart: &cart.Cart{Items: []cart.Item{item(1, 1, "10.00")}}}
	m := NewManager(testGateways(cartGW), nil, nil)

	s := m.Session(context.Background(), 7)
	require.Eventually(t, func() bool {
		return s.Store().TotalItems() == 1
	}, time.Second, 10*time.Millisecond)

	first, err := s.BeginCheckout(context.Background())
	require.NoError(t, err)
	second, err := s.BeginCheckout(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.IntentID(), second.IntentID())
}

// internal/domain/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/domain/cart"
	"github.com/your-org/storefront-bff/internal/domain/checkout"
	"github.com/your-org/storefront-bff/internal/infrastructure/cache"
)

// ErrCheckoutInProgress is returned when a new checkout is requested while
// the current one is still submitting
var ErrCheckoutInProgress = errors.New("a checkout submission is in progress")

// SnapshotCache persists the last confirmed cart snapshot between sessions
type SnapshotCache interface {
	Save(ctx context.Context, userID uint, items []cart.Item) error
	Load(ctx context.Context, userID uint) ([]cart.Item, error)
	Delete(ctx context.Context, userID uint) error
}

// Gateways bundles the upstream contracts a session needs
type Gateways struct {
	Cart    cart.Gateway
	Address checkout.AddressGateway
	Order   checkout.OrderGateway
	Payment checkout.PaymentGateway
}

// Session holds the per-user state this service keeps in process: the cart
// store with its orchestration service, and at most one active checkout flow.
type Session struct {
	UserID uint

	store   *cart.Store
	cartSvc *cart.Service

	mu          sync.Mutex
	flow        *checkout.Flow
	unsubscribe func()

	gateways Gateways
}

// Cart returns the session's cart service
func (s *Session) Cart() *cart.Service {
	return s.cartSvc
}

// Store returns the session's cart store
func (s *Session) Store() *cart.Store {
	return s.store
}

// BeginCheckout starts a fresh checkout flow for this session, replacing any
// previous one. A flow that is mid-submission cannot be replaced; that would
// open the door to a second order for the same click.
func (s *Session) BeginCheckout(ctx context.Context) (*checkout.Flow, error) {
	s.mu.Lock()
	if s.flow != nil && s.flow.State() == checkout.StateSubmitting {
		s.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	flow := checkout.NewFlow(s.store, s.gateways.Address, s.gateways.Order, s.gateways.Payment)
	s.flow = flow
	s.mu.Unlock()

	if err := flow.Begin(ctx); err != nil {
		return flow, err
	}
	return flow, nil
}

// Checkout returns the session's active checkout flow, if any
func (s *Session) Checkout() *checkout.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow
}

// Manager tracks live sessions keyed by user ID. A session appears when an
// authenticated request first arrives (the auth signal turning on) and is
// dropped on logout (the signal turning off), which clears the local cart.
type Manager struct {
	mu       sync.Mutex
	sessions map[uint]*Session

	gateways Gateways
	cache    SnapshotCache
	logger   *logrus.Logger
}

// NewManager creates a session manager. The cache may be nil, in which case
// snapshots are not persisted between processes.
func NewManager(gateways Gateways, cache SnapshotCache, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{
		sessions: make(map[uint]*Session),
		gateways: gateways,
		cache:    cache,
		logger:   logger,
	}
}

// Session returns the user's session, creating it on first sight. Creation
// rehydrates the cached snapshot so the cart renders immediately, then kicks
// off a background refresh that lands the authoritative server cart. The ctx
// must carry the caller's upstream token for that refresh.
func (m *Manager) Session(ctx context.Context, userID uint) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s
	}

	store := cart.NewStore()
	s := &Session{
		UserID:   userID,
		store:    store,
		cartSvc:  cart.NewService(m.gateways.Cart, store),
		gateways: m.gateways,
	}
	m.sessions[userID] = s
	m.mu.Unlock()

	if m.cache != nil {
		if items, err := m.cache.Load(ctx, userID); err == nil {
			store.Replace(store.NextSeq(), items)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			m.logger.WithError(err).WithField("user_id", userID).Warn("cart snapshot rehydration failed")
		}

		s.unsubscribe = store.Subscribe(func(snapshot cart.Snapshot) {
			saveCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := m.cache.Save(saveCtx, userID, snapshot.Items); err != nil {
				m.logger.WithError(err).WithField("user_id", userID).Warn("cart snapshot persist failed")
			}
		})
	}

	// The session just became authenticated: pull the server cart. The
	// refresh runs detached from the request; a failure leaves whatever was
	// rehydrated (stale beats empty) and the next operation resyncs anyway.
	go func(ctx context.Context) {
		refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.cartSvc.Refresh(refreshCtx, true); err != nil {
			m.logger.WithError(err).WithField("user_id", userID).Warn("initial cart refresh failed")
		}
	}(detach(ctx))

	return s
}

// Logout handles the authenticated-to-anonymous transition: the local cart is
// cleared, the cached snapshot dropped, and the session discarded.
func (m *Manager) Logout(ctx context.Context, userID uint) error {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.store.Clear()

	if m.cache != nil {
		if err := m.cache.Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to drop cached cart snapshot: %w", err)
		}
	}
	return nil
}

// detach keeps the context's values (upstream token) but severs it from the
// request's cancellation, so background work survives the response.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

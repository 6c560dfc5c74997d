// internal/domain/cart/store.go
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Snapshot is a point-in-time read of the store with derived aggregates
type Snapshot struct {
	Items      []Item
	TotalItems int
	TotalPrice decimal.Decimal
	Loading    bool
}

// Store holds the session's local view of the cart. It is only ever written
// with full upstream snapshots: Replace overwrites, never merges, so the
// visible cart is always something the server actually confirmed.
//
// Each write carries a sequence number allocated with NextSeq before the
// network call is issued. A response whose sequence is below the highest one
// already applied is discarded, so two rapid-fire mutations cannot leave the
// store showing the older server state just because its response landed last.
type Store struct {
	mu       sync.RWMutex
	items    []Item
	inFlight int
	nextSeq  uint64
	applied  uint64

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{
		subs: make(map[int]func(Snapshot)),
	}
}

// NextSeq allocates the sequence number for an upcoming mutation. Call it
// before issuing the gateway request that will land via Replace.
func (s *Store) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Replace overwrites the store with an upstream snapshot. It reports whether
// the snapshot was applied; stale responses (seq already superseded) are
// dropped without touching state.
func (s *Store) Replace(seq uint64, items []Item) bool {
	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		return false
	}
	s.applied = seq
	s.items = make([]Item, len(items))
	copy(s.items, items)
	s.mu.Unlock()

	s.notify()
	return true
}

// Clear resets the store to empty. Used on logout and after a successful
// clear-cart call. It also supersedes every in-flight mutation so a late
// response cannot resurrect the cleared cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.nextSeq++
	s.applied = s.nextSeq
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the current line items
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems derives the total quantity across all lines
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice derives the cart total from the server-computed line subtotals
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// SetLoading marks an operation as entering (true) or leaving (false) flight.
// Loading stays true while any operation is still in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	if loading {
		s.inFlight++
	} else if s.inFlight > 0 {
		s.inFlight--
	}
	s.mu.Unlock()

	s.notify()
}

// Loading reports whether any operation is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Snapshot returns the current state with derived aggregates
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)

	totalItems := 0
	totalPrice := decimal.Zero
	for _, item := range s.items {
		totalItems += item.Quantity
		totalPrice = totalPrice.Add(item.Subtotal)
	}

	return Snapshot{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		Loading:    s.inFlight > 0,
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every state
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	snapshot := s.Snapshot()

	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

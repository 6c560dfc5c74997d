// internal/domain/checkout/flow.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/your-org/storefront-bff/internal/domain/address"
	"github.com/your-org/storefront-bff/internal/domain/order"
)

// State is the checkout flow state
type State string

const (
	StateLoadingAddresses State = "loading_addresses"
	StateReady            State = "ready"
	StateEmptyCart        State = "empty_cart"
	StateSubmitting       State = "submitting"
	StateRedirecting      State = "redirecting_to_payment"
	StateFinalized        State = "finalized"
)

var (
	// ErrSubmitInFlight is returned when submit is invoked while a previous
	// submission is still running. The duplicate never reaches the order
	// service: one checkout intent creates at most one order.
	ErrSubmitInFlight = errors.New("checkout submission already in progress")

	// ErrEmptyCart is returned when there is nothing to check out
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoAddress is returned when submitting without a shipping address
	ErrNoAddress = errors.New("no shipping address selected")

	// ErrNotReady is returned when an operation requires the ready state
	ErrNotReady = errors.New("checkout is not ready")
)

// AddressGateway lists the user's saved addresses
type AddressGateway interface {
	List(ctx context.Context) ([]address.Address, error)
}

// OrderGateway creates orders upstream. The idempotency key identifies the
// checkout intent so a retried request cannot create a second order.
type OrderGateway interface {
	Create(ctx context.Context, req *order.CreateOrderRequest, idempotencyKey string) (*order.Order, error)
}

// PaymentGateway initiates online payment for a created order and returns the
// gateway redirect URL. An empty URL means initiation failed.
type PaymentGateway interface {
	Initiate(ctx context.Context, orderID uint) (string, error)
}

// CartReader is the read-only view of the session cart the flow consults
type CartReader interface {
	TotalItems() int
}

// Result is the outcome of a successful submission
type Result struct {
	Order       *order.Order `json:"order"`
	RedirectURL string       `json:"redirect_url,omitempty"`
	Finalized   bool         `json:"finalized"`
}

// Flow drives one checkout intent through an explicit state machine:
//
//	LoadingAddresses -> Ready -> Submitting -> {Finalized | Redirecting}
//
// EmptyCart is terminal at entry. A failed submission returns the flow to
// Ready with the failure message, selections intact, so the user can retry;
// retrying re-runs order creation (the order was never created). Once an
// order exists, payment-initiation failure does NOT retry creation: the flow
// finalizes against the created order and payment can be retried from its
// detail page. That asymmetry is deliberate.
type Flow struct {
	mu sync.Mutex

	state        State
	intentID     string
	addresses    []address.Address
	addressID    uint
	method       order.PaymentMethod
	note         string
	lastError    string
	createdOrder *order.Order
	redirectURL  string

	cart      CartReader
	addressGW AddressGateway
	orderGW   OrderGateway
	paymentGW PaymentGateway
}

// NewFlow creates a checkout flow for one checkout intent
func NewFlow(cart CartReader, addressGW AddressGateway, orderGW OrderGateway, paymentGW PaymentGateway) *Flow {
	return &Flow{
		state:     StateLoadingAddresses,
		intentID:  uuid.New().String(),
		method:    order.PaymentMethodCOD,
		cart:      cart,
		addressGW: addressGW,
		orderGW:   orderGW,
		paymentGW: paymentGW,
	}
}

// IntentID returns the checkout intent identifier
func (f *Flow) IntentID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intentID
}

// State returns the current flow state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the message of the last failed submission, if any
func (f *Flow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Addresses returns the loaded address list
func (f *Flow) Addresses() []address.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]address.Address, len(f.addresses))
	copy(out, f.addresses)
	return out
}

// Selection returns the current address, payment method and note selections
func (f *Flow) Selection() (addressID uint, method order.PaymentMethod, note string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addressID, f.method, f.note
}

// Begin loads the saved addresses and moves the flow to Ready. The default
// address is auto-selected; without a default the first one is. An empty cart
// makes the flow terminal: there is nothing to check out.
func (f *Flow) Begin(ctx context.Context) error {
	if f.cart.TotalItems() == 0 {
		f.mu.Lock()
		f.state = StateEmptyCart
		f.mu.Unlock()
		return ErrEmptyCart
	}

	addresses, err := f.addressGW.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.addresses = addresses
	f.addressID = 0
	for _, addr := range addresses {
		if addr.IsDefault {
			f.addressID = addr.ID
			break
		}
	}
	if f.addressID == 0 && len(addresses) > 0 {
		f.addressID = addresses[0].ID
	}

	f.state = StateReady
	return nil
}

// SelectAddress changes the shipping address while the flow is Ready
func (f *Flow) SelectAddress(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReady {
		return ErrNotReady
	}
	for _, addr := range f.addresses {
		if addr.ID == id {
			f.addressID = id
			return nil
		}
	}
	return fmt.Errorf("address %d is not in the saved address list", id)
}

// SelectPaymentMethod changes the payment method while the flow is Ready
func (f *Flow) SelectPaymentMethod(method order.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReady {
		return ErrNotReady
	}
	if !method.Valid() {
		return fmt.Errorf("unsupported payment method: %s", method)
	}
	f.method = method
	return nil
}

// SetNote attaches a note to the order while the flow is Ready
func (f *Flow) SetNote(note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReady {
		return ErrNotReady
	}
	f.note = note
	return nil
}

// Submit creates the order and branches on the payment method. COD finalizes
// immediately. Online methods initiate payment once; a redirect URL hands the
// browser off to the external gateway, and an initiation failure still
// finalizes against the created order.
func (f *Flow) Submit(ctx context.Context) (*Result, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateEmptyCart:
		f.mu.Unlock()
		return nil, ErrEmptyCart
	case StateReady:
		// proceed
	default:
		f.mu.Unlock()
		return nil, ErrNotReady
	}
	if f.cart.TotalItems() == 0 {
		f.state = StateEmptyCart
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if f.addressID == 0 {
		f.mu.Unlock()
		return nil, ErrNoAddress
	}

	req := &order.CreateOrderRequest{
		AddressID:     f.addressID,
		PaymentMethod: f.method,
		Note:          f.note,
	}
	intentID := f.intentID
	f.state = StateSubmitting
	f.lastError = ""
	f.mu.Unlock()

	createdOrder, err := f.orderGW.Create(ctx, req, intentID)
	if err != nil {
		// Order creation is fully retryable: nothing was created, so the
		// flow returns to Ready with selections intact.
		f.mu.Lock()
		f.state = StateReady
		f.lastError = err.Error()
		f.mu.Unlock()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	result := &Result{Order: createdOrder}

	if req.PaymentMethod.RequiresInitiation() {
		paymentURL, payErr := f.paymentGW.Initiate(ctx, createdOrder.ID)
		if payErr == nil && paymentURL != "" {
			f.mu.Lock()
			f.state = StateRedirecting
			f.createdOrder = createdOrder
			f.redirectURL = paymentURL
			f.mu.Unlock()

			result.RedirectURL = paymentURL
			return result, nil
		}
		// The order already exists; never recreate it. Finalize and let the
		// user retry payment from the order detail page.
	}

	f.mu.Lock()
	f.state = StateFinalized
	f.createdOrder = createdOrder
	f.mu.Unlock()

	result.Finalized = true
	return result, nil
}

// Order returns the created order once the flow has one
func (f *Flow) Order() *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createdOrder
}

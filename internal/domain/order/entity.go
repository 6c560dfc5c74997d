// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the order status
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipping   Status = "shipping"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentMethod represents how an order is paid. COD finalizes without a
// payment initiation step; the online methods require one.
type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodVNPay PaymentMethod = "vnpay"
	PaymentMethodMoMo  PaymentMethod = "momo"
)

// Valid reports whether m is one of the supported payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodVNPay, PaymentMethodMoMo:
		return true
	}
	return false
}

// RequiresInitiation reports whether the method needs an online payment
// initiation step after order creation
func (m PaymentMethod) RequiresInitiation() bool {
	return m == PaymentMethodVNPay || m == PaymentMethodMoMo
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is the upstream's record of a placed order. Immutable from this
// service's view except for status transitions reported by the server.
type Order struct {
	ID            uint            `json:"id"`
	OrderCode     string          `json:"order_code"`
	UserID        uint            `json:"user_id"`
	Status        Status          `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Subtotal      decimal.Decimal `json:"subtotal_amount"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Note          string          `json:"note,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`

	// Shipping address, denormalized by the upstream for historical record
	ShippingFullName      string `json:"shipping_full_name"`
	ShippingPhone         string `json:"shipping_phone"`
	ShippingProvince      string `json:"shipping_province"`
	ShippingDistrict      string `json:"shipping_district"`
	ShippingWard          string `json:"shipping_ward"`
	ShippingDetailAddress string `json:"shipping_detail_address"`

	Items     []OrderItem `json:"order_items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem represents a product item in an order
type OrderItem struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	VariantID   *uint           `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	AddressID     uint          `json:"address_id" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	Note          string        `json:"note,omitempty"`
}

// CancelOrderRequest represents the order cancellation payload
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListParams represents order listing parameters
type ListParams struct {
	Page   int
	Limit  int
	Status Status
}

// List is a page of orders with pagination metadata
type List struct {
	Orders     []Order `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// validTransitions defines which status changes the upstream permits.
// Delivered and cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipping, StatusCancelled},
	StatusShipping:   {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ValidateStatusTransition reports whether moving from currentStatus to
// newStatus is a legal order lifecycle step
func ValidateStatusTransition(currentStatus, newStatus Status) error {
	allowed, ok := validTransitions[currentStatus]
	if !ok {
		return fmt.Errorf("invalid current status: %s", currentStatus)
	}

	for _, status := range allowed {
		if status == newStatus {
			return nil
		}
	}

	return fmt.Errorf("invalid status transition from %s to %s", currentStatus, newStatus)
}

// Cancellable reports whether the order can still be cancelled by the customer
func (o *Order) Cancellable() bool {
	return ValidateStatusTransition(o.Status, StatusCancelled) == nil
}

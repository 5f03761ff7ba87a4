package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusPaid      = "paid"
)

// =====================================================
// PAYMENT STATUS CONSTANTS
// =====================================================
const (
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// IsAssignableStatus reports whether s may be set through the status-update
// operation. Terminal states are only ever reached through cancel or the
// payment reconciler.
func IsAssignableStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// IsTerminalStatus reports whether s permits no further transition.
func IsTerminalStatus(s string) bool {
	return s == OrderStatusCancelled || s == OrderStatusPaid
}

// =====================================================
// ENTITY: Order
// =====================================================
type Order struct {
	ID             uuid.UUID  `json:"id"`
	BookID         uuid.UUID  `json:"book_id"`
	CustomerEmail  string     `json:"customer_email"`
	LibrarianEmail string     `json:"librarian_email"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"payment_status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}

// CanBeCancelled: only a pending order may be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending
}

// IsTerminal reports whether the order reached a terminal state.
func (o *Order) IsTerminal() bool {
	return IsTerminalStatus(o.Status)
}

// IsPaid reports whether payment completed.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PAYMENT STATUS CONSTANTS
// =====================================================
const (
	PaymentStatusPending = "pending"
)

// =====================================================
// ENTITY: Payment
// =====================================================

// Payment is one row in the payment ledger: exactly one record per external
// transaction id, immutable after insert. The ledger doubles as the
// idempotency guard for reconciliation and as the source of truth for manual
// recovery.
type Payment struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	BookID         uuid.UUID       `json:"book_id"`
	TransactionID  string          `json:"transaction_id"`
	CustomerEmail  string          `json:"customer_email"`
	Status         string          `json:"status"`
	LibrarianEmail string          `json:"librarian_email"`
	BookTitle      string          `json:"book_title"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
}

// =====================================================
// CHECKOUT SESSION
// =====================================================

// Session statuses reported by the hosted checkout provider.
const (
	SessionStatusOpen     = "open"
	SessionStatusComplete = "complete"
	SessionStatusExpired  = "expired"
)

// CheckoutSession is the provider's authoritative session record. During the
// redirect gap the metadata it carries is the only link back to the order.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"` // minor currency units
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// IsComplete reports whether the provider confirmed payment.
func (s *CheckoutSession) IsComplete() bool {
	return s.Status == SessionStatusComplete
}

// Metadata keys attached to every checkout session.
const (
	MetaOrderID   = "order_id"
	MetaBookID    = "book_id"
	MetaLibrarian = "librarian_email"
	MetaCategory  = "category"
	MetaAuthor    = "author"
)

package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendOrderConfirmationPayload is enqueued after a successful reconcile.
type SendOrderConfirmationPayload struct {
	OrderID       uuid.UUID       `json:"order_id"`
	BookTitle     string          `json:"book_title"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total"`
	TransactionID string          `json:"transaction_id"`
}

// CancelStaleOrdersPayload drives the scheduled sweep of pending, unpaid
// orders that were abandoned at checkout.
type CancelStaleOrdersPayload struct {
	MaxAgeHours int `json:"max_age_hours"`
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// CREATE CHECKOUT SESSION REQUEST
// =====================================================
type CreateCheckoutSessionRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (req CreateCheckoutSessionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.OrderID, validation.Required, validation.By(func(v interface{}) error {
			if id, _ := v.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("validation_required", "order_id is required")
			}
			return nil
		})),
	)
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

// =====================================================
// RECONCILE REQUEST
// =====================================================
type ReconcileRequest struct {
	SessionID string `json:"session_id"`
}

func (req ReconcileRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SessionID, validation.Required),
	)
}

// ReconcileResponse is returned for first-time and repeated confirmations
// alike: repeats carry the same payment id and mutate nothing.
type ReconcileResponse struct {
	TransactionID string    `json:"transaction_id"`
	PaymentID     uuid.UUID `json:"payment_id"`
	OrderID       uuid.UUID `json:"order_id"`
	AlreadyDone   bool      `json:"already_done"`
}

// =====================================================
// LIST INVOICES REQUEST
// =====================================================
type ListInvoicesRequest struct {
	Email string `form:"email"`
}

func (req ListInvoicesRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

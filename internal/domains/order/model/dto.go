package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================
type CreateOrderRequest struct {
	BookID        uuid.UUID `json:"book_id"`
	CustomerEmail string    `json:"customer_email"`
}

func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.BookID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&req.CustomerEmail, validation.Required, is.Email),
	)
}

func notNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return ErrMissingBookID
	}
	return nil
}

// =====================================================
// CREATE ORDER RESPONSE
// =====================================================
type CreateOrderResponse struct {
	OrderID       uuid.UUID `json:"order_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
}

// =====================================================
// UPDATE STATUS REQUEST
// =====================================================
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (req UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Required, validation.In(
			OrderStatusPending,
			OrderStatusShipped,
			OrderStatusDelivered,
		)),
	)
}

// =====================================================
// LIST ORDERS REQUEST
// =====================================================
type ListOrdersFilter struct {
	CustomerEmail  string `form:"email"`
	LibrarianEmail string `form:"librarian"`
}

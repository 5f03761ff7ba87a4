package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WishlistEntry links a customer to a book they saved. One entry per
// (book, customer) pair, enforced by a unique constraint.
type WishlistEntry struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItem is an entry joined with its book for listing.
type WishlistItem struct {
	ID        uuid.UUID       `json:"id"`
	BookID    uuid.UUID       `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Price     decimal.Decimal `json:"price"`
	CoverURL  *string         `json:"cover_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

var (
	ErrAlreadyWishlisted = errors.New("book already in wishlist")
	ErrEntryNotFound     = errors.New("wishlist entry not found")
)

// =====================================================
// REQUESTS
// =====================================================
type AddToWishlistRequest struct {
	BookID uuid.UUID `json:"book_id"`
}

func (req AddToWishlistRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.BookID, validation.Required, validation.By(func(v interface{}) error {
			if id, _ := v.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("validation_required", "book_id is required")
			}
			return nil
		})),
	)
}

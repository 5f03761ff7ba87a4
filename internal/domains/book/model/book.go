package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// BOOK STATUS CONSTANTS
// =====================================================
const (
	BookStatusPublished   = "published"
	BookStatusUnpublished = "unpublished"
)

// IsValidBookStatus reports whether s is a recognised catalog status.
func IsValidBookStatus(s string) bool {
	return s == BookStatusPublished || s == BookStatusUnpublished
}

// =====================================================
// ENTITY: Book
// =====================================================
type Book struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Status         string          `json:"status"`
	LibrarianEmail string          `json:"librarian_email"`
	CoverURL       *string         `json:"cover_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsPublished reports whether the book is visible in the public catalog.
func (b *Book) IsPublished() bool {
	return b.Status == BookStatusPublished
}

// InStock reports whether at least one copy can still be sold.
func (b *Book) InStock() bool {
	return b.Quantity > 0
}

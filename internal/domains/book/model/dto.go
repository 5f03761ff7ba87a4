package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE BOOK REQUEST
// =====================================================
type CreateBookRequest struct {
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Status   string          `json:"status"`
	CoverURL *string         `json:"cover_url,omitempty"`
}

func (req CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Status, validation.Required, validation.In(
			BookStatusPublished,
			BookStatusUnpublished,
		)),
		validation.Field(&req.CoverURL, is.URL),
	)
}

// =====================================================
// UPDATE BOOK REQUEST
// =====================================================
type UpdateBookRequest struct {
	Title    *string          `json:"title,omitempty"`
	Author   *string          `json:"author,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	Status   *string          `json:"status,omitempty"`
	CoverURL *string          `json:"cover_url,omitempty"`
}

func (req UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Length(1, 500)),
		validation.Field(&req.Author, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Status, validation.In(
			BookStatusPublished,
			BookStatusUnpublished,
		)),
		validation.Field(&req.CoverURL, is.URL),
	)
}

// =====================================================
// LIST BOOKS REQUEST
// =====================================================
type ListBooksRequest struct {
	Status    string `form:"status"`    // optional status filter
	Librarian string `form:"librarian"` // optional owner filter
}

// =====================================================
// BULK IMPORT
// =====================================================

// BulkImportRow is one parsed spreadsheet row.
type BulkImportRow struct {
	Line     int
	Title    string
	Author   string
	Category string
	Price    decimal.Decimal
	Quantity int
}

// BulkImportResult summarises an import run.
type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/book/model"
)

// BookService is the catalog business logic.
type BookService interface {
	ListBooks(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	CreateBook(ctx context.Context, librarianEmail string, req model.CreateBookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, callerEmail string, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, callerEmail string, id uuid.UUID, data []byte) (string, error)
	BulkImport(ctx context.Context, librarianEmail string, spreadsheet io.Reader) (*model.BulkImportResult, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookcourier-backend/internal/domains/book/model"
)

// BookRepository is the catalog store.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error

	// DecrementQuantity takes one copy off the shelf inside the caller's
	// transaction. Returns false when the book is missing or out of stock;
	// the guard keeps quantity from ever going negative.
	DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)

	// DeleteCascade removes the book and every order that references it,
	// atomically.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

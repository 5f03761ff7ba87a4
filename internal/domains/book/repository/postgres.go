package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{
		pool: pool,
	}
}

const bookColumns = `
	id, title, author, category, price, quantity, status,
	librarian_email, cover_url, created_at, updated_at
`

func scanBook(row pgx.Row, book *model.Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Category,
		&book.Price,
		&book.Quantity,
		&book.Status,
		&book.LibrarianEmail,
		&book.CoverURL,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, category, price, quantity, status,
			librarian_email, cover_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Category,
		book.Price,
		book.Quantity,
		book.Status,
		book.LibrarianEmail,
		book.CoverURL,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book model.Book
	err := scanBook(r.pool.QueryRow(ctx, query, id), &book)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &book, nil
}

func (r *postgresBookRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Librarian != "" {
		query += fmt.Sprintf(" AND librarian_email = $%d", argPos)
		args = append(args, filter.Librarian)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var book model.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books SET
			title = $2, author = $3, category = $4, price = $5,
			quantity = $6, status = $7, cover_url = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Category,
		book.Price,
		book.Quantity,
		book.Status,
		book.CoverURL,
	).Scan(&book.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	query := `UPDATE books SET cover_url = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, coverURL)
	if err != nil {
		return fmt.Errorf("failed to update cover url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// DecrementQuantity is a guarded conditional write: the quantity check and the
// decrement are one statement, so concurrent sales can never drive stock
// negative and a reconcile retry cannot double-decrement.
func (r *postgresBookRepository) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE books
		SET quantity = quantity - 1, updated_at = now()
		WHERE id = $1 AND quantity > 0
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to decrement book quantity: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postgresBookRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete orders for book: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}

		return nil
	})
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcourier-backend/internal/domains/wishlist/model"
	"bookcourier-backend/internal/shared/apperror"
)

// WishlistRepository stores saved books per customer.
type WishlistRepository interface {
	// Add inserts an entry. ErrAlreadyWishlisted for a repeated
	// (book, customer) pair.
	Add(ctx context.Context, entry *model.WishlistEntry) error

	// ListByUser returns the customer's saved books, newest first.
	ListByUser(ctx context.Context, email string) ([]model.WishlistItem, error)

	// Remove deletes a customer's entry for a book. ErrEntryNotFound when
	// nothing matched.
	Remove(ctx context.Context, bookID uuid.UUID, email string) error
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresWishlistRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWishlistRepository(pool *pgxpool.Pool) WishlistRepository {
	return &postgresWishlistRepository{
		pool: pool,
	}
}

func (r *postgresWishlistRepository) Add(ctx context.Context, entry *model.WishlistEntry) error {
	query := `
		INSERT INTO wishlists (id, book_id, user_email)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, entry.ID, entry.BookID, entry.UserEmail).Scan(&entry.CreatedAt)
	if err != nil {
		if apperror.IsUniqueViolation(err, "wishlists_book_id_user_email_key") {
			return model.ErrAlreadyWishlisted
		}
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	return nil
}

func (r *postgresWishlistRepository) ListByUser(ctx context.Context, email string) ([]model.WishlistItem, error) {
	query := `
		SELECT w.id, w.book_id, b.title, b.author, b.price, b.cover_url, w.created_at
		FROM wishlists w
		JOIN books b ON b.id = w.book_id
		WHERE w.user_email = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []model.WishlistItem{}
	for rows.Next() {
		var item model.WishlistItem
		if err := rows.Scan(&item.ID, &item.BookID, &item.Title, &item.Author, &item.Price, &item.CoverURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *postgresWishlistRepository) Remove(ctx context.Context, bookID uuid.UUID, email string) error {
	query := `DELETE FROM wishlists WHERE book_id = $1 AND user_email = $2`

	tag, err := r.pool.Exec(ctx, query, bookID, email)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEntryNotFound
	}

	return nil
}

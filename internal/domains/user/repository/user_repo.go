package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcourier-backend/internal/domains/user/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{
		pool: pool,
	}
}

const userColumns = `id, email, name, role, created_at, last_logged_in`

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.LastLoggedIn,
	)
}

// UpsertByEmail keys on the users_email_key unique constraint. The update
// branch deliberately leaves role alone.
func (r *postgresUserRepository) UpsertByEmail(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, name, role, last_logged_in)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			last_logged_in = now()
		RETURNING ` + userColumns

	err := scanUser(r.pool.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.Role), user)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	err := scanUser(r.pool.QueryRow(ctx, query, email), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	query := `
		UPDATE users
		SET role = $2
		WHERE id = $1
		RETURNING ` + userColumns

	var user model.User
	err := scanUser(r.pool.QueryRow(ctx, query, id, role), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	return &user, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/user/model"
)

// UserRepository is the identity store.
type UserRepository interface {
	// UpsertByEmail inserts a new user or refreshes last_logged_in for an
	// existing one. The role column is never touched on the update path:
	// a login must not reset a promoted user back to the default role.
	UpsertByEmail(ctx context.Context, user *model.User) error

	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateRole sets the role. ErrUserNotFound when the id is unknown.
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error)
}

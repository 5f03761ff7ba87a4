package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookcourier-backend/internal/domains/order/model"
)

// OrderRepository is the order ledger. State transitions are conditional
// writes: the precondition and the mutation are a single statement, so
// concurrent cancel/pay requests cannot both win.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error)

	// Cancel transitions pending -> cancelled. ErrOrderNotFound when the id
	// is unknown, ErrOrderNotPending when the order left pending already.
	Cancel(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatus moves between the assignable states. Terminal orders
	// yield ErrOrderTerminal.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// MarkPaid transitions pending -> paid inside the reconciler's
	// transaction. Returns false when the order already left pending,
	// which keeps the reconciler idempotent.
	MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)

	// CancelStale sweeps pending, unpaid orders older than maxAge.
	CancelStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

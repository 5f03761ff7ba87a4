package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookcourier-backend/internal/domains/payment/model"
)

// PaymentRepository is the append-only payment ledger. The UNIQUE constraint
// on transaction_id is the idempotency guard: the insert and the duplicate
// check are one atomic statement, closing the read-then-write window.
type PaymentRepository interface {
	// Insert appends a ledger row inside the caller's transaction.
	// Returns false when a row for the same transaction_id already exists.
	Insert(ctx context.Context, tx pgx.Tx, payment *model.Payment) (bool, error)

	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)

	// GetByTransactionIDTx is the in-transaction variant, used to re-read a
	// row a concurrent reconcile inserted first.
	GetByTransactionIDTx(ctx context.Context, tx pgx.Tx, transactionID string) (*model.Payment, error)

	ListByCustomer(ctx context.Context, email string) ([]model.Payment, error)
}

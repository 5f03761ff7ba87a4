package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcourier-backend/internal/domains/payment/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &postgresPaymentRepository{
		pool: pool,
	}
}

const paymentColumns = `
	id, order_id, book_id, transaction_id, customer_email, status,
	librarian_email, book_title, quantity, price, created_at
`

func scanPayment(row pgx.Row, payment *model.Payment) error {
	return row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.BookID,
		&payment.TransactionID,
		&payment.CustomerEmail,
		&payment.Status,
		&payment.LibrarianEmail,
		&payment.BookTitle,
		&payment.Quantity,
		&payment.Price,
		&payment.CreatedAt,
	)
}

// Insert relies on the payments_transaction_id_key unique constraint:
// ON CONFLICT DO NOTHING turns a duplicate into zero returned rows instead
// of an error, so a concurrent reconcile loses the race cleanly.
func (r *postgresPaymentRepository) Insert(ctx context.Context, tx pgx.Tx, payment *model.Payment) (bool, error) {
	query := `
		INSERT INTO payments (
			id, order_id, book_id, transaction_id, customer_email, status,
			librarian_email, book_title, quantity, price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (transaction_id) DO NOTHING
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.BookID,
		payment.TransactionID,
		payment.CustomerEmail,
		payment.Status,
		payment.LibrarianEmail,
		payment.BookTitle,
		payment.Quantity,
		payment.Price,
	).Scan(&payment.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert payment: %w", err)
	}

	return true, nil
}

func (r *postgresPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	var payment model.Payment
	err := scanPayment(r.pool.QueryRow(ctx, query, transactionID), &payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by transaction id: %w", err)
	}

	return &payment, nil
}

func (r *postgresPaymentRepository) GetByTransactionIDTx(ctx context.Context, tx pgx.Tx, transactionID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	var payment model.Payment
	err := scanPayment(tx.QueryRow(ctx, query, transactionID), &payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by transaction id: %w", err)
	}

	return &payment, nil
}

func (r *postgresPaymentRepository) ListByCustomer(ctx context.Context, email string) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_email = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var payment model.Payment
		if err := scanPayment(rows, &payment); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcourier-backend/internal/domains/order/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{
		pool: pool,
	}
}

const orderColumns = `
	id, book_id, customer_email, librarian_email, status, payment_status,
	created_at, updated_at, paid_at, cancelled_at
`

func scanOrder(row pgx.Row, order *model.Order) error {
	return row.Scan(
		&order.ID,
		&order.BookID,
		&order.CustomerEmail,
		&order.LibrarianEmail,
		&order.Status,
		&order.PaymentStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.PaidAt,
		&order.CancelledAt,
	)
}

func (r *postgresOrderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, book_id, customer_email, librarian_email, status, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.BookID,
		order.CustomerEmail,
		order.LibrarianEmail,
		order.Status,
		order.PaymentStatus,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	return &order, nil
}

func (r *postgresOrderRepository) List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.CustomerEmail != "" {
		query += fmt.Sprintf(" AND customer_email = $%d", argPos)
		args = append(args, filter.CustomerEmail)
		argPos++
	}
	if filter.LibrarianEmail != "" {
		query += fmt.Sprintf(" AND librarian_email = $%d", argPos)
		args = append(args, filter.LibrarianEmail)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Cancel matches on id AND status='pending' in one statement. Losing the
// race against a concurrent pay or cancel surfaces as zero rows, which is
// then resolved into not-found vs conflict.
func (r *postgresOrderRepository) Cancel(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, cancelled_at = now(), updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING ` + orderColumns

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query,
		id,
		model.OrderStatusCancelled,
		model.PaymentStatusCancelled,
		model.OrderStatusPending,
	), &order)

	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	// Zero rows: either the order does not exist or it already left pending.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, model.ErrOrderNotPending
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if !model.IsAssignableStatus(status) {
		return nil, model.ErrInvalidOrderStatus
	}

	query := `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status NOT IN ($3, $4)
		RETURNING ` + orderColumns

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query,
		id,
		status,
		model.OrderStatusCancelled,
		model.OrderStatusPaid,
	), &order)

	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, model.ErrOrderTerminal
}

func (r *postgresOrderRepository) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, paid_at = now(), updated_at = now()
		WHERE id = $1 AND status = $4
	`

	tag, err := tx.Exec(ctx, query,
		id,
		model.OrderStatusPaid,
		model.PaymentStatusPaid,
		model.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postgresOrderRepository) CancelStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, cancelled_at = now(), updated_at = now()
		WHERE status = $3 AND payment_status = $4 AND created_at < now() - $5::interval
	`

	tag, err := r.pool.Exec(ctx, query,
		model.OrderStatusCancelled,
		model.PaymentStatusCancelled,
		model.OrderStatusPending,
		model.PaymentStatusUnpaid,
		fmt.Sprintf("%d seconds", int(maxAge.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale orders: %w", err)
	}

	return tag.RowsAffected(), nil
}

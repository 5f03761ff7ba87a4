package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/shared/apperror"
)

func testBook() *bookModel.Book {
	return &bookModel.Book{
		ID:             uuid.New(),
		Title:          "Designing Data-Intensive Applications",
		Author:         "Martin Kleppmann",
		Category:       "databases",
		Price:          decimal.RequireFromString("35.00"),
		Quantity:       2,
		Status:         bookModel.BookStatusPublished,
		LibrarianEmail: "librarian@example.com",
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the owning librarian from the book", func(t *testing.T) {
		book := testBook()
		orders := newMemOrderRepo()
		svc := NewOrderService(orders, newMemBookRepo(book))

		resp, err := svc.CreateOrder(ctx, model.CreateOrderRequest{
			BookID:        book.ID,
			CustomerEmail: "reader@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusPending, resp.Status)
		assert.Equal(t, model.PaymentStatusUnpaid, resp.PaymentStatus)

		created, err := orders.GetByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Equal(t, book.LibrarianEmail, created.LibrarianEmail)
	})

	t.Run("unknown book is NotFound", func(t *testing.T) {
		svc := NewOrderService(newMemOrderRepo(), newMemBookRepo())

		_, err := svc.CreateOrder(ctx, model.CreateOrderRequest{
			BookID:        uuid.New(),
			CustomerEmail: "reader@example.com",
		})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		status   string
		wantKind apperror.Kind
	}{
		{"pending order cancels", model.OrderStatusPending, ""},
		{"shipped order conflicts", model.OrderStatusShipped, apperror.KindConflict},
		{"delivered order conflicts", model.OrderStatusDelivered, apperror.KindConflict},
		{"paid order conflicts", model.OrderStatusPaid, apperror.KindConflict},
		{"cancelled order conflicts", model.OrderStatusCancelled, apperror.KindConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := &model.Order{
				ID:            uuid.New(),
				BookID:        uuid.New(),
				CustomerEmail: "reader@example.com",
				Status:        tc.status,
				PaymentStatus: model.PaymentStatusUnpaid,
			}
			svc := NewOrderService(newMemOrderRepo(order), newMemBookRepo())

			got, err := svc.CancelOrder(ctx, order.ID)
			if tc.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, model.OrderStatusCancelled, got.Status)
				assert.Equal(t, model.PaymentStatusCancelled, got.PaymentStatus)
				assert.NotNil(t, got.CancelledAt)
				return
			}
			assert.True(t, apperror.Is(err, tc.wantKind))
		})
	}

	t.Run("unknown order is NotFound", func(t *testing.T) {
		svc := NewOrderService(newMemOrderRepo(), newMemBookRepo())
		_, err := svc.CancelOrder(ctx, uuid.New())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves between assignable states", func(t *testing.T) {
		order := &model.Order{ID: uuid.New(), Status: model.OrderStatusPending}
		svc := NewOrderService(newMemOrderRepo(order), newMemBookRepo())

		got, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, got.Status)

		got, err = svc.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, got.Status)
	})

	t.Run("rejects unrecognised status", func(t *testing.T) {
		order := &model.Order{ID: uuid.New(), Status: model.OrderStatusPending}
		svc := NewOrderService(newMemOrderRepo(order), newMemBookRepo())

		_, err := svc.UpdateStatus(ctx, order.ID, "teleported")
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

		// cancelled and paid are terminal, never assignable.
		_, err = svc.UpdateStatus(ctx, order.ID, model.OrderStatusPaid)
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	})

	t.Run("terminal orders conflict", func(t *testing.T) {
		order := &model.Order{ID: uuid.New(), Status: model.OrderStatusPaid}
		svc := NewOrderService(newMemOrderRepo(order), newMemBookRepo())

		_, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}

func TestCancelStaleOrders(t *testing.T) {
	ctx := context.Background()

	stale := &model.Order{
		ID:            uuid.New(),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		CreatedAt:     time.Now().Add(-100 * time.Hour),
	}
	fresh := &model.Order{
		ID:            uuid.New(),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		CreatedAt:     time.Now().Add(-1 * time.Hour),
	}
	paid := &model.Order{
		ID:            uuid.New(),
		Status:        model.OrderStatusPaid,
		PaymentStatus: model.PaymentStatusPaid,
		CreatedAt:     time.Now().Add(-100 * time.Hour),
	}

	repo := newMemOrderRepo(stale, fresh, paid)
	svc := NewOrderService(repo, newMemBookRepo())

	swept, err := svc.CancelStaleOrders(ctx, 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)

	got, err = repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	got, err = repo.GetByID(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
}

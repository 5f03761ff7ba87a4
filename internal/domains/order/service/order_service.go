package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	bookModel "bookcourier-backend/internal/domains/book/model"
	bookRepo "bookcourier-backend/internal/domains/book/repository"
	"bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/domains/order/repository"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/logger"
)

type orderService struct {
	orders repository.OrderRepository
	books  bookRepo.BookRepository
}

func NewOrderService(orders repository.OrderRepository, books bookRepo.BookRepository) OrderService {
	return &orderService{
		orders: orders,
		books:  books,
	}
}

// CreateOrder inserts a new order in (pending, unpaid). The owning librarian
// is snapshotted from the book so order listings survive catalog edits.
func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	book, err := s.books.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to load book")
	}

	order := &model.Order{
		ID:             uuid.New(),
		BookID:         book.ID,
		CustomerEmail:  req.CustomerEmail,
		LibrarianEmail: book.LibrarianEmail,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusUnpaid,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperror.FromStorage(err, "failed to create order")
	}

	return &model.CreateOrderResponse{
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
		return nil, apperror.FromStorage(err, "failed to get order")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apperror.FromStorage(err, "failed to list orders")
	}

	return orders, nil
}

// CancelOrder cancels a pending order. Any other state is a conflict: paid
// and cancelled are terminal, shipped/delivered orders are past the point of
// cancellation.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.Cancel(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrderNotFound):
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		case errors.Is(err, model.ErrOrderNotPending):
			return nil, apperror.New(apperror.KindConflict, "only pending orders can be cancelled")
		default:
			return nil, apperror.FromStorage(err, "failed to cancel order")
		}
	}

	logger.Info("order cancelled", map[string]interface{}{
		"order_id": order.ID,
	})

	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidOrderStatus):
			return nil, apperror.Newf(apperror.KindInvalidArgument, "status must be one of pending, shipped, delivered")
		case errors.Is(err, model.ErrOrderNotFound):
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		case errors.Is(err, model.ErrOrderTerminal):
			return nil, apperror.New(apperror.KindConflict, "order is in a terminal state")
		default:
			return nil, apperror.FromStorage(err, "failed to update order status")
		}
	}

	return order, nil
}

func (s *orderService) CancelStaleOrders(ctx context.Context, maxAge time.Duration) (int64, error) {
	swept, err := s.orders.CancelStale(ctx, maxAge)
	if err != nil {
		return 0, apperror.FromStorage(err, "failed to sweep stale orders")
	}

	if swept > 0 {
		logger.Info("stale pending orders cancelled", map[string]interface{}{
			"count":   swept,
			"max_age": maxAge.String(),
		})
	}

	return swept, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/order/model"
)

// OrderService is the order ledger business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
	CancelStaleOrders(ctx context.Context, maxAge time.Duration) (int64, error)
}

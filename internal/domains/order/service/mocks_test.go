package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookModel "bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/internal/domains/order/model"
)

// =====================================================
// IN-MEMORY FAKES
// =====================================================

// memOrderRepo mirrors the conditional-write semantics of the postgres
// repository so the service's error mapping can be exercised.
type memOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newMemOrderRepo(orders ...*model.Order) *memOrderRepo {
	r := &memOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memOrderRepo) Create(ctx context.Context, order *model.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.orders {
		if filter.CustomerEmail != "" && o.CustomerEmail != filter.CustomerEmail {
			continue
		}
		if filter.LibrarianEmail != "" && o.LibrarianEmail != filter.LibrarianEmail {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) Cancel(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, model.ErrOrderNotPending
	}
	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.PaymentStatus = model.PaymentStatusCancelled
	order.CancelledAt = &now
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if !model.IsAssignableStatus(status) {
		return nil, model.ErrInvalidOrderStatus
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.IsTerminal() {
		return nil, model.ErrOrderTerminal
	}
	order.Status = status
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	order, ok := r.orders[id]
	if !ok || order.Status != model.OrderStatusPending {
		return false, nil
	}
	order.Status = model.OrderStatusPaid
	order.PaymentStatus = model.PaymentStatusPaid
	return true, nil
}

func (r *memOrderRepo) CancelStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	var swept int64
	for _, o := range r.orders {
		if o.Status == model.OrderStatusPending && o.PaymentStatus == model.PaymentStatusUnpaid && o.CreatedAt.Before(cutoff) {
			o.Status = model.OrderStatusCancelled
			o.PaymentStatus = model.PaymentStatusCancelled
			swept++
		}
	}
	return swept, nil
}

type memBookRepo struct {
	books map[uuid.UUID]*bookModel.Book
}

func newMemBookRepo(books ...*bookModel.Book) *memBookRepo {
	r := &memBookRepo{books: make(map[uuid.UUID]*bookModel.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *memBookRepo) Create(ctx context.Context, book *bookModel.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*bookModel.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *memBookRepo) List(ctx context.Context, filter bookModel.ListBooksRequest) ([]bookModel.Book, error) {
	return nil, nil
}

func (r *memBookRepo) Update(ctx context.Context, book *bookModel.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *memBookRepo) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	return nil
}

func (r *memBookRepo) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	book, ok := r.books[id]
	if !ok || book.Quantity <= 0 {
		return false, nil
	}
	book.Quantity--
	return true, nil
}

func (r *memBookRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	delete(r.books, id)
	return nil
}

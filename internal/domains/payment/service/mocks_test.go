package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookModel "bookcourier-backend/internal/domains/book/model"
	orderModel "bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/domains/payment/model"
	"bookcourier-backend/pkg/database"
)

// =====================================================
// IN-MEMORY FAKES
// =====================================================

// memTxRunner executes the transactional block in-process. The fakes ignore
// the tx handle, so nil stands in for it.
type memTxRunner struct{}

func (memTxRunner) RunInTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

// racingTxRunner commits a competing payment just before running the block,
// simulating a reconcile that wins the race after the fast-path check.
type racingTxRunner struct {
	payments *fakePaymentRepo
	winner   *model.Payment
}

func (r racingTxRunner) RunInTx(ctx context.Context, fn database.TxFunc) error {
	r.payments.byTransaction[r.winner.TransactionID] = r.winner
	return fn(nil)
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*orderModel.Order
	err    error
}

func newFakeOrderRepo(orders ...*orderModel.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]*orderModel.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *orderModel.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*orderModel.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, orderModel.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter orderModel.ListOrdersFilter) ([]orderModel.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Cancel(ctx context.Context, id uuid.UUID) (*orderModel.Order, error) {
	return nil, orderModel.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*orderModel.Order, error) {
	return nil, orderModel.ErrOrderNotFound
}

func (r *fakeOrderRepo) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	order, ok := r.orders[id]
	if !ok || order.Status != orderModel.OrderStatusPending {
		return false, nil
	}
	order.Status = orderModel.OrderStatusPaid
	order.PaymentStatus = orderModel.PaymentStatusPaid
	return true, nil
}

func (r *fakeOrderRepo) CancelStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	return 0, nil
}

type fakeBookRepo struct {
	books map[uuid.UUID]*bookModel.Book
}

func newFakeBookRepo(books ...*bookModel.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uuid.UUID]*bookModel.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, book *bookModel.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*bookModel.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) List(ctx context.Context, filter bookModel.ListBooksRequest) ([]bookModel.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, book *bookModel.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	return nil
}

func (r *fakeBookRepo) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	book, ok := r.books[id]
	if !ok || book.Quantity <= 0 {
		return false, nil
	}
	book.Quantity--
	return true, nil
}

func (r *fakeBookRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	delete(r.books, id)
	return nil
}

type fakePaymentRepo struct {
	byTransaction map[string]*model.Payment
}

func newFakePaymentRepo(payments ...*model.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{byTransaction: make(map[string]*model.Payment)}
	for _, p := range payments {
		r.byTransaction[p.TransactionID] = p
	}
	return r
}

func (r *fakePaymentRepo) Insert(ctx context.Context, tx pgx.Tx, payment *model.Payment) (bool, error) {
	if _, exists := r.byTransaction[payment.TransactionID]; exists {
		return false, nil
	}
	payment.CreatedAt = time.Now()
	r.byTransaction[payment.TransactionID] = payment
	return true, nil
}

func (r *fakePaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	payment, ok := r.byTransaction[transactionID]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepo) GetByTransactionIDTx(ctx context.Context, tx pgx.Tx, transactionID string) (*model.Payment, error) {
	return r.GetByTransactionID(ctx, transactionID)
}

func (r *fakePaymentRepo) ListByCustomer(ctx context.Context, email string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.byTransaction {
		if p.CustomerEmail == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

package service

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	bookModel "bookcourier-backend/internal/domains/book/model"
	bookRepo "bookcourier-backend/internal/domains/book/repository"
	orderModel "bookcourier-backend/internal/domains/order/model"
	orderRepo "bookcourier-backend/internal/domains/order/repository"
	"bookcourier-backend/internal/domains/payment/gateway"
	"bookcourier-backend/internal/domains/payment/model"
	"bookcourier-backend/internal/domains/payment/repository"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/database"
	"bookcourier-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================
type paymentService struct {
	payments repository.PaymentRepository
	orders   orderRepo.OrderRepository
	books    bookRepo.BookRepository
	gateway  gateway.CheckoutGateway
	tx       database.TxRunner
	asynq    *asynq.Client
}

func NewPaymentService(
	payments repository.PaymentRepository,
	orders orderRepo.OrderRepository,
	books bookRepo.BookRepository,
	gw gateway.CheckoutGateway,
	txRunner database.TxRunner,
	asynqClient *asynq.Client,
) PaymentService {
	return &paymentService{
		payments: payments,
		orders:   orders,
		books:    books,
		gateway:  gw,
		tx:       txRunner,
		asynq:    asynqClient,
	}
}

// CreateCheckoutSession loads the order and its book, then registers a
// single-line-item session with the provider. The order and book ids travel
// in the session metadata; during the redirect gap the provider's record is
// the only persistent link back to the order.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, req model.CreateCheckoutSessionRequest) (*model.CreateCheckoutSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, orderModel.ErrOrderNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
		return nil, apperror.FromStorage(err, "failed to load order")
	}

	if order.Status != orderModel.OrderStatusPending {
		return nil, apperror.New(apperror.KindConflict, "order is not awaiting payment")
	}

	book, err := s.books.GetByID(ctx, order.BookID)
	if err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to load book")
	}

	if !book.InStock() {
		return nil, apperror.New(apperror.KindConflict, "book is out of stock")
	}

	imageURL := ""
	if book.CoverURL != nil {
		imageURL = *book.CoverURL
	}

	session, err := s.gateway.CreateSession(ctx, gateway.CreateSessionRequest{
		Name:          book.Title,
		UnitPrice:     book.Price,
		ImageURL:      imageURL,
		CustomerEmail: order.CustomerEmail,
		Quantity:      1,
		Metadata: map[string]string{
			model.MetaOrderID:   order.ID.String(),
			model.MetaBookID:    book.ID.String(),
			model.MetaLibrarian: book.LibrarianEmail,
			model.MetaCategory:  book.Category,
			model.MetaAuthor:    book.Author,
		},
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPaymentProvider, "checkout provider unavailable", err)
	}

	logger.Info("Checkout session created", map[string]interface{}{
		"session_id": session.ID,
		"order_id":   order.ID.String(),
		"book_id":    book.ID.String(),
	})

	return &model.CreateCheckoutSessionResponse{URL: session.URL}, nil
}

func (s *paymentService) ListInvoices(ctx context.Context, req model.ListInvoicesRequest) ([]model.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	payments, err := s.payments.ListByCustomer(ctx, req.Email)
	if err != nil {
		return nil, apperror.FromStorage(err, "failed to list payments")
	}
	return payments, nil
}

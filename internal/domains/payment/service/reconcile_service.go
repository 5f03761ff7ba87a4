package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	bookModel "bookcourier-backend/internal/domains/book/model"
	orderModel "bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/domains/payment/model"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/logger"
)

// Reconcile finalizes a checkout session. The flow:
//
//  1. Re-fetch the session from the provider; client-supplied state is
//     never trusted.
//  2. If the ledger already holds the session's transaction id, return the
//     existing payment and stop. Confirmations repeat on browser refresh
//     and back-button, so this path is routine, not exceptional.
//  3. Otherwise require a complete session and an existing order, then in
//     one transaction: insert the payment, decrement the book's stock and
//     mark the order paid. The unique constraint on transaction_id decides
//     concurrent races inside the same transaction.
//
// A confirmation email task is enqueued after commit, best effort.
func (s *paymentService) Reconcile(ctx context.Context, req model.ReconcileRequest) (*model.ReconcileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	session, err := s.gateway.RetrieveSession(ctx, req.SessionID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPaymentProvider, "failed to verify checkout session", err)
	}

	transactionID := session.PaymentIntent
	if transactionID == "" {
		transactionID = session.ID
	}

	// Fast path: already reconciled.
	if existing, err := s.payments.GetByTransactionID(ctx, transactionID); err == nil {
		return &model.ReconcileResponse{
			TransactionID: existing.TransactionID,
			PaymentID:     existing.ID,
			OrderID:       existing.OrderID,
			AlreadyDone:   true,
		}, nil
	} else if !errors.Is(err, model.ErrPaymentNotFound) {
		return nil, apperror.FromStorage(err, "failed to check payment ledger")
	}

	if !session.IsComplete() {
		return nil, apperror.Wrap(apperror.KindConflict, "checkout session is not complete", model.ErrSessionNotComplete)
	}

	orderID, bookID, err := parseSessionMetadata(session)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderModel.ErrOrderNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
		return nil, apperror.FromStorage(err, "failed to load order")
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to load book")
	}

	customerEmail := session.CustomerEmail
	if customerEmail == "" {
		customerEmail = order.CustomerEmail
	}

	payment := &model.Payment{
		ID:             uuid.New(),
		OrderID:        order.ID,
		BookID:         book.ID,
		TransactionID:  transactionID,
		CustomerEmail:  customerEmail,
		Status:         model.PaymentStatusPending,
		LibrarianEmail: book.LibrarianEmail,
		BookTitle:      book.Title,
		Quantity:       1,
		Price:          decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100)),
	}

	var resp *model.ReconcileResponse
	err = s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		inserted, err := s.payments.Insert(ctx, tx, payment)
		if err != nil {
			return apperror.FromStorage(err, "failed to record payment")
		}
		if !inserted {
			// A concurrent reconcile committed between the fast-path check
			// and this insert. Re-read inside the transaction and report
			// the winner's payment.
			winner, err := s.payments.GetByTransactionIDTx(ctx, tx, transactionID)
			if err != nil {
				return apperror.FromStorage(err, "failed to load existing payment")
			}
			resp = &model.ReconcileResponse{
				TransactionID: winner.TransactionID,
				PaymentID:     winner.ID,
				OrderID:       winner.OrderID,
				AlreadyDone:   true,
			}
			return nil
		}

		decremented, err := s.books.DecrementQuantity(ctx, tx, book.ID)
		if err != nil {
			return apperror.FromStorage(err, "failed to decrement stock")
		}
		if !decremented {
			logger.Warn("Stock already exhausted at reconciliation", map[string]interface{}{
				"book_id":        book.ID.String(),
				"transaction_id": transactionID,
			})
		}

		marked, err := s.orders.MarkPaid(ctx, tx, order.ID)
		if err != nil {
			return apperror.FromStorage(err, "failed to mark order paid")
		}
		if !marked {
			logger.Warn("Order left pending before reconciliation", map[string]interface{}{
				"order_id":       order.ID.String(),
				"transaction_id": transactionID,
			})
		}

		resp = &model.ReconcileResponse{
			TransactionID: transactionID,
			PaymentID:     payment.ID,
			OrderID:       order.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.AlreadyDone {
		logger.Info("Payment reconciled", map[string]interface{}{
			"transaction_id": transactionID,
			"payment_id":     resp.PaymentID.String(),
			"order_id":       resp.OrderID.String(),
		})
		s.enqueueConfirmation(order, payment)
	}

	return resp, nil
}

func parseSessionMetadata(session *model.CheckoutSession) (orderID, bookID uuid.UUID, err error) {
	orderID, parseErr := uuid.Parse(session.Metadata[model.MetaOrderID])
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.KindPaymentProvider, "checkout session metadata is missing the order reference")
	}
	bookID, parseErr = uuid.Parse(session.Metadata[model.MetaBookID])
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.KindPaymentProvider, "checkout session metadata is missing the book reference")
	}
	return orderID, bookID, nil
}

// enqueueConfirmation hands the confirmation email to the worker. Failures
// are logged only: the payment is committed and must not be rolled back
// over a notification.
func (s *paymentService) enqueueConfirmation(order *orderModel.Order, payment *model.Payment) {
	if s.asynq == nil {
		return
	}

	payload, err := json.Marshal(orderModel.SendOrderConfirmationPayload{
		OrderID:       order.ID,
		BookTitle:     payment.BookTitle,
		CustomerEmail: payment.CustomerEmail,
		Total:         payment.Price,
		TransactionID: payment.TransactionID,
	})
	if err != nil {
		logger.Error("Failed to marshal confirmation payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendOrderConfirmation, payload)
	if _, err := s.asynq.Enqueue(task, asynq.Queue(shared.QueueEmail), asynq.MaxRetry(3)); err != nil {
		logger.Error("Failed to enqueue confirmation email", err)
	}
}

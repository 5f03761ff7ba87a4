package service

import (
	"context"

	"bookcourier-backend/internal/domains/payment/model"
)

// PaymentService starts hosted checkout sessions and reconciles them once
// the customer returns from the provider.
type PaymentService interface {
	// CreateCheckoutSession registers a session with the provider for the
	// given pending order and returns the redirect URL. No local state is
	// written; the session metadata is the only link back to the order.
	CreateCheckoutSession(ctx context.Context, req model.CreateCheckoutSessionRequest) (*model.CreateCheckoutSessionResponse, error)

	// Reconcile verifies a session reference against the provider and, on
	// first confirmation, records the payment, decrements stock and marks
	// the order paid in one transaction. Repeats return the original
	// payment id and mutate nothing.
	Reconcile(ctx context.Context, req model.ReconcileRequest) (*model.ReconcileResponse, error)

	// ListInvoices returns a customer's payments, newest first.
	ListInvoices(ctx context.Context, req model.ListInvoicesRequest) ([]model.Payment, error)
}

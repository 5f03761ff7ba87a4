package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"bookcourier-backend/internal/domains/payment/model"
)

// =====================================================
// GATEWAY INTERFACE
// =====================================================

// CheckoutGateway integrates the hosted checkout provider. All state lives
// on the provider side until reconciliation; the gateway holds nothing
// locally.
type CheckoutGateway interface {
	// CreateSession registers a single-line-item checkout and returns the
	// session including the redirect URL.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*model.CheckoutSession, error)

	// RetrieveSession re-fetches the authoritative session record by its
	// reference. Client-reported amounts and metadata are never trusted.
	RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

// CreateSessionRequest is the order/book snapshot sent to the provider.
// UnitPrice is in decimal currency; the gateway converts to minor units.
type CreateSessionRequest struct {
	Name          string
	UnitPrice     decimal.Decimal
	ImageURL      string
	CustomerEmail string
	Quantity      int
	Metadata      map[string]string
}

// MinorUnits converts the unit price to the provider's integer minor units,
// rounding to the nearest cent.
func (r CreateSessionRequest) MinorUnits() int64 {
	return r.UnitPrice.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

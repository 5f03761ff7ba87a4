package mock

import (
	"context"
	"fmt"
	"sync"

	"bookcourier-backend/internal/domains/payment/gateway"
	"bookcourier-backend/internal/domains/payment/model"
)

// Gateway is an in-memory checkout provider for tests and local development.
// Sessions are created "open"; CompleteSession flips them the way a real
// customer finishing checkout would.
type Gateway struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*model.CheckoutSession

	// CreateErr / RetrieveErr force provider failures.
	CreateErr   error
	RetrieveErr error
}

func NewGateway() *Gateway {
	return &Gateway{
		sessions: make(map[string]*model.CheckoutSession),
	}
}

func (g *Gateway) CreateSession(ctx context.Context, req gateway.CreateSessionRequest) (*model.CheckoutSession, error) {
	if g.CreateErr != nil {
		return nil, model.NewProviderError("create session", g.CreateErr)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	session := &model.CheckoutSession{
		ID:            fmt.Sprintf("cs_test_%d", g.seq),
		URL:           fmt.Sprintf("https://checkout.example.com/pay/cs_test_%d", g.seq),
		Status:        model.SessionStatusOpen,
		PaymentIntent: fmt.Sprintf("pi_test_%d", g.seq),
		AmountTotal:   req.MinorUnits() * int64(req.Quantity),
		CustomerEmail: req.CustomerEmail,
		Metadata:      req.Metadata,
	}
	g.sessions[session.ID] = session

	return cloneSession(session), nil
}

func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	if g.RetrieveErr != nil {
		return nil, model.NewProviderError("retrieve session", g.RetrieveErr)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, model.NewProviderError("retrieve session", fmt.Errorf("no such session: %s", sessionID))
	}

	return cloneSession(session), nil
}

// CompleteSession marks a session paid, as the hosted page would.
func (g *Gateway) CompleteSession(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if session, ok := g.sessions[sessionID]; ok {
		session.Status = model.SessionStatusComplete
	}
}

func cloneSession(s *model.CheckoutSession) *model.CheckoutSession {
	copied := *s
	copied.Metadata = make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		copied.Metadata[k] = v
	}
	return &copied
}

var _ gateway.CheckoutGateway = (*Gateway)(nil)

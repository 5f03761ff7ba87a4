package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookcourier-backend/internal/domains/payment/gateway"
	"bookcourier-backend/internal/domains/payment/model"
)

// =====================================================
// STRIPE CHECKOUT CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates the hosted checkout client. Every call carries the
// configured timeout so a wedged provider surfaces as a retryable error
// instead of hanging the request.
func NewClient(config *Config) gateway.CheckoutGateway {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// sessionPayload mirrors the fields of the provider's session object that
// reconciliation needs.
type sessionPayload struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Status          string            `json:"status"`
	PaymentIntent   string            `json:"payment_intent"`
	AmountTotal     int64             `json:"amount_total"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *sessionPayload) toModel() *model.CheckoutSession {
	email := p.CustomerEmail
	if email == "" && p.CustomerDetails != nil {
		email = p.CustomerDetails.Email
	}

	return &model.CheckoutSession{
		ID:            p.ID,
		URL:           p.URL,
		Status:        p.Status,
		PaymentIntent: p.PaymentIntent,
		AmountTotal:   p.AmountTotal,
		CustomerEmail: email,
		Metadata:      p.Metadata,
	}
}

// CreateSession registers a single-line-item hosted checkout. Metadata is
// attached verbatim so reconciliation can recover the order after the
// redirect gap.
func (c *Client) CreateSession(ctx context.Context, req gateway.CreateSessionRequest) (*model.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.config.SuccessURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", c.config.CancelURL)
	form.Set("customer_email", req.CustomerEmail)

	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][product_data][name]", req.Name)
	if req.ImageURL != "" {
		form.Set("line_items[0][price_data][product_data][images][0]", req.ImageURL)
	}
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.MinorUnits(), 10))
	form.Set("line_items[0][quantity]", strconv.Itoa(req.Quantity))

	for key, value := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	payload, err := c.call(ctx, http.MethodPost, c.config.sessionsURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, model.NewProviderError("create session", err)
	}

	return payload.toModel(), nil
}

// RetrieveSession re-fetches the authoritative session record.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	payload, err := c.call(ctx, http.MethodGet, c.config.sessionURL(sessionID), nil)
	if err != nil {
		return nil, model.NewProviderError("retrieve session", err)
	}

	return payload.toModel(), nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, body io.Reader) (*sessionPayload, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call checkout API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload sessionPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := "unexpected status " + resp.Status
		if payload.Error != nil && payload.Error.Message != "" {
			message = payload.Error.Message
		}
		return nil, fmt.Errorf("checkout API error: %s", message)
	}

	return &payload, nil
}

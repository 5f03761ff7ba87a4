package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/shopspring/decimal"

	"bookcourier-backend/internal/config"
	"bookcourier-backend/pkg/logger"
)

// OrderConfirmationData is everything the confirmation email needs.
type OrderConfirmationData struct {
	CustomerEmail string
	BookTitle     string
	Total         decimal.Decimal
	TransactionID string
}

// EmailService sends transactional mail.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
}

type smtpEmailService struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPEmailService builds a sender from config. With no username the
// connection is unauthenticated, which suits local mail catchers.
func NewSMTPEmailService(cfg config.EmailConfig) EmailService {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpEmailService{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	subject := "Your bookCourier order is confirmed"
	body := fmt.Sprintf(`Hi,

Thanks for your purchase!

  Book:        %s
  Total:       %s
  Payment ref: %s

Your order is on its way.`, data.BookTitle, data.Total.StringFixed(2), data.TransactionID)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, data.CustomerEmail, subject, body))

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{data.CustomerEmail}, msg); err != nil {
		logger.Error("Failed to send confirmation email", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

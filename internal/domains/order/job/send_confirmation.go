package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/infrastructure/email"
	"bookcourier-backend/pkg/logger"
)

// SendConfirmationHandler emails the customer after a reconciled payment.
func SendConfirmationHandler(emailSvc email.EmailService) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p model.SendOrderConfirmationPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			// Malformed payload never fixes itself on retry.
			return asynq.SkipRetry
		}

		err := emailSvc.SendOrderConfirmation(ctx, email.OrderConfirmationData{
			CustomerEmail: p.CustomerEmail,
			BookTitle:     p.BookTitle,
			Total:         p.Total,
			TransactionID: p.TransactionID,
		})
		if err != nil {
			return err
		}

		logger.Info("Order confirmation sent", map[string]interface{}{
			"order_id": p.OrderID.String(),
			"to":       p.CustomerEmail,
		})
		return nil
	}
}

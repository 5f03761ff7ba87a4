package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/domains/order/service"
	"bookcourier-backend/pkg/logger"
)

// CancelStaleOrdersHandler sweeps pending, unpaid orders abandoned at
// checkout. Runs on a schedule; the cutoff travels in the payload.
func CancelStaleOrdersHandler(orderSvc service.OrderService) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p model.CancelStaleOrdersPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		maxAge := time.Duration(p.MaxAgeHours) * time.Hour
		if maxAge <= 0 {
			maxAge = 72 * time.Hour
		}

		cancelled, err := orderSvc.CancelStaleOrders(ctx, maxAge)
		if err != nil {
			return err
		}

		logger.Info("Stale order sweep finished", map[string]interface{}{
			"cancelled": cancelled,
			"max_age":   maxAge.String(),
		})
		return nil
	}
}

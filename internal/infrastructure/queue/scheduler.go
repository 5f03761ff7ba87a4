package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookcourier-backend/internal/config"
	orderModel "bookcourier-backend/internal/domains/order/model"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/pkg/logger"
)

// Scheduler registers recurring jobs against redis.
type Scheduler struct {
	scheduler *asynq.Scheduler
	worker    config.WorkerConfig
}

func NewScheduler(redisCfg config.RedisConfig, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Host,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		worker:    workerCfg,
	}
}

// RegisterJobs wires every scheduled job. Currently only the stale-order
// sweep.
func (s *Scheduler) RegisterJobs() error {
	return s.registerCancelStaleOrdersJob()
}

// The sweep runs off-peak and cancels pending, unpaid orders whose checkout
// was abandoned. The exact cutoff is re-checked by the conditional update,
// so an overlapping run is harmless.
func (s *Scheduler) registerCancelStaleOrdersJob() error {
	payload, err := json.Marshal(orderModel.CancelStaleOrdersPayload{
		MaxAgeHours: int(s.worker.StaleOrderMaxAge.Hours()),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCancelStaleOrders, payload)

	_, err = s.scheduler.Register(
		s.worker.StaleOrderCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CancelStaleOrders job", err)
		return err
	}

	logger.Info("Registered CancelStaleOrders", map[string]interface{}{
		"cron":    s.worker.StaleOrderCron,
		"max_age": s.worker.StaleOrderMaxAge.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"bookcourier-backend/internal/domains/order/job"
	"bookcourier-backend/internal/infrastructure/queue"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/pkg/container"
	"bookcourier-backend/pkg/logger"
)

// The worker process consumes the task queues (confirmation emails) and
// runs the scheduled stale-order sweep. It shares the container with the
// API but serves no HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Startup] No .env file found, using environment")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Startup] Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	redisOpt := asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: c.Config.Worker.Concurrency,
		Queues: map[string]int{
			shared.QueueDefault: 5,
			shared.QueueEmail:   3,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeSendOrderConfirmation, job.SendConfirmationHandler(c.Email))
	mux.HandleFunc(shared.TypeCancelStaleOrders, job.CancelStaleOrdersHandler(c.OrderService))

	scheduler := queue.NewScheduler(c.Config.Redis, c.Config.Worker)
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Startup] Failed to register scheduled jobs: %v", err)
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Exited with error: %v", err)
		}
	}()

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Exited with error: %v", err)
		}
	}()

	log.Println("[Worker] Processing tasks")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Stopping worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Shutdown] Stopped")
}

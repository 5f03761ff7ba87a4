package main

import (
	"log"

	"github.com/joho/godotenv"

	"bookcourier-backend/pkg/container"
	"bookcourier-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("[Startup] No .env file found, using environment")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Startup] Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	if err := Serve(c); err != nil {
		log.Fatalf("[Startup] Server exited with error: %v", err)
	}
}

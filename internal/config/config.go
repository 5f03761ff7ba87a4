package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	MinIO    MinIOConfig
	Email    EmailConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// JWTConfig holds two secrets: IdentitySecret verifies credentials minted by
// the external identity provider, Secret signs the API's own tokens.
type JWTConfig struct {
	Secret         string
	IdentitySecret string
}

// CheckoutConfig configures the hosted checkout provider.
type CheckoutConfig struct {
	SecretKey  string        // API secret key
	APIURL     string        // provider base URL
	SuccessURL string        // frontend redirect after payment
	CancelURL  string        // frontend redirect on abort
	Timeout    time.Duration // per-call HTTP timeout
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// WorkerConfig configures the asynq worker and scheduler.
type WorkerConfig struct {
	Concurrency       int
	StaleOrderMaxAge  time.Duration // pending+unpaid orders older than this get swept
	StaleOrderCron    string        // cron spec for the sweep
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	checkoutTimeout, err := time.ParseDuration(getEnv("CHECKOUT_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_TIMEOUT: %w", err)
	}

	staleAge, err := time.ParseDuration(getEnv("WORKER_STALE_ORDER_MAX_AGE", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_STALE_ORDER_MAX_AGE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "bookCourier API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "bookcourier"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bookcourier"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			IdentitySecret: getEnv("IDENTITY_JWT_SECRET", "identity-secret-change-in-production"),
		},
		Checkout: CheckoutConfig{
			SecretKey:  getEnv("CHECKOUT_SECRET_KEY", ""),
			APIURL:     getEnv("CHECKOUT_API_URL", "https://api.stripe.com"),
			SuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payment/success"),
			CancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/payment/cancelled"),
			Timeout:    checkoutTimeout,
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bookcourier"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "noreply@bookcourier.com"),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvInt("WORKER_CONCURRENCY", 10),
			StaleOrderMaxAge: staleAge,
			StaleOrderCron:   getEnv("WORKER_STALE_ORDER_CRON", "0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical values.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.JWT.IdentitySecret == "identity-secret-change-in-production" {
			return fmt.Errorf("IDENTITY_JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Checkout.SecretKey == "" {
			return fmt.Errorf("CHECKOUT_SECRET_KEY must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

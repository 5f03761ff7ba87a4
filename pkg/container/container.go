package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"bookcourier-backend/internal/config"
	infraCache "bookcourier-backend/internal/infrastructure/cache"
	"bookcourier-backend/internal/infrastructure/database"
	"bookcourier-backend/internal/infrastructure/email"
	"bookcourier-backend/internal/infrastructure/storage"
	"bookcourier-backend/pkg/cache"
	pkgdb "bookcourier-backend/pkg/database"
	"bookcourier-backend/pkg/jwt"

	bookHandler "bookcourier-backend/internal/domains/book/handler"
	bookRepo "bookcourier-backend/internal/domains/book/repository"
	bookService "bookcourier-backend/internal/domains/book/service"
	orderHandler "bookcourier-backend/internal/domains/order/handler"
	orderRepo "bookcourier-backend/internal/domains/order/repository"
	orderService "bookcourier-backend/internal/domains/order/service"
	"bookcourier-backend/internal/domains/payment/gateway/stripe"
	paymentHandler "bookcourier-backend/internal/domains/payment/handler"
	paymentRepo "bookcourier-backend/internal/domains/payment/repository"
	paymentService "bookcourier-backend/internal/domains/payment/service"
	userHandler "bookcourier-backend/internal/domains/user/handler"
	userRepo "bookcourier-backend/internal/domains/user/repository"
	userService "bookcourier-backend/internal/domains/user/service"
	wishlistHandler "bookcourier-backend/internal/domains/wishlist/handler"
	wishlistRepo "bookcourier-backend/internal/domains/wishlist/repository"
	wishlistService "bookcourier-backend/internal/domains/wishlist/service"
)

// =====================================================
// CONTAINER
// =====================================================

// Container is the root of the dependency graph. Built once at startup,
// torn down with Cleanup.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Email       email.EmailService

	// Repositories
	BookRepo     bookRepo.BookRepository
	OrderRepo    orderRepo.OrderRepository
	PaymentRepo  paymentRepo.PaymentRepository
	UserRepo     userRepo.UserRepository
	WishlistRepo wishlistRepo.WishlistRepository

	// Services
	BookService     bookService.BookService
	OrderService    orderService.OrderService
	PaymentService  paymentService.PaymentService
	UserService     userService.UserService
	WishlistService wishlistService.WishlistService

	// Handlers
	BookHandler     *bookHandler.BookHandler
	OrderHandler    *orderHandler.OrderHandler
	PaymentHandler  *paymentHandler.PaymentHandler
	UserHandler     *userHandler.UserHandler
	WishlistHandler *wishlistHandler.WishlistHandler
}

// NewContainer builds the full graph. Initialization order matters:
// config, then infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ----- configuration -----
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// ----- database -----
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	// ----- redis -----
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	log.Println("[Container] Redis connected")

	// ----- object storage -----
	objects, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	log.Println("[Container] Object storage ready")

	// ----- task queue -----
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ----- misc infrastructure -----
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Email = email.NewSMTPEmailService(cfg.Email)

	checkoutGateway := stripe.NewClient(&stripe.Config{
		SecretKey:  cfg.Checkout.SecretKey,
		APIURL:     cfg.Checkout.APIURL,
		SuccessURL: cfg.Checkout.SuccessURL,
		CancelURL:  cfg.Checkout.CancelURL,
		Timeout:    cfg.Checkout.Timeout,
	})

	// ----- repositories -----
	c.BookRepo = bookRepo.NewPostgresBookRepository(db.Pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(db.Pool)
	c.PaymentRepo = paymentRepo.NewPostgresPaymentRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(db.Pool)
	c.WishlistRepo = wishlistRepo.NewPostgresWishlistRepository(db.Pool)

	// ----- services -----
	identityVerifier := jwt.NewManager(cfg.JWT.IdentitySecret)
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, identityVerifier, c.JWTManager)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		objects,
		storage.NewImageProcessor(),
		c.UserService.ResolveRole,
	)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.BookRepo)
	c.PaymentService = paymentService.NewPaymentService(
		c.PaymentRepo,
		c.OrderRepo,
		c.BookRepo,
		checkoutGateway,
		pkgdb.NewPoolRunner(db.Pool),
		c.AsynqClient,
	)
	c.WishlistService = wishlistService.NewWishlistService(c.WishlistRepo, c.BookRepo)

	// ----- handlers -----
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.WishlistHandler = wishlistHandler.NewWishlistHandler(c.WishlistService)

	log.Println("[Container] Dependency graph ready")
	return c, nil
}

// Cleanup releases external connections in reverse initialization order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] asynq client close: %v", err)
		}
	}

	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Printf("[Container] redis close: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("[Container] Cleanup complete")
}

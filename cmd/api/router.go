package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/middleware"
	"bookcourier-backend/pkg/container"
)

// SetupRouter mounts the full HTTP surface under /api/v1.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler(c))

	v1 := router.Group("/api/v1")

	// ----- public -----
	v1.GET("/books", c.BookHandler.List)
	v1.GET("/books/:id", c.BookHandler.GetByID)
	v1.POST("/users", c.UserHandler.Login)
	v1.GET("/users/role/:email", c.UserHandler.GetRole)
	// Reconciliation is driven by the provider redirect; the session
	// reference is verified server-side, so no caller identity is needed.
	v1.POST("/payments/success", c.PaymentHandler.PaymentSuccess)

	// ----- authenticated -----
	authed := v1.Group("")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.POST("/orders", c.OrderHandler.Create)
		authed.GET("/orders", c.OrderHandler.List)
		authed.GET("/orders/:id", c.OrderHandler.GetByID)
		authed.PATCH("/orders/:id/cancel", c.OrderHandler.Cancel)

		authed.POST("/payments/checkout-session", c.PaymentHandler.CreateCheckoutSession)
		authed.GET("/payments/my-invoices", c.PaymentHandler.MyInvoices)

		authed.POST("/wishlist", c.WishlistHandler.Add)
		authed.GET("/wishlist", c.WishlistHandler.List)
		authed.DELETE("/wishlist/:bookId", c.WishlistHandler.Remove)
	}

	// ----- librarian dashboard -----
	librarian := v1.Group("")
	librarian.Use(middleware.Auth(c.JWTManager))
	librarian.Use(middleware.RequireRole(c.UserService, shared.RoleLibrarian, shared.RoleAdmin))
	{
		librarian.POST("/books", c.BookHandler.Create)
		librarian.PUT("/books/:id", c.BookHandler.Update)
		librarian.POST("/books/:id/cover", c.BookHandler.UploadCover)
		librarian.PATCH("/orders/:id/status", c.OrderHandler.UpdateStatus)
	}

	// ----- admin -----
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(c.JWTManager))
	admin.Use(middleware.RequireRole(c.UserService, shared.RoleAdmin))
	{
		admin.DELETE("/books/:id", c.BookHandler.Delete)
		admin.POST("/books/import", c.BookHandler.BulkImport)
		admin.PATCH("/users/:id/role", c.UserHandler.UpdateRole)
	}

	return router
}

// healthHandler reports liveness plus the state of the two stores.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}

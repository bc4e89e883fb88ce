package routes

import (
	"myfinbank-admin/internal/adapters/http/handlers"
	"myfinbank-admin/internal/adapters/http/middleware"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, c *Container, logger logging.Logger) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(c.DB, cfg)
	authHandler := handlers.NewAuthHandler(c.Auth, cfg)
	adminHandler := handlers.NewAdminHandler(c.Admins)
	loanHandler := handlers.NewLoanHandler(c.Loans)
	customerHandler := handlers.NewCustomerHandler(c.Customers)

	// Every protected path is authenticated and guarded here, before any
	// route matches
	policy := middleware.NewPathPolicy(cfg.Auth)
	app.Use(middleware.Authenticate(c.Auth, policy, logger))
	app.Use(middleware.RequireAdmin(policy, middleware.NewResponder(policy, cfg.Auth)))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public), served at the root and under /api/admin
	setupAuthRoutes(app, authHandler, cfg)
	setupAuthRoutes(app.Group("/api/admin"), authHandler, cfg)

	// Profile routes
	profileRoutes := app.Group("/api/admin/profile")
	profileRoutes.Get("/", adminHandler.GetProfile)
	profileRoutes.Put("/", adminHandler.UpdateProfile)

	// Loan approval routes
	loanRoutes := app.Group("/admin/loans/api", middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	// Customer management routes
	customerRoutes := app.Group("/admin/customers/api", middleware.NoCacheHeaders())
	setupCustomerRoutes(customerRoutes, customerHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/login", middleware.AuthRateLimiter(cfg.RateLimit.Auth), handler.Login)
	router.Post("/register", middleware.AuthRateLimiter(cfg.RateLimit.Auth), handler.Register)
	router.Post("/logout", handler.Logout)
	router.Get("/logout", handler.Logout)
	router.Get("/validate-session", handler.ValidateSession)
}

// setupLoanRoutes configures loan approval routes (Admin only)
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/pending", handler.ListPending)
	router.Get("/status/:status", handler.ListByStatus)
	router.Post("/approve/:id", handler.Approve)
	router.Post("/reject/:id", handler.Reject)
	router.Post("/batch-process", handler.BatchProcess)
	router.Get("/:id", handler.GetByID)
}

// setupCustomerRoutes configures customer management routes (Admin only)
func setupCustomerRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Get("/all", handler.List)
	router.Get("/active", handler.ListActive)
	router.Get("/search", handler.Search)
	router.Get("/recent", handler.Recent)
	router.Get("/stats", handler.Stats)
	router.Post("/:id/toggle-status", handler.ToggleStatus)
	router.Get("/:id", handler.GetByID)
}

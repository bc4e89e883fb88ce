package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myfinbank-admin/internal/adapters/http/middleware"
	"myfinbank-admin/internal/adapters/http/routes"
	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/logging"
	"myfinbank-admin/internal/pkg/password"

	"github.com/gofiber/fiber/v2"

	_ "myfinbank-admin/docs" // Swagger docs
)

// @title MyFinBank Admin API
// @version 1.0
// @description Admin session gateway, loan approval and customer management API for MyFinBank

// @contact.name API Support
// @contact.email support@myfinbank.com

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.IsDev())

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the first admin in development
	if cfg.IsDev() {
		seeder := config.NewSeeder(repositories.NewAdminRepository(db), password.NewBcrypt(password.DefaultCost))
		if err := seeder.Run(context.Background()); err != nil {
			log.Printf("⚠️ Warning: Failed to seed admin: %v", err)
		}
	}

	container := routes.NewContainer(db, cfg, logger)

	// Start Cron Service for the pending-loan digest
	cronService := services.NewCronService(cfg, container.Loans, container.Notifier, logger)
	if err := cronService.Start(); err != nil {
		log.Printf("⚠️ Warning: Failed to start cron service: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MyFinBank Admin API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, container, logger)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		gracefulShutdown(app)
		close(done)
	}()

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	<-done

	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := container.Loans.Close(ctx); err != nil {
		log.Printf("⚠️ Pending notifications not flushed: %v", err)
	}
	if err := container.Customers.Close(ctx); err != nil {
		log.Printf("⚠️ Pending notifications not flushed: %v", err)
	}

	if err := config.CloseDatabase(db); err != nil {
		log.Printf("❌ Error closing database: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

// gracefulShutdown waits for a termination signal and stops accepting requests
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
}

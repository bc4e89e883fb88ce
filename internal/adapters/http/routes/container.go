package routes

import (
	"myfinbank-admin/internal/adapters/http/handlers"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/jwt"
	"myfinbank-admin/internal/pkg/logging"
	"myfinbank-admin/internal/pkg/password"

	"gorm.io/gorm"
)

// Container holds the services the HTTP layer is built from
type Container struct {
	Auth      *services.AuthService
	Admins    *services.AdminService
	Loans     *services.LoanApprovalService
	Customers *services.CustomerService
	Notifier  *services.EmailNotifier
	DB        handlers.Pinger
}

// NewContainer wires repositories and services over db
func NewContainer(db *gorm.DB, cfg *config.Config, logger logging.Logger) *Container {
	// Repositories
	adminRepo := repositories.NewAdminRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)

	// Services
	codec := jwt.NewCodec(cfg.JWT.Secret)
	hasher := password.NewBcrypt(password.DefaultCost)
	notifier := services.NewEmailNotifier(cfg, logger)

	return &Container{
		Auth:      services.NewAuthService(adminRepo, codec, hasher, cfg, logger),
		Admins:    services.NewAdminService(adminRepo),
		Loans:     services.NewLoanApprovalService(loanRepo, customerRepo, notifier, cfg.NotifyTimeout(), logger),
		Customers: services.NewCustomerService(customerRepo, loanRepo, notifier, cfg.NotifyTimeout(), logger),
		Notifier:  notifier,
		DB:        config.DatabasePinger{DB: db},
	}
}

package repositories

import (
	"context"
	"errors"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/core/domain"
)

// ErrStatusConflict is returned by LoanRepository.Transition when the loan
// exists but its current status is not the expected source status.
var ErrStatusConflict = errors.New("loan status does not match expected status")

// ErrActiveConflict is returned by CustomerRepository.SetActive when the
// customer's active flag already changed underneath the caller.
var ErrActiveConflict = errors.New("customer active flag does not match expected value")

// AdminRepository defines admin repository interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, admin *models.Admin) error
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

// Transition describes a guarded status change of one loan application
type Transition struct {
	From        domain.LoanStatus
	To          domain.LoanStatus
	ApprovedBy  string
	Remarks     string
	ProcessedAt time.Time
}

// LoanRepository defines loan application repository interface
type LoanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	ListPending(ctx context.Context) ([]*models.LoanApplication, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus, offset, limit int) ([]*models.LoanApplication, int64, error)
	CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error)
	OldestPending(ctx context.Context) (*models.LoanApplication, error)
	CountByCustomer(ctx context.Context, customerIDs []uint) (map[uint]LoanCounts, error)

	// Transition applies t to loan id only if its status still equals t.From.
	// The check and the write are atomic per record. It returns the stored
	// record after the change, gorm.ErrRecordNotFound when no such loan
	// exists, or ErrStatusConflict when the status guard fails.
	Transition(ctx context.Context, id uint, t Transition) (*models.LoanApplication, error)
}

// LoanCounts tallies the applications of one customer
type LoanCounts struct {
	Total    int64
	Pending  int64
	Approved int64
}

// CustomerFilter narrows a customer listing. Zero values select everything.
type CustomerFilter struct {
	ActiveOnly bool
	Keyword    string
	Limit      int
}

// CustomerRepository defines access to the customers table. The only write
// is the active flag.
type CustomerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*models.Customer, error)
	Count(ctx context.Context) (total, active int64, err error)

	// SetActive flips the active flag to active only while it still holds
	// the opposite value. It returns gorm.ErrRecordNotFound for an unknown
	// id and ErrActiveConflict when the flag already equals active.
	SetActive(ctx context.Context, id uint, active bool, at time.Time) (*models.Customer, error)

	// AccountNumber returns the first account number of the customer, or
	// "" when the customer holds no account.
	AccountNumber(ctx context.Context, id uint) (string, error)
}

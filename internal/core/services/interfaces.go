package services

import (
	"context"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
)

// Note: AuthService implementation is in auth_service.go
// Note: LoanApprovalService implementation is in loan_service.go
// Note: CustomerService implementation is in customer_service.go

// PasswordHasher is the one-way hash/verify capability used for admin secrets
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Clock returns the current instant
type Clock func() time.Time

// DecisionNotice is the payload sent to a customer once a loan is decided
type DecisionNotice struct {
	Loan          *models.LoanApplication
	CustomerEmail string
	CustomerName  string
}

// DigestNotice summarizes the pending queue for an administrator
type DigestNotice struct {
	To           string
	PendingCount int64
	OldestLoanID uint
	GeneratedAt  time.Time
}

// AccountNotice is the payload sent to a customer whose account was deactivated
type AccountNotice struct {
	CustomerEmail string
	CustomerName  string
	AccountNumber string
}

// Notifier delivers outbound messages. Implementations must honor ctx
// cancellation; callers treat every error as non-fatal.
type Notifier interface {
	LoanApproved(ctx context.Context, notice DecisionNotice) error
	LoanRejected(ctx context.Context, notice DecisionNotice) error
	PendingDigest(ctx context.Context, notice DigestNotice) error
	AccountDeactivated(ctx context.Context, notice AccountNotice) error
}

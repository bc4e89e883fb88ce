package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/logging"
	"myfinbank-admin/internal/pkg/pagination"

	"gorm.io/gorm"
)

const (
	DefaultApproveRemarks = "Loan approved by admin"
	DefaultRejectRemarks  = "Loan rejected by admin"

	defaultNotifyTimeout = 5 * time.Second
)

// LoanApprovalService moves pending loan applications to a terminal status
type LoanApprovalService struct {
	loanRepo      repositories.LoanRepository
	customerRepo  repositories.CustomerRepository
	notifier      Notifier
	logger        logging.Logger
	now           Clock
	notifyTimeout time.Duration

	inflight sync.WaitGroup
}

// NewLoanApprovalService creates a new loan approval service.
// notifier may be nil, in which case decisions are not announced.
func NewLoanApprovalService(
	loanRepo repositories.LoanRepository,
	customerRepo repositories.CustomerRepository,
	notifier Notifier,
	notifyTimeout time.Duration,
	logger logging.Logger,
) *LoanApprovalService {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &LoanApprovalService{
		loanRepo:      loanRepo,
		customerRepo:  customerRepo,
		notifier:      notifier,
		logger:        logger.With("component", "loan_approval"),
		now:           time.Now,
		notifyTimeout: notifyTimeout,
	}
}

// WithClock replaces the time source used for processedAt
func (s *LoanApprovalService) WithClock(clock Clock) *LoanApprovalService {
	s.now = clock
	return s
}

// DecisionInput represents approve/reject input
type DecisionInput struct {
	Remarks string `json:"remarks"`
}

// BatchInput represents batch-process input
type BatchInput struct {
	LoanIDs []uint `json:"loanIds"`
	Action  string `json:"action"`
	Remarks string `json:"remarks"`
}

// BatchFailure describes one item of a batch that was not applied
type BatchFailure struct {
	LoanID uint   `json:"loanId"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// BatchResult summarizes a batch decision
type BatchResult struct {
	SuccessCount int            `json:"successCount"`
	ErrorCount   int            `json:"errorCount"`
	Processed    []uint         `json:"processed"`
	Failures     []BatchFailure `json:"failures,omitempty"`
}

// Approve moves a PENDING loan to APPROVED
func (s *LoanApprovalService) Approve(ctx context.Context, loanID uint, actor, remarks string) (*models.LoanApplication, error) {
	return s.Decide(ctx, loanID, domain.DecisionApprove, actor, remarks)
}

// Reject moves a PENDING loan to REJECTED
func (s *LoanApprovalService) Reject(ctx context.Context, loanID uint, actor, remarks string) (*models.LoanApplication, error) {
	return s.Decide(ctx, loanID, domain.DecisionReject, actor, remarks)
}

// Decide applies decision to loanID on behalf of actor. The status check and
// the write happen as one compare-and-set, so of several concurrent decisions
// on the same loan exactly one succeeds and the rest get
// domain.ErrInvalidStateTransition.
func (s *LoanApprovalService) Decide(ctx context.Context, loanID uint, decision domain.Decision, actor, remarks string) (*models.LoanApplication, error) {
	target, err := decision.Target()
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, domain.ErrUnauthenticated
	}

	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		remarks = defaultRemarks(decision)
	}

	loan, err := s.loanRepo.Transition(ctx, loanID, repositories.Transition{
		From:        domain.LoanStatusPending,
		To:          target,
		ApprovedBy:  actor,
		Remarks:     remarks,
		ProcessedAt: s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, domain.ErrLoanNotFound
		case errors.Is(err, repositories.ErrStatusConflict):
			return nil, domain.ErrInvalidStateTransition
		default:
			return nil, domain.Wrap(domain.KindInternal, "update loan status", err)
		}
	}

	s.logger.Info(ctx, "loan decided",
		"loan_id", loan.ID,
		"status", string(loan.Status),
		"actor", actor,
	)

	s.announce(ctx, *loan, decision)

	return loan, nil
}

// BatchProcess applies the same decision to every id in input.LoanIDs.
// Items are independent: a failed item never rolls back the others.
func (s *LoanApprovalService) BatchProcess(ctx context.Context, input *BatchInput, actor string) (*BatchResult, error) {
	if len(input.LoanIDs) == 0 {
		return nil, domain.NewError(domain.KindInvalidInput, "loanIds must not be empty")
	}
	decision := domain.Decision(strings.ToLower(strings.TrimSpace(input.Action)))
	if _, err := decision.Target(); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, domain.ErrUnauthenticated
	}

	result := &BatchResult{Processed: []uint{}}
	for _, id := range input.LoanIDs {
		if _, err := s.Decide(ctx, id, decision, actor, input.Remarks); err != nil {
			result.ErrorCount++
			result.Failures = append(result.Failures, BatchFailure{
				LoanID: id,
				Code:   domain.KindOf(err).String(),
				Error:  err.Error(),
			})
			continue
		}
		result.SuccessCount++
		result.Processed = append(result.Processed, id)
	}

	s.logger.Info(ctx, "batch processed",
		"action", string(decision),
		"success", result.SuccessCount,
		"errors", result.ErrorCount,
		"actor", actor,
	)

	return result, nil
}

// GetByID returns one application with its customer details
func (s *LoanApprovalService) GetByID(ctx context.Context, loanID uint) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "load loan", err)
	}
	return s.present(ctx, loan), nil
}

// ListPending returns every PENDING application, oldest first
func (s *LoanApprovalService) ListPending(ctx context.Context) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.ListPending(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list pending loans", err)
	}
	return s.presentAll(ctx, loans), nil
}

// ListByStatus returns one page of applications with the given status
func (s *LoanApprovalService) ListByStatus(ctx context.Context, rawStatus string, params *pagination.Params) (*pagination.Response, error) {
	status, err := domain.ParseLoanStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	loans, total, err := s.loanRepo.ListByStatus(ctx, status, params.Offset, params.Limit)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list loans", err)
	}

	return pagination.NewResponse(s.presentAll(ctx, loans), params, total), nil
}

// PendingSummary counts PENDING applications and finds the oldest one
func (s *LoanApprovalService) PendingSummary(ctx context.Context) (int64, uint, error) {
	count, err := s.loanRepo.CountByStatus(ctx, domain.LoanStatusPending)
	if err != nil {
		return 0, 0, domain.Wrap(domain.KindInternal, "count pending loans", err)
	}
	if count == 0 {
		return 0, 0, nil
	}

	oldest, err := s.loanRepo.OldestPending(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, domain.Wrap(domain.KindInternal, "find oldest pending loan", err)
	}
	return count, oldest.ID, nil
}

// Wait blocks until every in-flight notification has finished
func (s *LoanApprovalService) Wait() {
	s.inflight.Wait()
}

// Close waits for in-flight notifications or until ctx is done
func (s *LoanApprovalService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// announce sends the decision email in the background. The outcome never
// reaches the caller; failures are logged.
func (s *LoanApprovalService) announce(ctx context.Context, loan models.LoanApplication, decision domain.Decision) {
	if s.notifier == nil {
		return
	}

	logger := s.logger.With("loan_id", loan.ID, "decision", string(decision))

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error(context.Background(), "notification panicked", "panic", fmt.Sprint(r))
			}
		}()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		customer, err := s.customerRepo.GetByID(nctx, loan.CustomerID)
		if err != nil {
			logger.Warn(nctx, "notification skipped, customer lookup failed", "customer_id", loan.CustomerID, "error", err)
			return
		}

		notice := DecisionNotice{
			Loan:          &loan,
			CustomerEmail: customer.Email,
			CustomerName:  customer.FullName(),
		}

		if decision == domain.DecisionApprove {
			err = s.notifier.LoanApproved(nctx, notice)
		} else {
			err = s.notifier.LoanRejected(nctx, notice)
		}
		if err != nil {
			logger.Warn(nctx, "notification failed", "to", customer.Email, "error", err)
		}
	}()
}

func (s *LoanApprovalService) present(ctx context.Context, loan *models.LoanApplication) *models.LoanResponse {
	resp := loan.ToResponse()
	if s.customerRepo == nil {
		return resp
	}
	customer, err := s.customerRepo.GetByID(ctx, loan.CustomerID)
	if err != nil {
		return resp
	}
	return resp.WithCustomer(customer)
}

func (s *LoanApprovalService) presentAll(ctx context.Context, loans []*models.LoanApplication) []*models.LoanResponse {
	out := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, s.present(ctx, loan))
	}
	return out
}

func defaultRemarks(d domain.Decision) string {
	if d == domain.DecisionApprove {
		return DefaultApproveRemarks
	}
	return DefaultRejectRemarks
}

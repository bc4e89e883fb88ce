package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/logging"

	"gorm.io/gorm"
)

// RecentCustomersLimit caps the recent-registrations listing
const RecentCustomersLimit = 10

// CustomerService is the admin view over customer accounts
type CustomerService struct {
	customerRepo  repositories.CustomerRepository
	loanRepo      repositories.LoanRepository
	notifier      Notifier
	logger        logging.Logger
	now           Clock
	notifyTimeout time.Duration

	inflight sync.WaitGroup
}

// NewCustomerService creates a new customer service.
// notifier may be nil, in which case deactivations are not announced.
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	loanRepo repositories.LoanRepository,
	notifier Notifier,
	notifyTimeout time.Duration,
	logger logging.Logger,
) *CustomerService {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &CustomerService{
		customerRepo:  customerRepo,
		loanRepo:      loanRepo,
		notifier:      notifier,
		logger:        logger.With("component", "customer_management"),
		now:           time.Now,
		notifyTimeout: notifyTimeout,
	}
}

// WithClock replaces the time source used for updatedAt
func (s *CustomerService) WithClock(clock Clock) *CustomerService {
	s.now = clock
	return s
}

// List returns every customer, newest registration first
func (s *CustomerService) List(ctx context.Context) ([]*models.CustomerResponse, error) {
	return s.list(ctx, repositories.CustomerFilter{})
}

// ListActive returns customers whose account is active
func (s *CustomerService) ListActive(ctx context.Context) ([]*models.CustomerResponse, error) {
	return s.list(ctx, repositories.CustomerFilter{ActiveOnly: true})
}

// Search matches keyword against first name, last name and email, ignoring case
func (s *CustomerService) Search(ctx context.Context, keyword string) ([]*models.CustomerResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrSearchKeywordRequired
	}
	return s.list(ctx, repositories.CustomerFilter{Keyword: keyword})
}

// Recent returns the latest registrations
func (s *CustomerService) Recent(ctx context.Context) ([]*models.CustomerResponse, error) {
	return s.list(ctx, repositories.CustomerFilter{Limit: RecentCustomersLimit})
}

// Stats counts customers by active flag
func (s *CustomerService) Stats(ctx context.Context) (*models.CustomerStats, error) {
	total, active, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "count customers", err)
	}
	return &models.CustomerStats{
		TotalCustomers:    total,
		ActiveCustomers:   active,
		InactiveCustomers: total - active,
	}, nil
}

// GetByID returns one customer with loan counts
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.presentAll(ctx, []*models.Customer{customer})[0], nil
}

// ToggleStatus flips the active flag of a customer. A deactivation is
// announced to the customer in the background.
func (s *CustomerService) ToggleStatus(ctx context.Context, id uint) (*models.CustomerResponse, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.customerRepo.SetActive(ctx, id, !current.Active, s.now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrCustomerNotFound
	case errors.Is(err, repositories.ErrActiveConflict):
		return nil, domain.ErrCustomerStatusChanged
	case err != nil:
		return nil, domain.Wrap(domain.KindInternal, "update customer status", err)
	}

	s.logger.Info(ctx, "customer status changed", "customer_id", id, "active", updated.Active)

	if !updated.Active {
		s.announce(ctx, *updated)
	}

	return s.presentAll(ctx, []*models.Customer{updated})[0], nil
}

// Wait blocks until every in-flight notification has finished
func (s *CustomerService) Wait() {
	s.inflight.Wait()
}

// Close waits for in-flight notifications or until ctx is done
func (s *CustomerService) Close(ctx context.Context) error {
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

func (s *CustomerService) find(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "get customer", err)
	}
	return customer, nil
}

func (s *CustomerService) list(ctx context.Context, filter repositories.CustomerFilter) ([]*models.CustomerResponse, error) {
	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list customers", err)
	}
	return s.presentAll(ctx, customers), nil
}

// presentAll attaches loan counts. A failed count leaves them at zero.
func (s *CustomerService) presentAll(ctx context.Context, customers []*models.Customer) []*models.CustomerResponse {
	ids := make([]uint, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}

	counts, err := s.loanRepo.CountByCustomer(ctx, ids)
	if err != nil {
		s.logger.Warn(ctx, "loan counts unavailable", "error", err)
	}

	out := make([]*models.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp := c.ToResponse()
		n := counts[c.ID]
		resp.ActiveLoans = n.Approved
		resp.PendingLoans = n.Pending
		resp.ActiveLoanApplications = n.Total
		out = append(out, resp)
	}
	return out
}

// announce sends the deactivation email in the background
func (s *CustomerService) announce(ctx context.Context, customer models.Customer) {
	if s.notifier == nil {
		return
	}

	logger := s.logger.With("customer_id", customer.ID)

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

		account, err := s.customerRepo.AccountNumber(nctx, customer.ID)
		if err != nil {
			logger.Warn(nctx, "account lookup failed", "error", err)
		}
		if account == "" {
			account = "ACC" + strconv.FormatUint(uint64(customer.ID), 10)
		}

		err = s.notifier.AccountDeactivated(nctx, AccountNotice{
			CustomerEmail: customer.Email,
			CustomerName:  customer.FullName(),
			AccountNumber: account,
		})
		if err != nil {
			logger.Warn(nctx, "notification failed", "to", customer.Email, "error", err)
		}
	}()
}

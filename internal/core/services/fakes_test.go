package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/adapters/persistence/repositories"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			ExpirationMinutes: 60,
		},
		Auth: config.AuthConfig{
			APIPrefix:     "/api/",
			LoginPath:     "/login",
			DashboardPath: "/admin/dashboard",
		},
		Notify: config.NotifyConfig{
			TimeoutSeconds:    1,
			PendingDigestCron: "@every 1h",
		},
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// fakeHasher is a fast, reversible stand-in for bcrypt
type fakeHasher struct {
	mu       sync.Mutex
	verifies int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return hash == "hashed:"+plain
}

func (h *fakeHasher) Verifies() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

type fakeAdminRepo struct {
	mu           sync.Mutex
	admins       map[string]*models.Admin
	nextID       uint
	lastLoginErr error
}

func newFakeAdminRepo(admins ...*models.Admin) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: map[string]*models.Admin{}}
	for _, a := range admins {
		_ = r.Create(context.Background(), a)
	}
	return r
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.Email]; ok {
		return errors.New("duplicate entry")
	}
	r.nextID++
	admin.ID = r.nextID
	cp := *admin
	r.admins[admin.Email] = &cp
	return nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.admins[email]
	return ok, nil
}

func (r *fakeAdminRepo) Update(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *admin
	r.admins[admin.Email] = &cp
	return nil
}

func (r *fakeAdminRepo) UpdateLastLogin(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastLoginErr != nil {
		return r.lastLoginErr
	}
	a, ok := r.admins[email]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.LastLoginAt = &at
	return nil
}

func (r *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

// fakeLoanRepo honors the same compare-and-set contract as the GORM repository
type fakeLoanRepo struct {
	mu     sync.Mutex
	loans  map[uint]*models.LoanApplication
	writes int
}

func newFakeLoanRepo(loans ...*models.LoanApplication) *fakeLoanRepo {
	r := &fakeLoanRepo{loans: map[uint]*models.LoanApplication{}}
	for _, l := range loans {
		cp := *l
		r.loans[l.ID] = &cp
	}
	return r
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLoanRepo) ListPending(ctx context.Context) ([]*models.LoanApplication, error) {
	loans, _, err := r.ListByStatus(ctx, domain.LoanStatusPending, 0, 1000)
	sort.Slice(loans, func(i, j int) bool { return loans[i].AppliedAt.Before(loans[j].AppliedAt) })
	return loans, err
}

func (r *fakeLoanRepo) ListByStatus(_ context.Context, status domain.LoanStatus, offset, limit int) ([]*models.LoanApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*models.LoanApplication
	for _, l := range r.loans {
		if l.Status == status {
			cp := *l
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeLoanRepo) CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	_, total, err := r.ListByStatus(ctx, status, 0, 0)
	return total, err
}

func (r *fakeLoanRepo) OldestPending(ctx context.Context) (*models.LoanApplication, error) {
	loans, err := r.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return loans[0], nil
}

func (r *fakeLoanRepo) CountByCustomer(_ context.Context, ids []uint) (map[uint]repositories.LoanCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := map[uint]bool{}
	for _, id := range ids {
		wanted[id] = true
	}

	counts := map[uint]repositories.LoanCounts{}
	for _, l := range r.loans {
		if !wanted[l.CustomerID] {
			continue
		}
		c := counts[l.CustomerID]
		c.Total++
		switch l.Status {
		case domain.LoanStatusPending:
			c.Pending++
		case domain.LoanStatusApproved:
			c.Approved++
		}
		counts[l.CustomerID] = c
	}
	return counts, nil
}

func (r *fakeLoanRepo) Transition(_ context.Context, id uint, t repositories.Transition) (*models.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if l.Status != t.From {
		return nil, repositories.ErrStatusConflict
	}

	approver, remarks, at := t.ApprovedBy, t.Remarks, t.ProcessedAt
	l.Status = t.To
	l.ApprovedBy = &approver
	l.Remarks = &remarks
	l.ProcessedAt = &at
	r.writes++

	cp := *l
	return &cp, nil
}

func (r *fakeLoanRepo) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uint]*models.Customer
	accounts  map[uint]string
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, filter repositories.CustomerFilter) ([]*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyword := strings.ToLower(filter.Keyword)
	var out []*models.Customer
	for _, c := range r.customers {
		if filter.ActiveOnly && !c.Active {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(c.FirstName), keyword) &&
			!strings.Contains(strings.ToLower(c.LastName), keyword) &&
			!strings.Contains(strings.ToLower(c.Email), keyword) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active int64
	for _, c := range r.customers {
		if c.Active {
			active++
		}
	}
	return int64(len(r.customers)), active, nil
}

func (r *fakeCustomerRepo) SetActive(_ context.Context, id uint, active bool, at time.Time) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c.Active == active {
		return nil, repositories.ErrActiveConflict
	}
	c.Active = active
	c.UpdatedAt = at
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) AccountNumber(_ context.Context, id uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id], nil
}

// mockNotifier records notification calls
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) LoanApproved(ctx context.Context, notice DecisionNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) LoanRejected(ctx context.Context, notice DecisionNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) PendingDigest(ctx context.Context, notice DigestNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) AccountDeactivated(ctx context.Context, notice AccountNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func pendingLoan(id, customerID uint, appliedAt time.Time) *models.LoanApplication {
	return &models.LoanApplication{
		ID:              id,
		CustomerID:      customerID,
		RequestedAmount: 250000,
		LoanType:        domain.LoanTypePersonal,
		Status:          domain.LoanStatusPending,
		AppliedAt:       appliedAt,
	}
}

func activeAdmin(email, plain string) *models.Admin {
	return &models.Admin{
		Email:     strings.ToLower(email),
		Password:  "hashed:" + plain,
		FirstName: "Asha",
		LastName:  "Rao",
		Phone:     "9000000000",
		Role:      string(domain.RoleAdmin),
		IsActive:  true,
	}
}

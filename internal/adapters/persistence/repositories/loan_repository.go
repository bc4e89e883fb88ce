package repositories

import (
	"context"

	"myfinbank-admin/internal/adapters/persistence/models"
	"myfinbank-admin/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// GetByID gets a loan application by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var loan models.LoanApplication
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListPending lists pending applications, oldest first
func (r *loanRepository) ListPending(ctx context.Context) ([]*models.LoanApplication, error) {
	var loans []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.LoanStatusPending).
		Order("applied_at ASC").
		Find(&loans).Error
	return loans, err
}

// ListByStatus lists applications with the given status, newest first
func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var loans []*models.LoanApplication
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("applied_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// CountByStatus counts applications with the given status
func (r *loanRepository) CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// OldestPending returns the PENDING application applied for first
func (r *loanRepository) OldestPending(ctx context.Context) (*models.LoanApplication, error) {
	var loan models.LoanApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.LoanStatusPending).
		Order("applied_at ASC").
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

type customerLoanRow struct {
	CustomerID uint
	Status     domain.LoanStatus
	Total      int64
}

// CountByCustomer tallies applications per customer in one grouped query.
// Customers without applications are absent from the result.
func (r *loanRepository) CountByCustomer(ctx context.Context, customerIDs []uint) (map[uint]LoanCounts, error) {
	counts := make(map[uint]LoanCounts, len(customerIDs))
	if len(customerIDs) == 0 {
		return counts, nil
	}

	var rows []customerLoanRow
	err := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Select("customer_id, status, COUNT(*) AS total").
		Where("customer_id IN ?", customerIDs).
		Group("customer_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.CustomerID]
		c.Total += row.Total
		switch row.Status {
		case domain.LoanStatusPending:
			c.Pending += row.Total
		case domain.LoanStatusApproved:
			c.Approved += row.Total
		}
		counts[row.CustomerID] = c
	}
	return counts, nil
}

// Transition performs a compare-and-set on the status column inside a
// transaction: the UPDATE only matches while the row still has t.From.
func (r *loanRepository) Transition(ctx context.Context, id uint, t Transition) (*models.LoanApplication, error) {
	var loan models.LoanApplication

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LoanApplication{}).
			Where("id = ? AND status = ?", id, t.From).
			Updates(map[string]interface{}{
				"status":        t.To,
				"approved_by":   t.ApprovedBy,
				"admin_remarks": t.Remarks,
				"processed_at":  t.ProcessedAt,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.LoanApplication{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrStatusConflict
		}

		return tx.First(&loan, id).Error
	})
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

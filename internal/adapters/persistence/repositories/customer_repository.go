package repositories

import (
	"context"
	"strings"
	"time"

	"myfinbank-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
// Rows belong to the customer service; only the active flag is written here
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List lists customers, newest registration first
func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]*models.Customer, error) {
	var customers []*models.Customer

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if keyword := strings.ToLower(strings.TrimSpace(filter.Keyword)); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Find(&customers).Error
	return customers, err
}

// Count counts all customers and the active ones
func (r *customerRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// SetActive is a compare-and-set on the active column
func (r *customerRepository) SetActive(ctx context.Context, id uint, active bool, at time.Time) (*models.Customer, error) {
	var customer models.Customer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Customer{}).
			Where("id = ? AND active = ?", id, !active).
			Updates(map[string]interface{}{
				"active":     active,
				"updated_at": at,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrActiveConflict
		}

		return tx.Where("id = ?", id).First(&customer).Error
	})
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

// AccountNumber reads the accounts table owned by the account service
func (r *customerRepository) AccountNumber(ctx context.Context, id uint) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Table("accounts").
		Where("customer_id = ?", id).
		Order("id ASC").
		Limit(1).
		Pluck("account_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

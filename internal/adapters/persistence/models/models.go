package models

import (
	"time"

	"myfinbank-admin/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Admin accounts
// ============================================================

// Admin represents admins table
type Admin struct {
	ID          uint       `gorm:"column:admin_id;primaryKey" json:"admin_id"`
	Email       string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Phone       string     `gorm:"column:phone_number;size:20;not null" json:"phone_number"`
	Role        string     `gorm:"size:20;not null;default:'ADMIN'" json:"role"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"column:created_date;autoCreateTime" json:"created_date"`
	LastLoginAt *time.Time `gorm:"column:last_login_date" json:"last_login_date,omitempty"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	AdminID     uint       `json:"adminId"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	PhoneNumber string     `json:"phoneNumber"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginDate,omitempty"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		AdminID:     a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.Phone,
		Role:        a.Role,
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
	}
}

// ============================================================
// Loan applications
// ============================================================

// LoanApplication represents loans table
type LoanApplication struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	CustomerID        uint              `gorm:"index;not null" json:"customer_id"`
	RequestedAmount   float64           `gorm:"column:requested_amount;type:decimal(15,2);not null" json:"requested_amount"`
	LoanType          domain.LoanType   `gorm:"column:loan_type;size:20" json:"loan_type"`
	InterestRate      *float64          `gorm:"column:interest_rate;type:decimal(5,2)" json:"interest_rate,omitempty"`
	TermMonths        *int              `gorm:"column:term_months" json:"term_months,omitempty"`
	Purpose           string            `gorm:"size:255" json:"purpose,omitempty"`
	MonthlyIncome     *float64          `gorm:"column:monthly_income;type:decimal(15,2)" json:"monthly_income,omitempty"`
	EmploymentDetails string            `gorm:"column:employment_details;size:500" json:"employment_details,omitempty"`
	Status            domain.LoanStatus `gorm:"size:20;index;not null;default:'PENDING'" json:"status"`
	ApprovedBy        *string           `gorm:"column:approved_by;size:100" json:"approved_by,omitempty"`
	Remarks           *string           `gorm:"column:admin_remarks;size:500" json:"remarks,omitempty"`
	AppliedAt         time.Time         `gorm:"column:applied_at;not null" json:"applied_at"`
	ProcessedAt       *time.Time        `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loans"
}

// LoanResponse DTO
type LoanResponse struct {
	LoanID            uint              `json:"loanId"`
	CustomerID        uint              `json:"customerId"`
	CustomerName      string            `json:"customerName,omitempty"`
	CustomerEmail     string            `json:"customerEmail,omitempty"`
	LoanAmount        float64           `json:"loanAmount"`
	LoanType          domain.LoanType   `json:"loanType"`
	InterestRate      *float64          `json:"interestRate,omitempty"`
	TermMonths        *int              `json:"termMonths,omitempty"`
	Status            domain.LoanStatus `json:"status"`
	Purpose           string            `json:"purpose,omitempty"`
	MonthlyIncome     *float64          `json:"monthlyIncome,omitempty"`
	EmploymentDetails string            `json:"employmentDetails,omitempty"`
	ApprovedBy        *string           `json:"approvedBy,omitempty"`
	Remarks           *string           `json:"remarks,omitempty"`
	CreatedDate       string            `json:"createdDate"`
	ProcessedAt       *time.Time        `json:"processedAt,omitempty"`
}

// DateLayout is the applied-at rendering used by the admin front end
const DateLayout = "2006-01-02 15:04:05"

func (l *LoanApplication) ToResponse() *LoanResponse {
	return &LoanResponse{
		LoanID:            l.ID,
		CustomerID:        l.CustomerID,
		LoanAmount:        l.RequestedAmount,
		LoanType:          l.LoanType,
		InterestRate:      l.InterestRate,
		TermMonths:        l.TermMonths,
		Status:            l.Status,
		Purpose:           l.Purpose,
		MonthlyIncome:     l.MonthlyIncome,
		EmploymentDetails: l.EmploymentDetails,
		ApprovedBy:        l.ApprovedBy,
		Remarks:           l.Remarks,
		CreatedDate:       l.AppliedAt.Format(DateLayout),
		ProcessedAt:       l.ProcessedAt,
	}
}

// WithCustomer fills the customer columns of the DTO
func (r *LoanResponse) WithCustomer(c *Customer) *LoanResponse {
	if c != nil {
		r.CustomerName = c.FullName()
		r.CustomerEmail = c.Email
	}
	return r
}

// ============================================================
// Customers (owned by the customer service)
// ============================================================

// Customer represents the customers table
type Customer struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	CustomerCode  string    `gorm:"column:customer_id" json:"customer_id"`
	Email         string    `gorm:"column:email" json:"email"`
	FirstName     string    `gorm:"column:first_name" json:"first_name"`
	LastName      string    `gorm:"column:last_name" json:"last_name"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	Address       string    `gorm:"column:address" json:"address"`
	Active        bool      `gorm:"column:active" json:"active"`
	EmailVerified bool      `gorm:"column:email_verified" json:"email_verified"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID                     uint      `json:"id"`
	CustomerID             string    `json:"customerId"`
	Email                  string    `json:"email"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Phone                  string    `json:"phone"`
	Address                string    `json:"address"`
	Active                 bool      `json:"active"`
	EmailVerified          bool      `json:"emailVerified"`
	CreatedDate            string    `json:"createdDate"`
	UpdatedAt              time.Time `json:"updatedAt"`
	ActiveLoans            int64     `json:"activeLoans"`
	PendingLoans           int64     `json:"pendingLoans"`
	ActiveLoanApplications int64     `json:"activeLoanApplications"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:            c.ID,
		CustomerID:    c.CustomerCode,
		Email:         c.Email,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Phone:         c.Phone,
		Address:       c.Address,
		Active:        c.Active,
		EmailVerified: c.EmailVerified,
		CreatedDate:   c.CreatedAt.Format(DateLayout),
		UpdatedAt:     c.UpdatedAt,
	}
}

// CustomerStats DTO
type CustomerStats struct {
	TotalCustomers    int64 `json:"totalCustomers"`
	ActiveCustomers   int64 `json:"activeCustomers"`
	InactiveCustomers int64 `json:"inactiveCustomers"`
}

// FullName returns "first last"
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// AutoMigrate runs auto migration for the tables this service owns.
// The customers table is never migrated here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&LoanApplication{},
	)
}

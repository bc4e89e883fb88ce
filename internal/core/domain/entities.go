package domain

import "strings"

// Role is the capability marker carried by an identity context.
// The admin service recognizes exactly one role.
type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// LoanStatus is the state of a loan application
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusRejected LoanStatus = "REJECTED"
)

// IsTerminal reports whether no transition leaves this status
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusApproved || s == LoanStatusRejected
}

// Valid reports whether s is one of the known statuses
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected:
		return true
	}
	return false
}

// ParseLoanStatus parses a status name case-insensitively
func ParseLoanStatus(raw string) (LoanStatus, error) {
	s := LoanStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewError(KindInvalidInput, "invalid loan status: "+raw)
	}
	return s, nil
}

// LoanType is the product category of a loan application
type LoanType string

const (
	LoanTypePersonal  LoanType = "PERSONAL"
	LoanTypeHome      LoanType = "HOME"
	LoanTypeVehicle   LoanType = "VEHICLE"
	LoanTypeEducation LoanType = "EDUCATION"
	LoanTypeBusiness  LoanType = "BUSINESS"
)

// Decision is the terminal outcome an administrator applies to a loan
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Target returns the status a decision moves a pending loan to
func (d Decision) Target() (LoanStatus, error) {
	switch d {
	case DecisionApprove:
		return LoanStatusApproved, nil
	case DecisionReject:
		return LoanStatusRejected, nil
	}
	return "", NewError(KindInvalidInput, "unknown action: "+string(d))
}

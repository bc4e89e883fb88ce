package domain

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories the core reports.
// Transports map each kind to their own response shape exactly once.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindAuthFailure
	KindConflict
	KindInvalidInput
	KindNotifyFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindAuthFailure:
		return "auth_failure"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindNotifyFailure:
		return "notify_failure"
	}
	return "internal"
}

// Error is a tagged domain error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError creates a tagged error
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags an underlying error with a kind
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first tagged error in err's chain
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Sentinel domain errors
var (
	ErrInvalidCredentials = NewError(KindAuthFailure, "invalid email or password")
	ErrUnauthenticated    = NewError(KindAuthFailure, "unauthorized access. please login as admin")

	ErrAdminNotFound = NewError(KindNotFound, "admin not found")
	ErrEmailExists   = NewError(KindConflict, "email already exists")

	ErrLoanNotFound           = NewError(KindNotFound, "loan application not found")
	ErrInvalidStateTransition = NewError(KindInvalidState, "loan application is not in pending status")
	ErrNotificationFailed     = NewError(KindNotifyFailure, "notification failed")

	ErrCustomerNotFound      = NewError(KindNotFound, "customer not found")
	ErrCustomerStatusChanged = NewError(KindConflict, "customer status was changed by another request")
	ErrSearchKeywordRequired = NewError(KindInvalidInput, "search keyword is required")
)

package services

import (
	"errors"
	"fmt"

	"github.com/jrc-public-school/school-service/internal/repositories"
)

// Generic service errors mapped to HTTP statuses by the handlers
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")

	// ErrServiceUnavailable marks a storage connectivity failure. It is
	// the repositories sentinel re-exported so handlers only depend on
	// this package for error mapping.
	ErrServiceUnavailable = repositories.ErrStoreUnavailable
)

// Domain-specific errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAccessDenied  = errors.New("student access denied")
	ErrDuplicateStudent     = errors.New("student already exists for this class and roll number")
	ErrAccountAlreadyExists = errors.New("account already exists for this student")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdmissionNotFound    = errors.New("admission enquiry not found")
	ErrNewsNotFound         = errors.New("news item not found")
)

// ValidationError carries a single field failure and unwraps to
// ErrValidationFailed so handlers can map it with errors.Is
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// PermissionError carries the denied action and unwraps to ErrForbidden
type PermissionError struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s: %s", e.Action, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// NewPermissionError creates a permission error
func NewPermissionError(action, reason string) *PermissionError {
	return &PermissionError{
		Action: action,
		Reason: reason,
	}
}

package shared

import (
	"errors"
	"fmt"
)

// Error codes shared across the ledger. The HTTP layer maps them to status codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodePersistence         = "PERSISTENCE_ERROR"
	CodeInvalidState        = "INVALID_STATE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries structured context such as the offending field or
	// an itemized shortage report.
	Details any `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches every not-found error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying the given details
func (e *DomainError) WithDetails(details any) *DomainError {
	cp := *e
	cp.Details = details
	return &cp
}

// FieldDetail identifies the request field a validation error refers to
type FieldDetail struct {
	Field string `json:"field"`
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: FieldDetail{Field: field},
	}
}

// NewNotFoundError creates a not-found error naming the missing resource
func NewNotFoundError(resource, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// NewConcurrencyConflict creates a retryable conflict error
func NewConcurrencyConflict(message string) *DomainError {
	return &DomainError{
		Code:    CodeConcurrencyConflict,
		Message: message,
	}
}

// StepDetail names the unit-of-work step that failed
type StepDetail struct {
	Step string `json:"step"`
}

// NewPersistenceError wraps a storage failure together with the step that failed.
// Domain errors pass through untouched so callers keep their original code.
func NewPersistenceError(step string, cause error) error {
	if cause == nil {
		return nil
	}
	var de *DomainError
	if errors.As(cause, &de) {
		return cause
	}
	return &DomainError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("failed to %s", step),
		Details: StepDetail{Step: step},
		cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrPersistence         = NewDomainError(CodePersistence, "Storage operation failed")
)

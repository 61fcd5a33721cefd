package dto

import "net/http"

// Error codes returned in API responses.
// Domain codes pass through unchanged; the rest are raised by the transport layer.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodePersistence         = "PERSISTENCE_ERROR"
	ErrCodeInvalidState        = "INVALID_STATE"

	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodePersistence:         http.StatusInternalServerError,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// legacyCodeMapping folds older aliases into the current codes
var legacyCodeMapping = map[string]string{
	"INVALID_INPUT":      ErrCodeValidation,
	"VALIDATION_FAILED":  ErrCodeValidation,
	"ERR_VALIDATION":     ErrCodeValidation,
	"ERR_NOT_FOUND":      ErrCodeNotFound,
	"CONFLICT":           ErrCodeConcurrencyConflict,
	"OPTIMISTIC_LOCK":    ErrCodeConcurrencyConflict,
	"ERR_INTERNAL":       ErrCodeInternal,
	"DATABASE_ERROR":     ErrCodePersistence,
	"STOCK_INSUFFICIENT": ErrCodeInsufficientStock,
}

// NormalizeErrorCode maps legacy aliases to current codes; other codes pass through
func NormalizeErrorCode(code string) string {
	if normalized, ok := legacyCodeMapping[code]; ok {
		return normalized
	}
	return code
}

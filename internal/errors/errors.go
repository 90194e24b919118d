// Package errors provides custom error types for the SubTracker API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Income source errors.
var (
	ErrIncomeSourceNotFound = &AppError{Code: "INCOME_SOURCE_NOT_FOUND", Message: "Income source not found", StatusCode: http.StatusNotFound}
)

// Budget pod errors.
var (
	ErrPodNotFound            = &AppError{Code: "POD_NOT_FOUND", Message: "Budget pod not found", StatusCode: http.StatusNotFound}
	ErrInsufficientPodBalance = &AppError{Code: "INSUFFICIENT_POD_BALANCE", Message: "Pod balance is insufficient for this withdrawal", StatusCode: http.StatusBadRequest}
)

// Paycheck allocation errors.
var (
	ErrAllocationNotFound  = &AppError{Code: "ALLOCATION_NOT_FOUND", Message: "Paycheck allocation not found", StatusCode: http.StatusNotFound}
	ErrAllocationProcessed = &AppError{Code: "ALLOCATION_PROCESSED", Message: "A processed allocation cannot be modified", StatusCode: http.StatusConflict}
)

// Goal errors.
var (
	ErrGoalNotFound = &AppError{Code: "GOAL_NOT_FOUND", Message: "Financial goal not found", StatusCode: http.StatusNotFound}
)

// Subscription errors.
var (
	ErrSubscriptionNotFound  = &AppError{Code: "SUBSCRIPTION_NOT_FOUND", Message: "Subscription not found", StatusCode: http.StatusNotFound}
	ErrSubscriptionCancelled = &AppError{Code: "SUBSCRIPTION_CANCELLED", Message: "Subscription is already cancelled", StatusCode: http.StatusConflict}
)

// Payment card errors.
var (
	ErrCardNotFound = &AppError{Code: "CARD_NOT_FOUND", Message: "Payment card not found", StatusCode: http.StatusNotFound}
	ErrCardInUse    = &AppError{Code: "CARD_IN_USE", Message: "Card is used by existing subscriptions", StatusCode: http.StatusConflict}
)

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents specific error types
type ErrorCode string

const (
	// Authentication errors
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeResetTokenInvalid  ErrorCode = "RESET_TOKEN_INVALID"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"

	// System errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatusCode gets the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// getHTTPStatusCode maps error codes to HTTP status codes
func getHTTPStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeSessionNotFound, ErrCodeResetTokenInvalid:
		return http.StatusForbidden
	case ErrCodeValidationFailed, ErrCodeInvalidInput, ErrCodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined common errors
var (
	ErrForbidden          = New(ErrCodeForbidden, "access denied")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "invalid credentials")
	ErrSessionNotFound    = New(ErrCodeSessionNotFound, "session not found")
	ErrResetTokenInvalid  = New(ErrCodeResetTokenInvalid, "invalid or consumed reset token")
	ErrInvalidInput       = New(ErrCodeInvalidInput, "invalid input")
)

// NewValidationFailed creates a validation error with field details
func NewValidationFailed(details string) *AppError {
	return New(ErrCodeValidationFailed, "validation failed").WithDetails(details)
}

// NewInternal wraps an unexpected failure into the generic 500 entry
func NewInternal(cause error) *AppError {
	return Wrap(ErrCodeInternalError, "internal server error", cause)
}

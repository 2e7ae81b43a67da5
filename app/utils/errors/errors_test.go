package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(ErrCodeBadRequest, "malformed form body")
		assert.Equal(t, "BAD_REQUEST: malformed form body", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(ErrCodeInternalError, "internal server error", cause)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternalError, "wrapper", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeValidationFailed, "validation failed").WithDetails("email: invalid format")
	assert.Equal(t, "email: invalid format", err.Details)
}

func TestAsAppError(t *testing.T) {
	original := New(ErrCodeSessionNotFound, "session not found")

	appErr, ok := AsAppError(fmt.Errorf("wrapped: %w", original))
	require.True(t, ok)
	assert.Equal(t, ErrCodeSessionNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestGetHTTPStatusCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeSessionNotFound, http.StatusForbidden},
		{ErrCodeResetTokenInvalid, http.StatusForbidden},
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatusCode(New(tt.code, "msg")))
		})
	}

	t.Run("non-app error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCode(errors.New("plain")))
	})
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.StatusCode)
	assert.Equal(t, http.StatusForbidden, ErrForbidden.StatusCode)
	assert.Equal(t, http.StatusForbidden, ErrSessionNotFound.StatusCode)
	assert.Equal(t, http.StatusForbidden, ErrResetTokenInvalid.StatusCode)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidInput.StatusCode)
}

func TestNewValidationFailed(t *testing.T) {
	err := NewValidationFailed("password: too short")

	assert.Equal(t, ErrCodeValidationFailed, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "password: too short", err.Details)
}

func TestNewInternal(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := NewInternal(cause)

	assert.Equal(t, ErrCodeInternalError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.ErrorIs(t, err, cause)
}

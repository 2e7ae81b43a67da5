package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-auth-service/app/domain"
	apperrors "user-auth-service/app/utils/errors"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   apperrors.ErrorCode
		wantStatus int
	}{
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			wantCode:   apperrors.ErrCodeInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "session not found",
			err:        domain.ErrSessionNotFound,
			wantCode:   apperrors.ErrCodeSessionNotFound,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "reset token not found",
			err:        domain.ErrResetTokenNotFound,
			wantCode:   apperrors.ErrCodeResetTokenInvalid,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown user hidden as access denied",
			err:        domain.ErrUserNotFound,
			wantCode:   apperrors.ErrCodeForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing session context",
			err:        domain.ErrUnauthorized,
			wantCode:   apperrors.ErrCodeForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "invalid input",
			err:        domain.ErrInvalidInput,
			wantCode:   apperrors.ErrCodeInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure marked internal",
			err:        domain.ErrInternal,
			wantCode:   apperrors.ErrCodeInternalError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unrecognized error",
			err:        assert.AnError,
			wantCode:   apperrors.ErrCodeInternalError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := mapDomainError(tt.err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
		})
	}

	t.Run("app error passes through unchanged", func(t *testing.T) {
		appErr := mapDomainError(apperrors.ErrResetTokenInvalid)
		assert.Equal(t, apperrors.ErrResetTokenInvalid, appErr)
	})
}

func TestWriteAppError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, writeAppError(e.NewContext(req, rec), apperrors.ErrInvalidCredentials))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invalid credentials", body["error"])
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
}

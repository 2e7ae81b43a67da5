package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"user-auth-service/app/domain"
	apperrors "user-auth-service/app/utils/errors"
)

// mapDomainError translates a domain failure into its REST taxonomy entry.
//
// Unknown emails and missing session contexts both come back as a plain
// "access denied" so the reset and profile endpoints do not disclose which
// accounts exist.
func mapDomainError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.ErrInvalidCredentials
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.ErrSessionNotFound
	case errors.Is(err, domain.ErrResetTokenNotFound):
		return apperrors.ErrResetTokenInvalid
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return apperrors.ErrForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return apperrors.ErrInvalidInput
	default:
		return apperrors.NewInternal(err)
	}
}

// writeAppError renders an AppError with its mapped HTTP status
func writeAppError(c echo.Context, appErr *apperrors.AppError) error {
	return c.JSON(apperrors.GetHTTPStatusCode(appErr), ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}

// respondError is the shared handler error path: domain sentinels map to
// their taxonomy entry, anything unrecognized answers 500.
func (h *AuthHandler) respondError(c echo.Context, err error) error {
	return writeAppError(c, mapDomainError(err))
}

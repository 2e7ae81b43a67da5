package middleware

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"user-auth-service/app/domain"
	"user-auth-service/app/port"
	apperrors "user-auth-service/app/utils/errors"
)

// SessionMiddleware resolves the session cookie to a logged-in user
type SessionMiddleware struct {
	authUsecase port.AuthUsecase
	cookieName  string
	logger      *slog.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(authUsecase port.AuthUsecase, cookieName string, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		authUsecase: authUsecase,
		cookieName:  cookieName,
		logger:      logger.With("component", "session_middleware"),
	}
}

// RequireSession rejects requests whose session cookie does not resolve to a
// user. On success the session context is attached to the request context.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sessionID := m.extractSessionID(c)
			if sessionID == "" {
				return echo.NewHTTPError(apperrors.ErrForbidden.StatusCode, "session required")
			}

			user, err := m.authUsecase.GetUserFromSessionID(ctx, sessionID)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					m.logger.Error("session resolution failed", "error", err)
				}
				return echo.NewHTTPError(apperrors.ErrSessionNotFound.StatusCode, "invalid session")
			}

			sessionCtx := domain.NewSessionContext(user)
			c.SetRequest(c.Request().WithContext(domain.SetSessionContext(ctx, sessionCtx)))

			c.Set("user_id", user.ID.String())
			c.Set("user_email", user.Email)

			return next(c)
		}
	}
}

// extractSessionID reads the session token from the cookie, falling back to
// the X-Session-Token header for non-browser clients
func (m *SessionMiddleware) extractSessionID(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return c.Request().Header.Get("X-Session-Token")
}

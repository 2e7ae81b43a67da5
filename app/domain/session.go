package domain

import (
	"context"

	"github.com/google/uuid"
)

// SessionContext represents the authenticated identity behind a request
type SessionContext struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	SessionID string    `json:"session_id"`
}

type contextKey string

const sessionContextKey contextKey = "session_context"

// NewSessionContext builds a session context from a resolved user
func NewSessionContext(user *User) *SessionContext {
	sessionID := ""
	if user.SessionID != nil {
		sessionID = *user.SessionID
	}

	return &SessionContext{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: sessionID,
	}
}

// SetSessionContext stores the session context on a request context
func SetSessionContext(ctx context.Context, sc *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey, sc)
}

// GetSessionContext extracts the session context from a request context
func GetSessionContext(ctx context.Context) (*SessionContext, error) {
	sc, ok := ctx.Value(sessionContextKey).(*SessionContext)
	if !ok {
		return nil, ErrUnauthorized
	}
	return sc, nil
}

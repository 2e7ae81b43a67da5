package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system
//
// The credential hash and the opaque tokens are never serialized back to
// callers; only the email and timestamps are part of the public shape.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Exclude from JSON
	SessionID      *string   `json:"-"` // Set only while a session is active
	ResetToken     *string   `json:"-"` // Set only while a password reset is pending
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new user with validation
//
// The password must already be hashed; a user without a credential hash can
// never be constructed, so a half-initialized record cannot reach the store.
func NewUser(email, hashedPassword string) (*User, error) {
	// Validate email
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}

	// Validate credential hash
	if hashedPassword == "" {
		return nil, fmt.Errorf("hashed password is required")
	}

	now := time.Now()

	user := &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return user, nil
}

// StartSession replaces any prior session token with the given one.
// Only the most recently issued token is valid (single-session model).
func (u *User) StartSession(token string) {
	u.SessionID = &token
	u.UpdatedAt = time.Now()
}

// EndSession clears the active session token, if any
func (u *User) EndSession() {
	u.SessionID = nil
	u.UpdatedAt = time.Now()
}

// HasActiveSession returns true if a session token is currently set
func (u *User) HasActiveSession() bool {
	return u.SessionID != nil && *u.SessionID != ""
}

// StartPasswordReset replaces any prior unconsumed reset token with the
// given one. At most one reset token is live per user.
func (u *User) StartPasswordReset(token string) {
	u.ResetToken = &token
	u.UpdatedAt = time.Now()
}

// HasPendingReset returns true if an unconsumed reset token is set
func (u *User) HasPendingReset() bool {
	return u.ResetToken != nil && *u.ResetToken != ""
}

// CompletePasswordReset installs the new credential hash and clears the
// reset token in the same mutation, so a consumed token can never survive
// alongside the new password.
func (u *User) CompletePasswordReset(hashedPassword string) error {
	if hashedPassword == "" {
		return fmt.Errorf("hashed password is required")
	}

	u.HashedPassword = hashedPassword
	u.ResetToken = nil
	u.UpdatedAt = time.Now()
	return nil
}

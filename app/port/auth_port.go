package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"user-auth-service/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	// Registration and login
	RegisterUser(ctx context.Context, email, password string) (*domain.User, error)
	ValidLogin(ctx context.Context, email, password string) bool

	// Session management
	CreateSession(ctx context.Context, email string) (string, error)
	GetUserFromSessionID(ctx context.Context, sessionID string) (*domain.User, error)
	DestroySession(ctx context.Context, userID uuid.UUID) error

	// Password reset
	GetResetPasswordToken(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, resetToken, newPassword string) error
}

// UserRepository defines user data access interface.
//
// Every lookup is a single-predicate point query; misses surface as
// domain.ErrUserNotFound. Email uniqueness is enforced by the store itself,
// not by callers racing a read-then-write.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.User, error)
	GetByResetToken(ctx context.Context, resetToken string) (*domain.User, error)

	// Update persists a full user mutation atomically by its stable id.
	Update(ctx context.Context, user *domain.User) error

	// ConsumeResetToken installs the new credential hash and clears the
	// reset token in one statement keyed on the token itself, so exactly
	// one concurrent redeemer can win.
	ConsumeResetToken(ctx context.Context, resetToken, hashedPassword string) error
}

// PasswordHasher defines one-way salted hashing of a credential secret
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) (bool, error)
}

// TokenSource produces opaque, unguessable identifiers for sessions and
// password-reset flows
type TokenSource interface {
	NewToken() (string, error)
}

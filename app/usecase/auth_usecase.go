package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"user-auth-service/app/domain"
	"user-auth-service/app/port"
	"user-auth-service/app/utils/logger"
)

// AuthUseCase implements the credential and session lifecycle business logic
type AuthUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens port.TokenSource
	logger *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(
	users port.UserRepository,
	hasher port.PasswordHasher,
	tokens port.TokenSource,
	log *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: log.With("component", "auth_usecase"),
	}
}

// internalError marks an unexpected store failure so callers can match on
// domain.ErrInternal instead of driver error types
func internalError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrInternal, err)
}

// RegisterUser registers a new identity keyed by email.
//
// The plaintext password is hashed before any store interaction and is not
// retained; the store's unique constraint decides duplicate registration,
// so two concurrent calls for the same email resolve with one winner.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, email, password string) (*domain.User, error) {
	// Hashing is the expensive step; do it before touching the store.
	hashedPassword, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(email, hashedPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			uc.logger.Warn("registration rejected, email taken", "email", email)
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, internalError(err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "email", email)
	return user, nil
}

// ValidLogin reports whether the email/password pair matches a registered
// identity. It never fails: unknown emails, wrong passwords and malformed
// stored hashes all come back false. Side-effect free.
func (uc *AuthUseCase) ValidLogin(ctx context.Context, email, password string) bool {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Error("login lookup failed", "email", email, "error", err)
		}
		return false
	}

	ok, err := uc.hasher.Verify(user.HashedPassword, password)
	if err != nil {
		// A stored hash we cannot parse is a failed verification, not a crash.
		uc.logger.Error("stored hash unreadable", "user_id", user.ID, "error", err)
		return false
	}

	return ok
}

// CreateSession issues a fresh opaque session token for the identity,
// overwriting any prior token (single-session model)
func (uc *AuthUseCase) CreateSession(ctx context.Context, email string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", internalError(err)
	}

	token, err := uc.tokens.NewToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	user.StartSession(token)
	if err := uc.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", internalError(err)
	}

	uc.logger.Info("session created",
		"user_id", user.ID, "session_id", logger.TokenPrefix(token))
	return token, nil
}

// GetUserFromSessionID resolves an inbound opaque session token to the
// identity that owns it. An empty or unmatched token yields
// domain.ErrSessionNotFound, which callers treat as a normal logged-out
// state rather than a fault.
func (uc *AuthUseCase) GetUserFromSessionID(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	user, err := uc.users.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, internalError(err)
	}

	return user, nil
}

// DestroySession clears the identity's session token. Logging out an
// unknown or already-logged-out identity is a silent no-op.
func (uc *AuthUseCase) DestroySession(ctx context.Context, userID uuid.UUID) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return internalError(err)
	}

	user.EndSession()
	if err := uc.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return internalError(err)
	}

	uc.logger.Info("session destroyed", "user_id", userID)
	return nil
}

// GetResetPasswordToken issues a fresh single-use reset token for the
// identity, overwriting any prior unconsumed one
func (uc *AuthUseCase) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", internalError(err)
	}

	token, err := uc.tokens.NewToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.StartPasswordReset(token)
	if err := uc.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", internalError(err)
	}

	uc.logger.Info("reset token issued",
		"user_id", user.ID, "reset_token", logger.TokenPrefix(token))
	return token, nil
}

// UpdatePassword redeems a reset token: installs the new credential hash
// and clears the token in one atomic store operation. A stale, unknown or
// already-consumed token fails with domain.ErrResetTokenNotFound — even
// when a concurrent redeemer of the same token raced ahead while this
// caller was still hashing.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return domain.ErrResetTokenNotFound
	}

	// Hash before consuming so the token-clearing update stays a single
	// fast statement.
	hashedPassword, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.users.ConsumeResetToken(ctx, resetToken, hashedPassword); err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return err
		}
		return internalError(err)
	}

	uc.logger.Info("password updated", "reset_token", logger.TokenPrefix(resetToken))
	return nil
}

// Ensure AuthUseCase implements port.AuthUsecase
var _ port.AuthUsecase = (*AuthUseCase)(nil)

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user-auth-service/app/domain"
	"user-auth-service/app/port"
	"user-auth-service/app/utils/logger"
)

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, log *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: log.With("component", "user_repository"),
	}
}

const userColumns = `id, email, hashed_password, session_id, reset_token, created_at, updated_at`

// Create inserts a new user record.
//
// Email uniqueness is enforced by the unique constraint on the table; a
// violation surfaces as domain.ErrUserAlreadyExists so concurrent inserts
// for the same email resolve with exactly one winner.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, email, hashed_password, session_id, reset_token, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.SessionID,
		user.ResetToken,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("duplicate email on user creation", "email", user.Email)
			return domain.ErrUserAlreadyExists
		}

		r.logger.Error("failed to create user", "email", user.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return nil
}

// GetByID retrieves a user by its stable internal id
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, userID)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetBySessionID retrieves a user by its active session token
func (r *UserRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE session_id = $1`
	return r.getOne(ctx, query, sessionID)
}

// GetByResetToken retrieves a user by its pending reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, resetToken string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	return r.getOne(ctx, query, resetToken)
}

// Update persists a full user mutation in a single statement keyed on the
// stable id. The email is immutable after creation and is deliberately not
// part of the SET list.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			hashed_password = $2,
			session_id = $3,
			reset_token = $4,
			updated_at = $5
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.HashedPassword,
		user.SessionID,
		user.ResetToken,
		user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.Warn("user not found for update", "user_id", user.ID)
		return domain.ErrUserNotFound
	}

	return nil
}

// ConsumeResetToken installs a new credential hash and clears the reset
// token in one statement keyed on the token itself. Under concurrent
// redemption of the same token exactly one caller observes an affected row;
// the rest see the token already cleared.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, resetToken, hashedPassword string) error {
	query := `
		UPDATE users SET
			hashed_password = $1,
			reset_token = NULL,
			updated_at = $2
		WHERE reset_token = $3`

	result, err := r.db.Exec(ctx, query, hashedPassword, time.Now(), resetToken)
	if err != nil {
		r.logger.Error("failed to consume reset token",
			"reset_token", logger.TokenPrefix(resetToken), "error", err)
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.Warn("reset token unknown or already consumed",
			"reset_token", logger.TokenPrefix(resetToken))
		return domain.ErrResetTokenNotFound
	}

	r.logger.Info("reset token consumed", "reset_token", logger.TokenPrefix(resetToken))
	return nil
}

// getOne runs a single-predicate point lookup
func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		r.logger.Error("failed to query user", "error", err)
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

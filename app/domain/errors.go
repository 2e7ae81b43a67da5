package domain

import "errors"

// Authentication and session errors
var (
	// Registration and login errors
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Reset token errors
	ErrResetTokenNotFound = errors.New("reset token not found")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// General errors
	ErrInternal = errors.New("internal error")
)

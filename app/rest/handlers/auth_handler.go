package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"user-auth-service/app/domain"
	"user-auth-service/app/port"
	apperrors "user-auth-service/app/utils/errors"
	"user-auth-service/app/utils/validator"
)

// AuthHandler handles credential and session HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	cookieName  string
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, cookieName string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		cookieName:  cookieName,
		logger:      logger.With("component", "auth_handler"),
	}
}

// Request types

type RegisterRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type ResetTokenRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

type UpdatePasswordRequest struct {
	Email       string `form:"email" json:"email"`
	ResetToken  string `form:"reset_token" json:"reset_token" validate:"required"`
	NewPassword string `form:"new_password" json:"new_password" validate:"required,min=8"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ResetTokenResponse struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

type ProfileResponse struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Index is the service welcome endpoint
// @Summary Welcome message
// @Tags root
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h *AuthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Bienvenue"})
}

// RegisterUser registers a new user
// @Summary Register a new user
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} UserResponse
// @Failure 400 {object} MessageResponse
// @Router /users [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeAppError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request format"))
	}

	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("registration validation failed", "error", err)
		return writeAppError(c, apperrors.NewValidationFailed(err.Error()))
	}

	user, err := h.authUsecase.RegisterUser(ctx, req.Email, req.Password)
	if err != nil {
		// Duplicate registration keeps the original 400 message body.
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return c.JSON(http.StatusBadRequest, MessageResponse{Message: "email already registered"})
		}

		if !errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Error("registration failed", "email", req.Email, "error", err)
		}
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		Email:   user.Email,
		Message: "user created",
	})
}

// CreateSession logs a user in and sets the session cookie
// @Summary Log in
// @Tags sessions
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /sessions [post]
func (h *AuthHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeAppError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request format"))
	}

	if err := h.validator.Validate(&req); err != nil {
		return writeAppError(c, apperrors.NewValidationFailed(err.Error()))
	}

	if !h.authUsecase.ValidLogin(ctx, req.Email, req.Password) {
		h.logger.Warn("login rejected", "email", req.Email, "ip", c.RealIP())
		return h.respondError(c, domain.ErrInvalidCredentials)
	}

	sessionID, err := h.authUsecase.CreateSession(ctx, req.Email)
	if err != nil {
		h.logger.Error("session creation failed", "email", req.Email, "error", err)
		return h.respondError(c, err)
	}

	h.setSessionCookie(c, sessionID)

	return c.JSON(http.StatusOK, UserResponse{
		Email:   req.Email,
		Message: "logged in",
	})
}

// DestroySession logs the user out and redirects to the welcome page
// @Summary Log out
// @Tags sessions
// @Success 303 "Redirect to /"
// @Failure 403 {object} ErrorResponse
// @Router /sessions [delete]
func (h *AuthHandler) DestroySession(c echo.Context) error {
	ctx := c.Request().Context()

	sessionCtx, err := domain.GetSessionContext(ctx)
	if err != nil {
		return h.respondError(c, err)
	}

	if err := h.authUsecase.DestroySession(ctx, sessionCtx.UserID); err != nil {
		h.logger.Error("logout failed", "user_id", sessionCtx.UserID, "error", err)
		return h.respondError(c, err)
	}

	h.clearSessionCookie(c)

	return c.Redirect(http.StatusSeeOther, "/")
}

// Profile returns the email of the logged-in user
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 403 {object} ErrorResponse
// @Router /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	sessionCtx, err := domain.GetSessionContext(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Email: sessionCtx.Email})
}

// GetResetPasswordToken issues a password reset token
// @Summary Request a password reset token
// @Tags reset_password
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Success 200 {object} ResetTokenResponse
// @Failure 403 {object} ErrorResponse
// @Router /reset_password [post]
func (h *AuthHandler) GetResetPasswordToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req ResetTokenRequest
	if err := c.Bind(&req); err != nil {
		return writeAppError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request format"))
	}

	if err := h.validator.Validate(&req); err != nil {
		return writeAppError(c, apperrors.NewValidationFailed(err.Error()))
	}

	token, err := h.authUsecase.GetResetPasswordToken(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			h.logger.Error("reset token issuance failed", "email", req.Email, "error", err)
		}
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, ResetTokenResponse{
		Email:      req.Email,
		ResetToken: token,
	})
}

// UpdatePassword redeems a reset token and installs a new password
// @Summary Update password with a reset token
// @Tags reset_password
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string false "Email address"
// @Param reset_token formData string true "Reset token"
// @Param new_password formData string true "New password"
// @Success 200 {object} UserResponse
// @Failure 403 {object} ErrorResponse
// @Router /reset_password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeAppError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request format"))
	}

	if err := h.validator.Validate(&req); err != nil {
		return writeAppError(c, apperrors.NewValidationFailed(err.Error()))
	}

	if err := h.authUsecase.UpdatePassword(ctx, req.ResetToken, req.NewPassword); err != nil {
		if !errors.Is(err, domain.ErrResetTokenNotFound) {
			h.logger.Error("password update failed", "error", err)
		}
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		Email:   req.Email,
		Message: "Password updated",
	})
}

// Cookie helpers

func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

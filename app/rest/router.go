package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"user-auth-service/app/port"
	"user-auth-service/app/rest/handlers"
	custommw "user-auth-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger            *slog.Logger
	AuthUsecase       port.AuthUsecase
	HealthChecker     handlers.HealthChecker
	SessionCookieName string
	EnableDebug       bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.SessionCookieName, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.HealthChecker, config.Logger)

	// Middleware
	sessionMiddleware := custommw.NewSessionMiddleware(config.AuthUsecase, config.SessionCookieName, config.Logger)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())

	// Public endpoints
	e.GET("/", authHandler.Index)
	e.POST("/users", authHandler.RegisterUser)
	e.POST("/sessions", authHandler.CreateSession)
	e.POST("/reset_password", authHandler.GetResetPasswordToken)
	e.PUT("/reset_password", authHandler.UpdatePassword)

	// Session-protected endpoints
	e.DELETE("/sessions", authHandler.DestroySession, sessionMiddleware.RequireSession())
	e.GET("/profile", authHandler.Profile, sessionMiddleware.RequireSession())

	// Health endpoints
	v1 := e.Group("/v1")
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	return e
}

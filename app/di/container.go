package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"user-auth-service/app/config"
	"user-auth-service/app/driver/postgres"
	"user-auth-service/app/port"
	"user-auth-service/app/rest"
	"user-auth-service/app/usecase"
	"user-auth-service/app/utils/security"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB *postgres.DB

	// Repositories
	UserRepository port.UserRepository

	// Usecases
	AuthUsecase port.AuthUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.UserRepository = postgres.NewUserRepository(container.DB.Pool(), logger)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      uint32(cfg.HashMemoryKiB),
		Iterations:  uint32(cfg.HashIterations),
		Parallelism: uint8(cfg.HashParallelism),
	})
	tokens := security.NewRandomTokenSource()

	container.AuthUsecase = usecase.NewAuthUseCase(
		container.UserRepository, hasher, tokens, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:            c.Logger,
		AuthUsecase:       c.AuthUsecase,
		HealthChecker:     c.DB,
		SessionCookieName: c.Config.SessionCookieName,
		EnableDebug:       c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}

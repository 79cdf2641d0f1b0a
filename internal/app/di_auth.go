package app

import (
	"fmt"

	authRepository "github.com/allisson/modelgate/internal/auth/repository"
	authService "github.com/allisson/modelgate/internal/auth/service"
	authUseCase "github.com/allisson/modelgate/internal/auth/usecase"
	"github.com/allisson/modelgate/internal/database"
)

// PasswordService returns the Argon2id password service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the bearer token service. The signing key is derived from
// AuthTokenSecret, decrypted through KMSKeyURI first when one is configured.
func (c *Container) TokenService() (authService.TokenService, error) {
	err := c.lazy(&c.tokenServiceInit, "tokenService", func() (err error) {
		c.tokenService, err = c.initTokenService()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.tokenService, nil
}

// RoleService returns the role to capability table service.
func (c *Container) RoleService() (authService.RoleService, error) {
	err := c.lazy(&c.roleServiceInit, "roleService", func() (err error) {
		c.roleService, err = authService.NewRoleService()
		if err != nil {
			return fmt.Errorf("failed to create role service: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.roleService, nil
}

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	err := c.lazy(&c.userRepositoryInit, "userRepository", func() (err error) {
		c.userRepository, err = c.initUserRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userRepository, nil
}

// UserUseCase returns the credential store used by the HTTP layer and the CLI.
func (c *Container) UserUseCase() (authUseCase.UserUseCase, error) {
	err := c.lazy(&c.userUseCaseInit, "userUseCase", func() (err error) {
		c.userUseCase, err = c.initUserUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userUseCase, nil
}

// initTokenService derives the signing key and creates the token service.
func (c *Container) initTokenService() (authService.TokenService, error) {
	key, err := authService.DeriveSigningKey(c.ctx, c.config.AuthTokenSecret, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token signing key: %w", err)
	}
	return authService.NewTokenService(key, c.config.AuthTokenIssuer, c.config.AuthTokenExpiration), nil
}

// initUserRepository creates the user repository for the configured driver.
// SQLite shares the MySQL repository since both bind with ? placeholders.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL, database.DriverSQLite:
		return authRepository.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (authUseCase.UserUseCase, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for user use case: %w", err)
	}

	roleService, err := c.RoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to get role service for user use case: %w", err)
	}

	baseUseCase := authUseCase.NewUserUseCase(userRepository, c.PasswordService(), tokenService, roleService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return authUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

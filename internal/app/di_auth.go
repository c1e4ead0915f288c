package app

import (
	"fmt"
	"sync"

	authRepository "github.com/allisson/accounts/internal/auth/repository"
	authService "github.com/allisson/accounts/internal/auth/service"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	userRepository "github.com/allisson/accounts/internal/user/repository"
)

// authComponents holds the authentication bounded context dependencies.
type authComponents struct {
	passwordService authService.PasswordService
	tokenCodec      authService.TokenCodec
	userRepo        authUseCase.UserRepository
	revokedRepo     authUseCase.RevokedTokenRepository
	useCase         authUseCase.AuthUseCase

	passwordServiceInit sync.Once
	tokenCodecInit      sync.Once
	userRepoInit        sync.Once
	revokedRepoInit     sync.Once
	useCaseInit         sync.Once
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	c.auth.passwordServiceInit.Do(func() {
		service, err := authService.NewPasswordService(c.config.HashAlgorithm, c.config.HashCost)
		if err != nil {
			c.initErrors["passwordService"] = err
			return
		}
		c.auth.passwordService = service
	})
	if err, exists := c.initErrors["passwordService"]; exists {
		return nil, err
	}
	return c.auth.passwordService, nil
}

// TokenCodec returns the token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.auth.tokenCodecInit.Do(func() {
		codec, err := authService.NewTokenCodec(
			c.config.SigningKeys,
			c.config.AccessTokenTTL,
			c.config.RefreshTokenTTL,
		)
		if err != nil {
			c.initErrors["tokenCodec"] = err
			return
		}
		c.auth.tokenCodec = codec
	})
	if err, exists := c.initErrors["tokenCodec"]; exists {
		return nil, err
	}
	return c.auth.tokenCodec, nil
}

// UserRepository returns the user repository for the configured database driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	c.auth.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "postgres":
			c.auth.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		case "mysql":
			c.auth.userRepo = userRepository.NewMySQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["userRepo"]; exists {
		return nil, err
	}
	return c.auth.userRepo, nil
}

// RevokedTokenRepository returns the revoked token repository for the
// configured database driver.
func (c *Container) RevokedTokenRepository() (authUseCase.RevokedTokenRepository, error) {
	c.auth.revokedRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["revokedRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "postgres":
			c.auth.revokedRepo = authRepository.NewPostgreSQLRevokedTokenRepository(db)
		case "mysql":
			c.auth.revokedRepo = authRepository.NewMySQLRevokedTokenRepository(db)
		default:
			c.initErrors["revokedRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["revokedRepo"]; exists {
		return nil, err
	}
	return c.auth.revokedRepo, nil
}

// AuthUseCase returns the authentication use case, decorated with metrics
// recording.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	c.auth.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		revokedRepo, err := c.RevokedTokenRepository()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		passwords, err := c.PasswordService()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		tokens, err := c.TokenCodec()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}

		useCase := authUseCase.NewAuthUseCase(
			txManager,
			userRepo,
			revokedRepo,
			passwords,
			tokens,
			c.config.StorageTimeout,
		)
		c.auth.useCase = authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["authUseCase"]; exists {
		return nil, err
	}
	return c.auth.useCase, nil
}

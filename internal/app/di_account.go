package app

import (
	"fmt"

	accountHTTP "github.com/allisson/accountvault/internal/account/http"
	accountRepository "github.com/allisson/accountvault/internal/account/repository"
	accountUsecase "github.com/allisson/accountvault/internal/account/usecase"
)

// AccountRepository returns the account repository for the configured driver.
func (c *Container) AccountRepository() (accountUsecase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// AccountUseCase returns the account use case instance.
func (c *Container) AccountUseCase() (accountUsecase.UseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// AccountHandler returns the vault account handler.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	var err error
	c.accountHandlerInit.Do(func() {
		c.accountHandler, err = c.initAccountHandler()
		if err != nil {
			c.initErrors["accountHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}

func (c *Container) initAccountRepository() (accountUsecase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAccountUseCase() (accountUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	cipher, err := c.SecretCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret cipher for account use case: %w", err)
	}

	totp, err := c.TotpGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to get totp generator for account use case: %w", err)
	}

	baseUseCase := accountUsecase.NewAccountUseCase(txManager, accountRepo, cipher, totp)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUsecase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	useCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}
	return accountHTTP.NewAccountHandler(useCase, c.Logger()), nil
}

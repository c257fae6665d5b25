package app

import (
	"fmt"

	authService "github.com/allisson/accountvault/internal/auth/service"
)

// PasswordHasher returns the login password hasher for the configured policy.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = c.initPasswordHasher()
		if err != nil {
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// SessionTokenService returns the bearer token signer.
func (c *Container) SessionTokenService() (authService.SessionTokenService, error) {
	var err error
	c.sessionTokensInit.Do(func() {
		c.sessionTokens, err = c.initSessionTokenService()
		if err != nil {
			c.initErrors["sessionTokens"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionTokens"]; exists {
		return nil, storedErr
	}
	return c.sessionTokens, nil
}

func (c *Container) initPasswordHasher() (authService.PasswordHasher, error) {
	hasher, err := authService.NewPasswordHasher(c.config.PasswordHashPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_HASH_POLICY: %w", err)
	}
	return hasher, nil
}

func (c *Container) initSessionTokenService() (authService.SessionTokenService, error) {
	secrets, err := c.configSecrets()
	if err != nil {
		return nil, err
	}

	tokens, err := authService.NewSessionTokenService(authService.SessionTokenConfig{
		Secret:    []byte(secrets.jwtSecret),
		Algorithm: c.config.JWTAlgorithm,
		Issuer:    c.config.JWTIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session token service: %w", err)
	}
	return tokens, nil
}

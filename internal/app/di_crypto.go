package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/accountvault/internal/crypto/domain"
	cryptoService "github.com/allisson/accountvault/internal/crypto/service"
	otpService "github.com/allisson/accountvault/internal/otp/service"
)

// kmsUnwrapTimeout bounds the KMS round trips made at startup.
const kmsUnwrapTimeout = 30 * time.Second

// resolvedSecrets holds the configuration secrets after optional KMS unwrapping.
type resolvedSecrets struct {
	appSecret string
	jwtSecret string
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// DerivedKey returns the secret-field key derived from the application secret.
func (c *Container) DerivedKey() (*cryptoDomain.DerivedKey, error) {
	var err error
	c.derivedKeyInit.Do(func() {
		c.derivedKey, err = c.initDerivedKey()
		if err != nil {
			c.initErrors["derivedKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["derivedKey"]; exists {
		return nil, storedErr
	}
	return c.derivedKey, nil
}

// SecretCipher returns the cipher protecting account secrets at rest.
func (c *Container) SecretCipher() (cryptoService.SecretCipher, error) {
	var err error
	c.secretCipherInit.Do(func() {
		c.secretCipher, err = c.initSecretCipher()
		if err != nil {
			c.initErrors["secretCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretCipher"]; exists {
		return nil, storedErr
	}
	return c.secretCipher, nil
}

// TotpGenerator returns the one-time code generator for the configured period.
func (c *Container) TotpGenerator() (otpService.TotpGenerator, error) {
	var err error
	c.totpGeneratorInit.Do(func() {
		c.totpGenerator, err = c.initTotpGenerator()
		if err != nil {
			c.initErrors["totpGenerator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["totpGenerator"]; exists {
		return nil, storedErr
	}
	return c.totpGenerator, nil
}

// configSecrets returns APP_SECRET and JWT_SECRET, unwrapped through KMS when a key URI is set.
func (c *Container) configSecrets() (*resolvedSecrets, error) {
	var err error
	c.secretsInit.Do(func() {
		c.secrets, err = c.initSecrets()
		if err != nil {
			c.initErrors["secrets"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secrets"]; exists {
		return nil, storedErr
	}
	return c.secrets, nil
}

// initKMSService creates the KMS service for unwrapping configuration secrets.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

func (c *Container) initSecrets() (*resolvedSecrets, error) {
	if c.config.KMSKeyURI == "" {
		return &resolvedSecrets{
			appSecret: c.config.AppSecret,
			jwtSecret: c.config.JWTSecret,
		}, nil
	}

	ctx, cancel := context.WithTimeout(c.background, kmsUnwrapTimeout)
	defer cancel()

	kmsService := c.KMSService()

	appSecret, err := kmsService.UnwrapSecret(ctx, c.config.KMSKeyURI, c.config.AppSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap APP_SECRET: %w", err)
	}

	jwtSecret, err := kmsService.UnwrapSecret(ctx, c.config.KMSKeyURI, c.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap JWT_SECRET: %w", err)
	}

	c.Logger().Info("configuration secrets unwrapped with KMS")

	return &resolvedSecrets{appSecret: appSecret, jwtSecret: jwtSecret}, nil
}

func (c *Container) initDerivedKey() (*cryptoDomain.DerivedKey, error) {
	secrets, err := c.configSecrets()
	if err != nil {
		return nil, err
	}

	key, err := cryptoDomain.DeriveKey(secrets.appSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive secret key: %w", err)
	}
	return key, nil
}

func (c *Container) initSecretCipher() (cryptoService.SecretCipher, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.SecretCipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid SECRET_CIPHER_ALGORITHM %q: %w", c.config.SecretCipherAlgorithm, err)
	}

	key, err := c.DerivedKey()
	if err != nil {
		return nil, err
	}

	cipher, err := cryptoService.NewSecretCipher(key, alg, c.AEADManager())
	if err != nil {
		return nil, fmt.Errorf("failed to create secret cipher: %w", err)
	}

	c.Logger().Debug("secret cipher ready", slog.String("algorithm", string(alg)))
	return cipher, nil
}

func (c *Container) initTotpGenerator() (otpService.TotpGenerator, error) {
	generator, err := otpService.NewTotpService(c.config.TOTPPeriod)
	if err != nil {
		return nil, fmt.Errorf("invalid TOTP_PERIOD_SECONDS: %w", err)
	}
	return generator, nil
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	apperrors "github.com/allisson/accountvault/internal/errors"
)

// SessionTokenConfig holds the signing material for session tokens.
type SessionTokenConfig struct {
	// Secret is the shared HMAC key.
	Secret []byte
	// Algorithm is one of HS256, HS384 or HS512.
	Algorithm string
	// Issuer, when set, is written to iss and required on verification.
	Issuer string
}

type sessionTokenService struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
}

// NewSessionTokenService validates cfg and returns a SessionTokenService.
func NewSessionTokenService(cfg SessionTokenConfig) (SessionTokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, authDomain.ErrEmptySigningSecret
	}

	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, authDomain.ErrUnsupportedSigningAlgorithm
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &sessionTokenService{
		secret: secret,
		method: method,
		issuer: cfg.Issuer,
	}, nil
}

func (s *sessionTokenService) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", authDomain.ErrEmptySubject
	}

	jti, err := uuid.NewV7()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate token id")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti.String(),
		Issuer:    s.issuer,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (s *sessionTokenService) Verify(token string, now time.Time) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		// exp has second precision; a token is still good during its final second.
		jwt.WithLeeway(time.Second),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", classifyTokenError(err)
	}

	if claims.Subject == "" {
		return "", authDomain.ErrTokenMalformed
	}
	return claims.Subject, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ErrTokenExpired
	default:
		return authDomain.ErrTokenMalformed
	}
}

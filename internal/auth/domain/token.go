// Package domain holds the authentication vocabulary: issued session tokens and
// the errors raised while checking credentials.
package domain

import "time"

// TokenTypeBearer is the token_type returned alongside every access token.
const TokenTypeBearer = "bearer"

// SessionToken is a freshly issued access token.
//
// Tokens are stateless signed JWTs: nothing is stored server side and they
// stay valid until ExpiresAt.
type SessionToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

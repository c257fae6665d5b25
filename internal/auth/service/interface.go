// Package service implements password hashing and session token signing.
package service

import "time"

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	// Hash returns a salted, algorithm-tagged hash. Two calls never return the same string.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Malformed or unknown hashes
	// yield false, never an error.
	Verify(password, hash string) bool

	// NeedsRehash reports whether hash was produced by a legacy algorithm or
	// cannot be parsed, meaning it should be replaced after a successful login.
	NeedsRehash(hash string) bool
}

// SessionTokenService issues and verifies signed, expiring session tokens.
type SessionTokenService interface {
	// Issue signs a token for subject valid from now until now+ttl.
	Issue(subject string, now time.Time, ttl time.Duration) (string, error)

	// Verify checks signature, algorithm and expiry against now and returns the subject.
	Verify(token string, now time.Time) (string, error)
}

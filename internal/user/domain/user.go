// Package domain defines the vault user: a login identifier and its password hash.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accountvault/internal/errors"
)

// User is someone allowed to log in to the vault.
//
// Email is the login identifier. It is stored normalized and never changes
// after registration. PasswordHash is an algorithm-tagged string produced by
// the password hasher; the plaintext password is never kept.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail returns the canonical form of a login identifier.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	// ErrUserNotFound indicates no user has the requested identifier.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)

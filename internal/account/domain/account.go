// Package domain defines vault accounts: the entries users store credentials in.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accountvault/internal/errors"
)

// MaxCodeLength is the longest accepted account code.
const MaxCodeLength = 64

// Account is a vault entry addressed by its unique Code.
//
// Optional fields are nil when unset. PasswordEnc and AuthenEnc hold SecretCipher
// tokens of the account password and its Base32 TOTP seed; their plaintext is
// never persisted. Every authenticated user sees the same set of accounts.
type Account struct {
	ID          uuid.UUID
	Code        string
	ImageB64    *string
	Username    *string
	Note        *string
	PasswordEnc *string
	AuthenEnc   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Secrets is the decrypted secret material of an account. A field is nil when
// nothing is stored or the stored token cannot be opened.
type Secrets struct {
	Password *string
	Authen   *string
}

var (
	// ErrAccountNotFound indicates no account has the requested code.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates a concurrent upsert created the same code first.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")
)

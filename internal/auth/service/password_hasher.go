package service

import (
	"fmt"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/accountvault/internal/errors"
)

const argon2idPrefix = "$argon2id$"

// bcryptPrefixes are the hash prefixes written by the previous bcrypt-based
// password storage.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// Password hashing policies accepted by NewPasswordHasher.
const (
	PolicyInteractive = "interactive"
	PolicyModerate    = "moderate"
)

type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an Argon2id PasswordHasher for the named policy.
// Legacy bcrypt hashes are still accepted by Verify.
func NewPasswordHasher(policy string) (PasswordHasher, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)

	switch policy {
	case PolicyInteractive:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case PolicyModerate:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("unknown password hash policy %q", policy))
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordHasher{hasher: hasher}, nil
}

func (p *passwordHasher) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

func (p *passwordHasher) Verify(password, hash string) bool {
	if hash == "" {
		return false
	}

	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}

func (p *passwordHasher) NeedsRehash(hash string) bool {
	return !strings.HasPrefix(hash, argon2idPrefix)
}

func isBcrypt(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

// Package service provides the symmetric cryptography used to protect vault secrets at rest.
package service

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/accountvault/internal/crypto/domain"
)

// AEAD seals and opens data with a single key.
//
// Implementations generate a fresh random nonce on every Encrypt call and are
// safe for concurrent use.
type AEAD interface {
	// Encrypt seals plaintext, authenticating aad alongside it. The returned
	// ciphertext carries the tag; the nonce must be kept next to it.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens a ciphertext produced by Encrypt with the same nonce and aad.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager builds AEAD instances for an algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// SecretCipher protects secret fields before they are persisted.
//
// Failures never surface to the caller: Encrypt of an empty value yields an
// empty token, and Decrypt reports false for anything it cannot open.
type SecretCipher interface {
	// Encrypt returns the URL-safe token for plaintext, or "" when plaintext is empty.
	Encrypt(plaintext string) (string, error)

	// Decrypt returns the plaintext and true, or "" and false when the token is
	// empty or cannot be opened with the process key.
	Decrypt(token string) (string, bool)

	// DecryptWithTTL is Decrypt that also rejects tokens issued more than ttl ago.
	DecryptWithTTL(token string, ttl time.Duration) (string, bool)
}

// KMSService opens gocloud.dev keepers and wraps or unwraps configuration secrets with them.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// WrapSecret encrypts plaintext with the keeper at keyURI and returns the
	// base64 ciphertext accepted by UnwrapSecret.
	WrapSecret(ctx context.Context, keyURI, plaintext string) (string, error)

	// UnwrapSecret decodes a base64 KMS ciphertext and decrypts it with the keeper at keyURI.
	UnwrapSecret(ctx context.Context, keyURI, wrapped string) (string, error)
}

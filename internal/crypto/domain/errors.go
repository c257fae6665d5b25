package domain

import (
	"github.com/allisson/accountvault/internal/errors"
)

// Cryptographic operation errors.
//
// SecretCipher never returns these to its callers, it collapses every
// decryption failure into "no value". They surface from the lower level AEAD
// helpers, the key derivation and the CLI.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrEmptyAppSecret indicates key derivation was attempted without an application secret.
	ErrEmptyAppSecret = errors.Wrap(errors.ErrInvalidInput, "application secret is empty")

	// ErrUnknownVersion indicates a ciphertext whose format version byte is not recognized.
	ErrUnknownVersion = errors.Wrap(errors.ErrInvalidInput, "unknown ciphertext version")

	// ErrMalformedCiphertext indicates a ciphertext that is not valid base64 or is too short.
	ErrMalformedCiphertext = errors.Wrap(errors.ErrInvalidInput, "malformed ciphertext")

	// ErrDecryptionFailed indicates the AEAD refused to open a ciphertext
	// (wrong key, tampered data or mismatched header).
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrCiphertextExpired indicates a ciphertext older than the accepted TTL.
	ErrCiphertextExpired = errors.Wrap(errors.ErrInvalidInput, "ciphertext expired")
)

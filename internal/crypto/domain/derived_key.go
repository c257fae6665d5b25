// Package domain holds the secret-field cipher vocabulary: algorithms, the
// versioned ciphertext layout, the derived key and the KMS keeper contract.
package domain

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKey is the process-wide key used to seal secret fields.
//
// It is derived once at startup from the application secret and never
// serialized. Bytes returns a copy, so holders cannot mutate the key shared by
// concurrent encryptions.
type DerivedKey struct {
	key []byte
}

// DeriveKey derives the 32-byte secret-field key from the application secret
// with HKDF-SHA256 under DerivedKeyInfo. The derivation is deterministic: the
// same secret yields the same key across restarts, and any other secret makes
// existing ciphertexts unreadable.
func DeriveKey(appSecret string) (*DerivedKey, error) {
	if appSecret == "" {
		return nil, ErrEmptyAppSecret
	}

	reader := hkdf.New(sha256.New, []byte(appSecret), nil, []byte(DerivedKeyInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return &DerivedKey{key: key}, nil
}

// NewDerivedKey wraps raw key material. It is used by tests and by callers that
// already hold a 32-byte key (for example one unwrapped from a KMS).
func NewDerivedKey(raw []byte) (*DerivedKey, error) {
	if len(raw) != KeySize {
		return nil, ErrInvalidKeySize
	}
	key := make([]byte, KeySize)
	copy(key, raw)
	return &DerivedKey{key: key}, nil
}

// Bytes returns a copy of the key material. Callers should Zero it when done.
func (k *DerivedKey) Bytes() []byte {
	out := make([]byte, len(k.key))
	copy(out, k.key)
	return out
}

// Close wipes the key material.
func (k *DerivedKey) Close() {
	Zero(k.key)
}

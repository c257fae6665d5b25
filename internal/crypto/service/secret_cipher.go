package service

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/accountvault/internal/crypto/domain"
)

// maxClockSkew is how far in the future a token's issue time may be before
// DecryptWithTTL refuses it.
const maxClockSkew = 60 * time.Second

// SecretCipherOption configures a SecretCipherService.
type SecretCipherOption func(*SecretCipherService)

// WithSecretCipherClock replaces the clock used to stamp and age tokens.
func WithSecretCipherClock(now func() time.Time) SecretCipherOption {
	return func(s *SecretCipherService) {
		s.now = now
	}
}

// SecretCipherService implements SecretCipher.
//
// Token layout before base64 (URL alphabet, padded):
//
//	version(1) | issued_at unix seconds(8, big endian) | nonce(12) | ciphertext | tag(16)
//
// The 9-byte header is authenticated as additional data. One AEAD per known
// version is built at construction so tokens sealed under a previously
// configured algorithm keep opening after the algorithm is switched.
type SecretCipherService struct {
	version byte
	ciphers map[byte]AEAD
	now     func() time.Time
}

// NewSecretCipher builds a SecretCipherService that seals new tokens with alg.
func NewSecretCipher(
	key *cryptoDomain.DerivedKey,
	alg cryptoDomain.Algorithm,
	aeadManager AEADManager,
	opts ...SecretCipherOption,
) (*SecretCipherService, error) {
	version, err := cryptoDomain.VersionFor(alg)
	if err != nil {
		return nil, err
	}

	keyBytes := key.Bytes()
	defer cryptoDomain.Zero(keyBytes)

	ciphers := make(map[byte]AEAD, 2)
	for _, known := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		v, _ := cryptoDomain.VersionFor(known)
		aead, err := aeadManager.CreateCipher(keyBytes, known)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s cipher: %w", known, err)
		}
		ciphers[v] = aead
	}

	s := &SecretCipherService{
		version: version,
		ciphers: ciphers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Encrypt seals plaintext. An empty plaintext means "no value" and yields "".
func (s *SecretCipherService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	header := make([]byte, cryptoDomain.HeaderSize)
	header[0] = s.version
	binary.BigEndian.PutUint64(header[1:], uint64(s.now().Unix()))

	ciphertext, nonce, err := s.ciphers[s.version].Encrypt([]byte(plaintext), header)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}

	raw := make([]byte, 0, len(header)+len(nonce)+len(ciphertext))
	raw = append(raw, header...)
	raw = append(raw, nonce...)
	raw = append(raw, ciphertext...)

	return base64.URLEncoding.EncodeToString(raw), nil
}

// Decrypt opens token. Any failure, including an empty token, yields ("", false).
func (s *SecretCipherService) Decrypt(token string) (string, bool) {
	plaintext, _, err := s.open(token)
	if err != nil {
		return "", false
	}
	return plaintext, true
}

// DecryptWithTTL opens token only if it was issued within ttl of now and not
// more than a minute in the future.
func (s *SecretCipherService) DecryptWithTTL(token string, ttl time.Duration) (string, bool) {
	plaintext, issuedAt, err := s.open(token)
	if err != nil {
		return "", false
	}

	now := s.now()
	if now.Sub(issuedAt) > ttl || issuedAt.Sub(now) > maxClockSkew {
		return "", false
	}
	return plaintext, true
}

func (s *SecretCipherService) open(token string) (string, time.Time, error) {
	if token == "" {
		return "", time.Time{}, cryptoDomain.ErrMalformedCiphertext
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, cryptoDomain.ErrMalformedCiphertext
	}
	if len(raw) < cryptoDomain.HeaderSize+cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return "", time.Time{}, cryptoDomain.ErrMalformedCiphertext
	}

	aead, ok := s.ciphers[raw[0]]
	if !ok {
		return "", time.Time{}, cryptoDomain.ErrUnknownVersion
	}

	header := raw[:cryptoDomain.HeaderSize]
	nonce := raw[cryptoDomain.HeaderSize : cryptoDomain.HeaderSize+cryptoDomain.NonceSize]
	ciphertext := raw[cryptoDomain.HeaderSize+cryptoDomain.NonceSize:]

	plaintext, err := aead.Decrypt(ciphertext, nonce, header)
	if err != nil {
		return "", time.Time{}, err
	}

	issuedAt := time.Unix(int64(binary.BigEndian.Uint64(header[1:])), 0)
	return string(plaintext), issuedAt, nil
}

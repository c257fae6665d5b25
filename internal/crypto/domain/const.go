package domain

// Algorithm represents the AEAD used to seal secret fields.
//
// Both algorithms use a 256-bit key, a 12-byte nonce and a 16-byte tag, so a
// DerivedKey works with either and the choice only affects new ciphertexts.
type Algorithm string

const (
	// AESGCM is AES-256 in Galois/Counter Mode. Fast on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305, the constant-time software alternative.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Format version bytes written as the first byte of every secret ciphertext.
// The version names the AEAD that sealed the payload, so a reader never needs
// configuration to open an older ciphertext.
const (
	VersionAESGCM   byte = 0x01
	VersionChaCha20 byte = 0x02
)

const (
	// KeySize is the size in bytes of the derived secret-field key.
	KeySize = 32
	// NonceSize is the nonce size shared by both supported AEADs.
	NonceSize = 12
	// HeaderSize is the version byte plus the 8-byte big-endian issue timestamp.
	HeaderSize = 1 + 8
	// TagSize is the authentication tag appended by both supported AEADs.
	TagSize = 16
	// DerivedKeyInfo is the HKDF info label binding the key to its purpose and format.
	DerivedKeyInfo = "account-vault/secret-cipher/v1"
)

// VersionFor returns the format version byte for an algorithm.
func VersionFor(alg Algorithm) (byte, error) {
	switch alg {
	case AESGCM:
		return VersionAESGCM, nil
	case ChaCha20:
		return VersionChaCha20, nil
	default:
		return 0, ErrUnsupportedAlgorithm
	}
}

// AlgorithmFor is the inverse of VersionFor.
func AlgorithmFor(version byte) (Algorithm, error) {
	switch version {
	case VersionAESGCM:
		return AESGCM, nil
	case VersionChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnknownVersion
	}
}

// ParseAlgorithm validates an algorithm name coming from configuration or the CLI.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(name)
	if _, err := VersionFor(alg); err != nil {
		return "", err
	}
	return alg, nil
}

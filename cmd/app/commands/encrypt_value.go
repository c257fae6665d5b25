package commands

import (
	"errors"
	"fmt"

	cryptoService "github.com/allisson/accountvault/internal/crypto/service"
)

// RunEncryptValue seals value with the configured secret cipher and prints the
// token, in the form stored in the password_enc and authen_enc columns. An
// empty value is read from io.Reader.
func RunEncryptValue(cipher cryptoService.SecretCipher, value, format string, io IOTuple) error {
	if value == "" {
		var err error
		value, err = promptLine(io, "Value: ")
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
	}
	if value == "" {
		return errors.New("value is required")
	}

	token, err := cipher.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	return writeOutput(io.Writer, format, "", [][2]string{{"ciphertext", token}})
}

package commands

import (
	"context"
	"errors"
	"fmt"

	cryptoService "github.com/allisson/accountvault/internal/crypto/service"
)

// RunWrapSecret encrypts a configuration secret with the KMS key at keyURI and
// prints the environment lines that make the server unwrap it at startup.
//
// For local development use a base64key:// URI (localsecrets). In production
// use awskms://, gcpkms://, azurekeyvault:// or hashivault://.
func RunWrapSecret(ctx context.Context, kmsService cryptoService.KMSService, keyURI, name, value string, io IOTuple) error {
	if keyURI == "" {
		return errors.New("--kms-key-uri is required")
	}
	if name != "APP_SECRET" && name != "JWT_SECRET" {
		return fmt.Errorf("invalid secret name %q (valid options: APP_SECRET, JWT_SECRET)", name)
	}

	if value == "" {
		var err error
		value, err = promptLine(io, name+": ")
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
	}
	if value == "" {
		return errors.New("secret value is required")
	}

	wrapped, err := kmsService.WrapSecret(ctx, keyURI, value)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(io.Writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(io.Writer, "KMS_KEY_URI=\"%s\"\n", keyURI)
	_, _ = fmt.Fprintf(io.Writer, "%s=\"%s\"\n", name, wrapped)
	return nil
}

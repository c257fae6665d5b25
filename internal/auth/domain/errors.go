package domain

import (
	"github.com/allisson/accountvault/internal/errors"
)

// Authentication errors. Every one of them wraps ErrUnauthorized, so the HTTP
// layer answers with the same generic 401 whatever the underlying cause.
var (
	// ErrInvalidCredentials indicates an unknown identifier or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenInvalid is the parent of every session token failure.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrTokenExpired indicates a well-signed token past its exp claim.
	ErrTokenExpired = errors.Wrap(ErrTokenInvalid, "token expired")

	// ErrTokenInvalidSignature indicates a signature mismatch or an unexpected algorithm.
	ErrTokenInvalidSignature = errors.Wrap(ErrTokenInvalid, "token signature is invalid")

	// ErrTokenMalformed indicates a token that cannot be parsed or lacks required claims.
	ErrTokenMalformed = errors.Wrap(ErrTokenInvalid, "token is malformed")
)

// Configuration errors raised when building the session token service.
var (
	ErrUnsupportedSigningAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported signing algorithm")
	ErrEmptySigningSecret          = errors.Wrap(errors.ErrInvalidInput, "signing secret is empty")
	ErrEmptySubject                = errors.Wrap(errors.ErrInvalidInput, "token subject is empty")
)

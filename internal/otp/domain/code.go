// Package domain defines the one-time code value derived from stored seeds.
package domain

import (
	"time"

	"github.com/allisson/accountvault/internal/errors"
)

// DefaultPeriod is the time step used by the vault's one-time codes.
const DefaultPeriod = 180 * time.Second

// Digits is the number of decimal digits in a code.
const Digits = 6

// Code is a derived one-time code and the seconds left before it rotates.
// It is computed on demand and never stored.
type Code struct {
	Value            string
	SecondsRemaining int
}

var (
	// ErrInvalidSeed indicates a seed that is not decodable Base32.
	ErrInvalidSeed = errors.Wrap(errors.ErrInvalidInput, "invalid otp seed")

	// ErrInvalidPeriod indicates a non-positive or sub-second step period.
	ErrInvalidPeriod = errors.Wrap(errors.ErrInvalidInput, "invalid otp period")
)

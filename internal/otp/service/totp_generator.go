// Package service derives time-based one-time codes from stored Base32 seeds.
package service

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- HOTP is defined over HMAC-SHA1
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
)

// TotpGenerator derives HOTP codes over a fixed time step.
type TotpGenerator interface {
	// Derive returns the 6-digit code for seed at the given instant, or false when
	// the seed cannot be decoded.
	Derive(seed string, at time.Time) (string, bool)

	// SecondsRemaining returns the seconds left in the step containing at, in (0, period].
	SecondsRemaining(at time.Time) int

	// Generate is Derive plus SecondsRemaining for the same instant.
	Generate(seed string, at time.Time) (otpDomain.Code, bool)
}

// TotpService implements TotpGenerator. It holds only the period and is safe
// for concurrent use.
type TotpService struct {
	period int64
}

// NewTotpService creates a TotpService with the given step. The period must be
// a positive whole number of seconds.
func NewTotpService(period time.Duration) (*TotpService, error) {
	if period < time.Second || period%time.Second != 0 {
		return nil, fmt.Errorf("%w: %s", otpDomain.ErrInvalidPeriod, period)
	}
	return &TotpService{period: int64(period / time.Second)}, nil
}

// Derive implements TotpGenerator.
func (s *TotpService) Derive(seed string, at time.Time) (string, bool) {
	key, err := decodeSeed(seed)
	if err != nil {
		return "", false
	}
	return hotp(key, s.counter(at), otpDomain.Digits), true
}

// SecondsRemaining implements TotpGenerator.
func (s *TotpService) SecondsRemaining(at time.Time) int {
	return int(s.period - floorMod(at.Unix(), s.period))
}

// Generate implements TotpGenerator.
func (s *TotpService) Generate(seed string, at time.Time) (otpDomain.Code, bool) {
	value, ok := s.Derive(seed, at)
	if !ok {
		return otpDomain.Code{}, false
	}
	return otpDomain.Code{Value: value, SecondsRemaining: s.SecondsRemaining(at)}, true
}

// counter floors toward negative infinity so instants before the epoch stay in
// the same step as SecondsRemaining reports.
func (s *TotpService) counter(at time.Time) uint64 {
	unix := at.Unix()
	return uint64((unix - floorMod(unix, s.period)) / s.period)
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// decodeSeed accepts Base32 in any case, with or without padding and with
// embedded whitespace, as authenticator apps print it.
func decodeSeed(seed string) ([]byte, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(seed), ""))
	cleaned = strings.TrimRight(cleaned, "=")
	if cleaned == "" {
		return nil, otpDomain.ErrInvalidSeed
	}

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(cleaned)
	if err != nil || len(key) == 0 {
		return nil, otpDomain.ErrInvalidSeed
	}
	return key, nil
}

// hotp computes the RFC 4226 value for counter with dynamic truncation.
func hotp(key []byte, counter uint64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", digits, value%mod)
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	otpService "github.com/allisson/accountvault/internal/otp/service"
)

// RunDeriveOTP prints the one-time code of a Base32 seed at the given instant
// and the seconds before it rotates. It touches no storage, which makes it
// handy for checking a seed before saving it to an account.
func RunDeriveOTP(generator otpService.TotpGenerator, seed string, at time.Time, format string, writer io.Writer) error {
	if seed == "" {
		return errors.New("seed is required")
	}

	code, ok := generator.Generate(seed, at)
	if !ok {
		return fmt.Errorf("seed is not valid base32")
	}

	return writeOutput(writer, format, "", [][2]string{
		{"otp", code.Value},
		{"left", strconv.Itoa(code.SecondsRemaining)},
	})
}

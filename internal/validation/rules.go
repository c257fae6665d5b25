// Package validation provides the jellydator/validation rules shared by request DTOs.
package validation

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/accountvault/internal/errors"
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	accountCodeRegex = regexp.MustCompile(`^[A-Za-z0-9._:@\-]+$`)
)

// WrapValidationError turns a validation.Errors value into ErrInvalidInput so
// the HTTP layer answers 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength is a configurable login password rule.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len([]rune(s)) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	checks := []struct {
		required bool
		match    func(rune) bool
		code     string
		message  string
	}{
		{p.RequireUpper, unicode.IsUpper, "validation_password_uppercase", "password must contain at least one uppercase letter"},
		{p.RequireLower, unicode.IsLower, "validation_password_lowercase", "password must contain at least one lowercase letter"},
		{p.RequireNumber, unicode.IsNumber, "validation_password_number", "password must contain at least one number"},
		{p.RequireSpecial, isSpecial, "validation_password_special", "password must contain at least one special character"},
	}
	for _, check := range checks {
		if check.required && !strings.ContainsFunc(s, check.match) {
			return validation.NewError(check.code, check.message)
		}
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Email validates the address format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// AccountCode restricts vault account codes to a URL path friendly alphabet,
// since codes are addressed as /accounts/:code.
var AccountCode = validation.NewStringRuleWithError(
	func(s string) bool {
		return accountCodeRegex.MatchString(s)
	},
	validation.NewError(
		"validation_account_code",
		"may only contain letters, digits and . _ : @ -",
	),
)

// Base64 accepts standard base64 with or without padding. Empty strings pass so
// Required stays in charge of presence.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(*string)
	if ok {
		if s == nil {
			return nil
		}
		value = *s
	}

	str, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if str == "" {
		return nil
	}

	if _, err := base64.StdEncoding.DecodeString(str); err == nil {
		return nil
	}
	if _, err := base64.RawStdEncoding.DecodeString(str); err == nil {
		return nil
	}
	return validation.NewError("validation_base64", "must be valid base64-encoded data")
})

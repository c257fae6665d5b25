package dto

import (
	"time"
)

// AccountResponse is the public view of an account. Ciphertexts are never returned.
type AccountResponse struct {
	Code      string    `json:"code"`
	ImageB64  *string   `json:"image_b64"`
	Username  *string   `json:"username"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SecretsResponse carries decrypted secrets; null when absent or undecryptable.
type SecretsResponse struct {
	Password *string `json:"password"`
	Authen   *string `json:"authen"`
}

// OTPResponse carries a one-time code and its seconds left; both null when
// the account has no usable seed.
type OTPResponse struct {
	OTP  *string `json:"otp"`
	Left *int    `json:"left"`
}

// BulkOTPResponse maps every requested code to its OTPResponse.
type BulkOTPResponse struct {
	Results map[string]OTPResponse `json:"results"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

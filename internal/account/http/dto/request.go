// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/accountvault/internal/account/domain"
	appValidation "github.com/allisson/accountvault/internal/validation"
)

// MaxBulkCodes bounds the codes accepted by one bulk OTP request.
const MaxBulkCodes = 500

// UpsertAccountRequest is the body of POST /accounts. Omitted or null fields
// leave the stored value untouched.
type UpsertAccountRequest struct {
	Code     string  `json:"code"`
	ImageB64 *string `json:"image_b64"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Authen   *string `json:"authen"`
	Note     *string `json:"note"`
}

// Validate checks the request with jellydator/validation.
func (r *UpsertAccountRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Code,
			validation.Required.Error("code is required"),
			validation.Length(1, domain.MaxCodeLength),
			appValidation.AccountCode,
		),
		validation.Field(&r.ImageB64, appValidation.Base64),
		validation.Field(&r.Username, validation.Length(0, 255)),
	)
	return appValidation.WrapValidationError(err)
}

// BulkOTPRequest is the body of POST /accounts/otp/bulk.
type BulkOTPRequest struct {
	Codes []string `json:"codes"`
}

// Validate checks the request with jellydator/validation.
func (r *BulkOTPRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Codes,
			validation.Length(0, MaxBulkCodes),
			validation.Each(validation.Length(1, domain.MaxCodeLength)),
		),
	)
	return appValidation.WrapValidationError(err)
}

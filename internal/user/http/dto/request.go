// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/accountvault/internal/validation"
)

// RegisterUserRequest is the body of POST /auth/register.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request with jellydator/validation.
func (r *RegisterUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// LoginRequest is the body of POST /auth/login. It binds from an OAuth2 style
// form (username, password) or from JSON, where email is accepted as an alias
// of username.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
}

// Identifier returns the login identifier, preferring username.
func (r *LoginRequest) Identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

// Validate checks that an identifier and a password are present.
func (r *LoginRequest) Validate() error {
	err := validation.Errors{
		"username": validation.Validate(r.Identifier(), validation.Required.Error("username is required")),
		"password": validation.Validate(r.Password, validation.Required.Error("password is required")),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

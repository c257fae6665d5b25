package dto

import (
	"github.com/allisson/accountvault/internal/account/domain"
	"github.com/allisson/accountvault/internal/account/usecase"
	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
)

// ToUpsertInput converts an UpsertAccountRequest into the use case input.
func ToUpsertInput(req UpsertAccountRequest) usecase.UpsertAccountInput {
	return usecase.UpsertAccountInput{
		Code:     req.Code,
		ImageB64: req.ImageB64,
		Username: req.Username,
		Password: req.Password,
		Authen:   req.Authen,
		Note:     req.Note,
	}
}

// ToAccountResponse converts a domain Account into its response DTO.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		Code:      account.Code,
		ImageB64:  account.ImageB64,
		Username:  account.Username,
		Note:      account.Note,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountListResponse converts accounts into response DTOs, never returning nil.
func ToAccountListResponse(accounts []*domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToAccountResponse(account))
	}
	return responses
}

// ToSecretsResponse converts decrypted secrets into their response DTO.
func ToSecretsResponse(secrets *domain.Secrets) SecretsResponse {
	return SecretsResponse{
		Password: secrets.Password,
		Authen:   secrets.Authen,
	}
}

// ToOTPResponse converts a derived code, possibly nil, into its response DTO.
func ToOTPResponse(code *otpDomain.Code) OTPResponse {
	if code == nil {
		return OTPResponse{}
	}
	value, left := code.Value, code.SecondsRemaining
	return OTPResponse{OTP: &value, Left: &left}
}

// ToBulkOTPResponse converts bulk results into their response DTO.
func ToBulkOTPResponse(results map[string]*otpDomain.Code) BulkOTPResponse {
	out := make(map[string]OTPResponse, len(results))
	for code, otp := range results {
		out[code] = ToOTPResponse(otp)
	}
	return BulkOTPResponse{Results: out}
}

package dto

import (
	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	"github.com/allisson/accountvault/internal/user/domain"
	"github.com/allisson/accountvault/internal/user/usecase"
)

// ToRegisterInput converts a RegisterUserRequest into the use case input.
func ToRegisterInput(req RegisterUserRequest) usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToLoginInput converts a LoginRequest into the use case input.
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Identifier: req.Identifier(),
		Password:   req.Password,
	}
}

// ToUserResponse converts a domain User into its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToTokenResponse converts an issued session token into its response DTO.
func ToTokenResponse(token *authDomain.SessionToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
}

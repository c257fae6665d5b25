// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	"github.com/allisson/accountvault/internal/user/domain"
	"github.com/allisson/accountvault/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase.
type MockUserUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Login mocks the Login method.
func (m *MockUserUseCase) Login(ctx context.Context, input usecase.LoginInput) (*authDomain.SessionToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionToken), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockUserUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/accountvault/internal/account/domain"
	"github.com/allisson/accountvault/internal/account/usecase"
	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
)

// MockAccountUseCase is a mock implementation of usecase.UseCase.
type MockAccountUseCase struct {
	mock.Mock
}

// Upsert mocks the Upsert method.
func (m *MockAccountUseCase) Upsert(ctx context.Context, input usecase.UpsertAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// List mocks the List method.
func (m *MockAccountUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockAccountUseCase) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// RevealSecrets mocks the RevealSecrets method.
func (m *MockAccountUseCase) RevealSecrets(ctx context.Context, code string) (*domain.Secrets, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Secrets), args.Error(1)
}

// GetOTP mocks the GetOTP method.
func (m *MockAccountUseCase) GetOTP(ctx context.Context, code string) (*otpDomain.Code, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*otpDomain.Code), args.Error(1)
}

// BulkOTP mocks the BulkOTP method.
func (m *MockAccountUseCase) BulkOTP(ctx context.Context, codes []string) (map[string]*otpDomain.Code, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*otpDomain.Code), args.Error(1)
}

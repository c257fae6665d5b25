// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	userDomain "github.com/allisson/accountvault/internal/user/domain"
)

// MockAuthenticator is a mock implementation of http.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

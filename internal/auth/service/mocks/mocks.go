// Package mocks provides testify mocks of the auth services.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// NeedsRehash mocks the NeedsRehash method.
func (m *MockPasswordHasher) NeedsRehash(hash string) bool {
	args := m.Called(hash)
	return args.Bool(0)
}

// MockSessionTokenService is a mock implementation of service.SessionTokenService.
type MockSessionTokenService struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockSessionTokenService) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	args := m.Called(subject, now, ttl)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockSessionTokenService) Verify(token string, now time.Time) (string, error) {
	args := m.Called(token, now)
	return args.String(0), args.Error(1)
}

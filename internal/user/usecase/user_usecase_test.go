package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	authMocks "github.com/allisson/accountvault/internal/auth/service/mocks"
	apperrors "github.com/allisson/accountvault/internal/errors"
	"github.com/allisson/accountvault/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	repo   *MockUserRepository
	hasher *authMocks.MockPasswordHasher
	tokens *authMocks.MockSessionTokenService
}

func newTestUseCase(t *testing.T) (*UserUseCase, testDeps) {
	t.Helper()
	deps := testDeps{
		repo:   &MockUserRepository{},
		hasher: &authMocks.MockPasswordHasher{},
		tokens: &authMocks.MockSessionTokenService{},
	}
	t.Cleanup(func() {
		deps.repo.AssertExpectations(t)
		deps.hasher.AssertExpectations(t)
		deps.tokens.AssertExpectations(t)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewUserUseCase(deps.repo, deps.hasher, deps.tokens, time.Hour, logger,
		WithClock(func() time.Time { return fixedNow }))
	return uc, deps
}

func storedUser() *domain.User {
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "john@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		CreatedAt:    fixedNow.Add(-24 * time.Hour),
	}
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.hasher.On("Hash", "SecurePass123!").Return("$argon2id$hashed", nil).Once()
		deps.repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		user, err := uc.Register(ctx, RegisterInput{Email: "  John@Example.COM ", Password: "SecurePass123!"})

		require.NoError(t, err)
		assert.Equal(t, "john@example.com", user.Email)
		assert.Equal(t, "$argon2id$hashed", user.PasswordHash)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, fixedNow, user.CreatedAt)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		user, err := uc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "SecurePass123!"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_ShortPassword", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		user, err := uc.Register(ctx, RegisterInput{Email: "john@example.com", Password: "short"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.hasher.On("Hash", "SecurePass123!").Return("$argon2id$hashed", nil).Once()
		deps.repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(domain.ErrUserAlreadyExists).Once()

		user, err := uc.Register(ctx, RegisterInput{Email: "john@example.com", Password: "SecurePass123!"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_HashFailure", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.hasher.On("Hash", "SecurePass123!").Return("", errors.New("out of memory")).Once()

		user, err := uc.Register(ctx, RegisterInput{Email: "john@example.com", Password: "SecurePass123!"})

		assert.Nil(t, user)
		assert.EqualError(t, err, "out of memory")
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		user := storedUser()

		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		deps.hasher.On("Verify", "SecurePass123!", user.PasswordHash).Return(true).Once()
		deps.hasher.On("NeedsRehash", user.PasswordHash).Return(false).Once()
		deps.tokens.On("Issue", "john@example.com", fixedNow, time.Hour).Return("signed.jwt.token", nil).Once()

		token, err := uc.Login(ctx, LoginInput{Identifier: "John@example.com", Password: "SecurePass123!"})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", token.AccessToken)
		assert.Equal(t, authDomain.TokenTypeBearer, token.TokenType)
		assert.Equal(t, fixedNow.Add(time.Hour), token.ExpiresAt)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		user := storedUser()

		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		deps.hasher.On("Verify", "wrong", user.PasswordHash).Return(false).Once()

		token, err := uc.Login(ctx, LoginInput{Identifier: "john@example.com", Password: "wrong"})

		assert.Nil(t, token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_UnknownUserStillVerifies", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound).Twice()
		deps.hasher.On("Hash", dummyPassword).Return("$argon2id$dummy", nil).Once()
		deps.hasher.On("Verify", "whatever", "$argon2id$dummy").Return(false).Twice()

		for range 2 {
			token, err := uc.Login(ctx, LoginInput{Identifier: "ghost@example.com", Password: "whatever"})
			assert.Nil(t, token)
			assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
			assert.NotErrorIs(t, err, apperrors.ErrNotFound)
		}
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		dbErr := errors.New("connection refused")

		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(nil, dbErr).Once()

		token, err := uc.Login(ctx, LoginInput{Identifier: "john@example.com", Password: "x"})

		assert.Nil(t, token)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Success_UpgradesLegacyHash", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		user := storedUser()
		user.PasswordHash = "$2a$10$legacybcrypthash"

		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		deps.hasher.On("Verify", "SecurePass123!", "$2a$10$legacybcrypthash").Return(true).Once()
		deps.hasher.On("NeedsRehash", "$2a$10$legacybcrypthash").Return(true).Once()
		deps.hasher.On("Hash", "SecurePass123!").Return("$argon2id$upgraded", nil).Once()
		deps.repo.On("UpdatePasswordHash", ctx, user.ID, "$argon2id$upgraded").Return(nil).Once()
		deps.tokens.On("Issue", "john@example.com", fixedNow, time.Hour).Return("signed.jwt.token", nil).Once()

		token, err := uc.Login(ctx, LoginInput{Identifier: "john@example.com", Password: "SecurePass123!"})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", token.AccessToken)
		assert.Equal(t, "$argon2id$upgraded", user.PasswordHash)
	})

	t.Run("Success_UpgradeFailureDoesNotBlockLogin", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		user := storedUser()
		user.PasswordHash = "$2a$10$legacybcrypthash"

		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		deps.hasher.On("Verify", "SecurePass123!", "$2a$10$legacybcrypthash").Return(true).Once()
		deps.hasher.On("NeedsRehash", "$2a$10$legacybcrypthash").Return(true).Once()
		deps.hasher.On("Hash", "SecurePass123!").Return("$argon2id$upgraded", nil).Once()
		deps.repo.On("UpdatePasswordHash", ctx, user.ID, "$argon2id$upgraded").
			Return(errors.New("read-only replica")).Once()
		deps.tokens.On("Issue", "john@example.com", fixedNow, time.Hour).Return("signed.jwt.token", nil).Once()

		token, err := uc.Login(ctx, LoginInput{Identifier: "john@example.com", Password: "SecurePass123!"})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", token.AccessToken)
		assert.Equal(t, "$2a$10$legacybcrypthash", user.PasswordHash)
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		user := storedUser()

		deps.tokens.On("Verify", "signed.jwt.token", fixedNow).Return("john@example.com", nil).Once()
		deps.repo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()

		got, err := uc.Authenticate(ctx, "signed.jwt.token")

		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.tokens.On("Verify", "old.jwt.token", fixedNow).Return("", authDomain.ErrTokenExpired).Once()

		got, err := uc.Authenticate(ctx, "old.jwt.token")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_SubjectDeleted", func(t *testing.T) {
		uc, deps := newTestUseCase(t)

		deps.tokens.On("Verify", "signed.jwt.token", fixedNow).Return("gone@example.com", nil).Once()
		deps.repo.On("GetByEmail", ctx, "gone@example.com").Return(nil, domain.ErrUserNotFound).Once()

		got, err := uc.Authenticate(ctx, "signed.jwt.token")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

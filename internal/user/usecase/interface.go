// Package usecase implements registration, login and token authentication of vault users.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	"github.com/allisson/accountvault/internal/user/domain"
)

// RegisterInput contains the data needed to create a user.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput contains the credentials presented at login. Identifier is the email.
type LoginInput struct {
	Identifier string
	Password   string
}

// UseCase defines the user operations exposed to the HTTP layer and the CLI.
type UseCase interface {
	// Register hashes the password and stores a new user.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login checks the credentials and issues a session token. Any mismatch
	// yields authDomain.ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*authDomain.SessionToken, error)

	// Authenticate verifies a session token and loads the user it names.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

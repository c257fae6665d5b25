package commands

import (
	"context"
	"fmt"
	"log/slog"

	userUsecase "github.com/allisson/accountvault/internal/user/usecase"
)

// RunCreateUser registers a vault user from the command line. When password is
// empty it is read from io.Reader, so it does not end up in shell history.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	if password == "" {
		var err error
		password, err = promptLine(io, "Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := userUseCase.Register(ctx, userUsecase.RegisterInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()))

	return writeOutput(io.Writer, format, "User created successfully!", [][2]string{
		{"id", user.ID.String()},
		{"email", user.Email},
	})
}

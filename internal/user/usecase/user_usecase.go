package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/accountvault/internal/auth/domain"
	authService "github.com/allisson/accountvault/internal/auth/service"
	apperrors "github.com/allisson/accountvault/internal/errors"
	"github.com/allisson/accountvault/internal/user/domain"
	appValidation "github.com/allisson/accountvault/internal/validation"
)

// dummyPassword is hashed once and verified against when the login identifier
// is unknown, so both failure paths cost one hash verification.
const dummyPassword = "account-vault-timing-equalizer"

// Option configures a UserUseCase.
type Option func(*UserUseCase)

// WithClock replaces the clock used to issue and verify session tokens.
func WithClock(now func() time.Time) Option {
	return func(uc *UserUseCase) {
		uc.now = now
	}
}

// UserUseCase implements UseCase.
type UserUseCase struct {
	userRepo UserRepository
	hasher   authService.PasswordHasher
	tokens   authService.SessionTokenService
	tokenTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewUserUseCase creates a UserUseCase. Tokens issued at login live for tokenTTL.
func NewUserUseCase(
	userRepo UserRepository,
	hasher authService.PasswordHasher,
	tokens authService.SessionTokenService,
	tokenTTL time.Duration,
	logger *slog.Logger,
	opts ...Option,
) *UserUseCase {
	uc := &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UserUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{MinLength: 8},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register implements UseCase.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC().Truncate(time.Microsecond),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login implements UseCase.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*authDomain.SessionToken, error) {
	user, err := uc.userRepo.GetByEmail(ctx, domain.NormalizeEmail(input.Identifier))
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			uc.hasher.Verify(input.Password, uc.getDummyHash())
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if uc.hasher.NeedsRehash(user.PasswordHash) {
		uc.upgradeHash(ctx, user, input.Password)
	}

	now := uc.now()
	token, err := uc.tokens.Issue(user.Email, now, uc.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &authDomain.SessionToken{
		AccessToken: token,
		TokenType:   authDomain.TokenTypeBearer,
		ExpiresAt:   now.Add(uc.tokenTTL),
	}, nil
}

// Authenticate implements UseCase.
func (uc *UserUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := uc.tokens.Verify(token, uc.now())
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.Wrap(authDomain.ErrTokenInvalid, "token subject no longer exists")
		}
		return nil, err
	}

	return user, nil
}

// upgradeHash replaces a legacy hash after a successful login. Failure only
// costs another attempt on the next login, so it is logged and swallowed.
func (uc *UserUseCase) upgradeHash(ctx context.Context, user *domain.User, password string) {
	hash, err := uc.hasher.Hash(password)
	if err == nil {
		err = uc.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		uc.logger.Warn("failed to upgrade password hash",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err))
		return
	}

	user.PasswordHash = hash
	uc.logger.Info("upgraded password hash", slog.String("user_id", user.ID.String()))
}

func (uc *UserUseCase) getDummyHash() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash(dummyPassword)
	})
	return uc.dummyHash
}

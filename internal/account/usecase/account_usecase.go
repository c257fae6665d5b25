package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/accountvault/internal/account/domain"
	cryptoService "github.com/allisson/accountvault/internal/crypto/service"
	"github.com/allisson/accountvault/internal/database"
	apperrors "github.com/allisson/accountvault/internal/errors"
	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
	otpService "github.com/allisson/accountvault/internal/otp/service"
	appValidation "github.com/allisson/accountvault/internal/validation"
)

// bulkOTPConcurrency bounds the goroutines deriving codes in BulkOTP.
const bulkOTPConcurrency = 8

// Option configures an AccountUseCase.
type Option func(*AccountUseCase)

// WithClock replaces the clock used for timestamps and code derivation.
func WithClock(now func() time.Time) Option {
	return func(uc *AccountUseCase) {
		uc.now = now
	}
}

// AccountUseCase implements UseCase.
type AccountUseCase struct {
	txManager   database.TxManager
	accountRepo AccountRepository
	cipher      cryptoService.SecretCipher
	totp        otpService.TotpGenerator
	now         func() time.Time
}

// NewAccountUseCase creates an AccountUseCase.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	cipher cryptoService.SecretCipher,
	totp otpService.TotpGenerator,
	opts ...Option,
) *AccountUseCase {
	uc := &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		cipher:      cipher,
		totp:        totp,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func validateUpsertInput(input UpsertAccountInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Code,
			validation.Required.Error("code is required"),
			validation.Length(1, domain.MaxCodeLength),
			appValidation.AccountCode,
		),
		validation.Field(&input.ImageB64, appValidation.Base64),
		validation.Field(&input.Username, validation.Length(0, 255)),
	)
	return appValidation.WrapValidationError(err)
}

// Upsert implements UseCase. The read and the write run in one transaction with
// the existing row locked, so concurrent upserts of one code apply in turn.
func (uc *AccountUseCase) Upsert(ctx context.Context, input UpsertAccountInput) (*domain.Account, error) {
	if err := validateUpsertInput(input); err != nil {
		return nil, err
	}

	passwordEnc, err := uc.encryptOptional(input.Password)
	if err != nil {
		return nil, err
	}
	authenEnc, err := uc.encryptOptional(input.Authen)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := uc.now().UTC().Truncate(time.Microsecond)

		existing, err := uc.accountRepo.GetByCodeForUpdate(ctx, input.Code)
		if err != nil && !apperrors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		create := existing == nil
		if create {
			existing = &domain.Account{
				ID:        uuid.Must(uuid.NewV7()),
				Code:      input.Code,
				CreatedAt: now,
			}
		}

		applyIfSet(&existing.ImageB64, input.ImageB64)
		applyIfSet(&existing.Username, input.Username)
		applyIfSet(&existing.Note, input.Note)
		if input.Password != nil {
			existing.PasswordEnc = passwordEnc
		}
		if input.Authen != nil {
			existing.AuthenEnc = authenEnc
		}
		existing.UpdatedAt = now

		if create {
			err = uc.accountRepo.Create(ctx, existing)
		} else {
			err = uc.accountRepo.Update(ctx, existing)
		}
		if err != nil {
			return err
		}

		account = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// List implements UseCase.
func (uc *AccountUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, offset, limit)
}

// Delete implements UseCase.
func (uc *AccountUseCase) Delete(ctx context.Context, code string) error {
	return uc.accountRepo.Delete(ctx, code)
}

// RevealSecrets implements UseCase.
func (uc *AccountUseCase) RevealSecrets(ctx context.Context, code string) (*domain.Secrets, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &domain.Secrets{
		Password: uc.decryptOptional(account.PasswordEnc),
		Authen:   uc.decryptOptional(account.AuthenEnc),
	}, nil
}

// GetOTP implements UseCase.
func (uc *AccountUseCase) GetOTP(ctx context.Context, code string) (*otpDomain.Code, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return uc.deriveCode(account, uc.now()), nil
}

// BulkOTP implements UseCase. Every code is derived for the same instant.
func (uc *AccountUseCase) BulkOTP(ctx context.Context, codes []string) (map[string]*otpDomain.Code, error) {
	results := make(map[string]*otpDomain.Code, len(codes))
	if len(codes) == 0 {
		return results, nil
	}

	accounts, err := uc.accountRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		byCode[account.Code] = account
	}

	now := uc.now()
	slots := make([]*otpDomain.Code, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkOTPConcurrency)
	for i, code := range codes {
		account, ok := byCode[code]
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = uc.deriveCode(account, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, code := range codes {
		results[code] = slots[i]
	}
	return results, nil
}

func (uc *AccountUseCase) deriveCode(account *domain.Account, at time.Time) *otpDomain.Code {
	seed := uc.decryptOptional(account.AuthenEnc)
	if seed == nil {
		return nil
	}

	code, ok := uc.totp.Generate(*seed, at)
	if !ok {
		return nil
	}
	return &code
}

// encryptOptional returns nil for a nil or empty value, which stores NULL.
func (uc *AccountUseCase) encryptOptional(value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	token, err := uc.cipher.Encrypt(*value)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt secret")
	}
	return &token, nil
}

// decryptOptional collapses every failure to nil.
func (uc *AccountUseCase) decryptOptional(token *string) *string {
	if token == nil {
		return nil
	}

	plaintext, ok := uc.cipher.Decrypt(*token)
	if !ok || plaintext == "" {
		return nil
	}
	return &plaintext
}

func applyIfSet(dst **string, value *string) {
	if value != nil {
		v := *value
		*dst = &v
	}
}

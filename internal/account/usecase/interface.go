// Package usecase implements the vault account operations: upsert, listing,
// secret reveal and one-time code derivation.
package usecase

import (
	"context"

	"github.com/allisson/accountvault/internal/account/domain"
	otpDomain "github.com/allisson/accountvault/internal/otp/domain"
)

// UpsertAccountInput describes a create-or-update by Code.
//
// A nil field leaves the stored value untouched. For Password and Authen an
// empty string clears the stored secret; any other value is encrypted.
type UpsertAccountInput struct {
	Code     string
	ImageB64 *string
	Username *string
	Password *string
	Authen   *string
	Note     *string
}

// UseCase defines the account operations exposed to the HTTP layer.
type UseCase interface {
	Upsert(ctx context.Context, input UpsertAccountInput) (*domain.Account, error)

	// List returns accounts most recently updated first. A limit of 0 returns all of them.
	List(ctx context.Context, offset, limit int) ([]*domain.Account, error)

	Delete(ctx context.Context, code string) error

	// RevealSecrets decrypts the stored password and seed of an account.
	RevealSecrets(ctx context.Context, code string) (*domain.Secrets, error)

	// GetOTP derives the current code of an account. The code is nil when the
	// account has no usable seed.
	GetOTP(ctx context.Context, code string) (*otpDomain.Code, error)

	// BulkOTP derives the current code of every requested account. Unknown
	// codes and accounts without a usable seed map to nil.
	BulkOTP(ctx context.Context, codes []string) (map[string]*otpDomain.Code, error)
}

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Account, error)
	GetByCodes(ctx context.Context, codes []string) ([]*domain.Account, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Account, error)
	Delete(ctx context.Context, code string) error
}

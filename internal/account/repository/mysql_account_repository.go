package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/accountvault/internal/account/domain"
	"github.com/allisson/accountvault/internal/database"
	apperrors "github.com/allisson/accountvault/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL. IDs are stored as BINARY(16).
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account. A duplicate code yields ErrAccountAlreadyExists.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query,
		id, account.Code, account.ImageB64, account.Username, account.Note,
		account.PasswordEnc, account.AuthenEnc, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update overwrites every mutable column of the account with the given code.
func (r *MySQLAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET image_b64 = ?, username = ?, note = ?, password_enc = ?, authen_enc = ?, updated_at = ?
			  WHERE code = ?`

	result, err := querier.ExecContext(ctx, query,
		account.ImageB64, account.Username, account.Note,
		account.PasswordEnc, account.AuthenEnc, account.UpdatedAt, account.Code,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account")
	}
	return checkAffected(result, "failed to update account")
}

// GetByCode retrieves an account by its code.
func (r *MySQLAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ?`
	return r.getOne(ctx, query, code)
}

// GetByCodeForUpdate retrieves an account and locks its row until the
// surrounding transaction ends.
func (r *MySQLAccountRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ? FOR UPDATE`
	return r.getOne(ctx, query, code)
}

// GetByCodes retrieves the accounts whose code is in codes. Unknown codes are
// skipped and the order of the result is unspecified.
func (r *MySQLAccountRepository) GetByCodes(ctx context.Context, codes []string) ([]*domain.Account, error) {
	if len(codes) == 0 {
		return []*domain.Account{}, nil
	}

	querier := database.GetTx(ctx, r.db)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(codes)), ", ")
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code IN (` + placeholders + `)`

	args := make([]any, len(codes))
	for i, code := range codes {
		args[i] = code
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get accounts by code")
	}
	return scanAccounts(rows, scanMySQLAccount)
}

// List returns accounts ordered by most recent update. A limit of 0 returns every account.
func (r *MySQLAccountRepository) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY updated_at DESC, code ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	return scanAccounts(rows, scanMySQLAccount)
}

// Delete removes the account with the given code.
func (r *MySQLAccountRepository) Delete(ctx context.Context, code string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE code = ?`, code)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return checkAffected(result, "failed to delete account")
}

func (r *MySQLAccountRepository) getOne(ctx context.Context, query string, code string) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	account, err := scanMySQLAccount(querier.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}
	return account, nil
}

func scanMySQLAccount(row rowScanner) (*domain.Account, error) {
	var (
		account domain.Account
		idBytes []byte
	)
	err := row.Scan(
		&idBytes, &account.Code, &account.ImageB64, &account.Username, &account.Note,
		&account.PasswordEnc, &account.AuthenEnc, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &account, nil
}

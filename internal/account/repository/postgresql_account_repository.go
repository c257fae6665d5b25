// Package repository persists vault accounts in PostgreSQL or MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/allisson/accountvault/internal/account/domain"
	"github.com/allisson/accountvault/internal/database"
	apperrors "github.com/allisson/accountvault/internal/errors"
)

const accountColumns = `id, code, image_b64, username, note, password_enc, authen_enc, created_at, updated_at`

// PostgreSQLAccountRepository handles account persistence for PostgreSQL
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account. A duplicate code yields ErrAccountAlreadyExists.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(ctx, query,
		account.ID, account.Code, account.ImageB64, account.Username, account.Note,
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
func (r *PostgreSQLAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET image_b64 = $1, username = $2, note = $3, password_enc = $4, authen_enc = $5, updated_at = $6
			  WHERE code = $7`

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
func (r *PostgreSQLAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1`
	return r.getOne(ctx, query, code)
}

// GetByCodeForUpdate retrieves an account and locks its row until the
// surrounding transaction ends.
func (r *PostgreSQLAccountRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1 FOR UPDATE`
	return r.getOne(ctx, query, code)
}

// GetByCodes retrieves the accounts whose code is in codes. Unknown codes are
// skipped and the order of the result is unspecified.
func (r *PostgreSQLAccountRepository) GetByCodes(ctx context.Context, codes []string) ([]*domain.Account, error) {
	if len(codes) == 0 {
		return []*domain.Account{}, nil
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1)`

	rows, err := querier.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get accounts by code")
	}
	return scanAccounts(rows, scanPostgreSQLAccount)
}

// List returns accounts ordered by most recent update. A limit of 0 returns every account.
func (r *PostgreSQLAccountRepository) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY updated_at DESC, code ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	return scanAccounts(rows, scanPostgreSQLAccount)
}

// Delete removes the account with the given code.
func (r *PostgreSQLAccountRepository) Delete(ctx context.Context, code string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE code = $1`, code)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return checkAffected(result, "failed to delete account")
}

func (r *PostgreSQLAccountRepository) getOne(ctx context.Context, query string, code string) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	account, err := scanPostgreSQLAccount(querier.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}
	return account, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.Code, &account.ImageB64, &account.Username, &account.Note,
		&account.PasswordEnc, &account.AuthenEnc, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func scanAccounts(rows *sql.Rows, scan func(rowScanner) (*domain.Account, error)) ([]*domain.Account, error) {
	defer func() {
		_ = rows.Close()
	}()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}
	return accounts, nil
}

func checkAffected(result sql.Result, message string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

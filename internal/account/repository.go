// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/angelamos/ledger-backend/internal/core"
)

const accountColumns = `id, user_id, bank_code, account_number, account_type,
		       balance, is_active, is_deleted, deleted_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, account *Account) error
	ListByUser(ctx context.Context, userID string) ([]Account, error)
	GetByID(ctx context.Context, id, userID string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	SoftDelete(ctx context.Context, id, userID string, now time.Time) error
	ListEntries(ctx context.Context, accountID string) ([]Entry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO accounts (id, user_id, bank_code, account_number,
		                      account_type, balance, is_active, is_deleted,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.BankCode,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.IsActive,
		account.IsDeleted,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND is_deleted = false
		ORDER BY created_at`

	var accounts []Account
	if err := r.db.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id, userID string,
) (*Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND user_id = $2 AND is_deleted = false`

	var account Account
	if err := r.db.GetContext(ctx, &account, query, id, userID); err != nil {
		return nil, core.MapNoRows(err, "get account")
	}

	return &account, nil
}

func (r *repository) Update(ctx context.Context, account *Account) error {
	query := `
		UPDATE accounts
		SET bank_code = $3, account_type = $4, balance = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2 AND is_deleted = false`

	result, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.BankCode,
		account.AccountType,
		account.Balance,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update account: %w", core.ErrNotFound)
	}

	return nil
}

// SoftDelete hides the account. Its transactions are kept.
func (r *repository) SoftDelete(
	ctx context.Context,
	id, userID string,
	now time.Time,
) error {
	query := `
		UPDATE accounts
		SET is_active = false, is_deleted = true,
		    deleted_at = $3, updated_at = $3
		WHERE id = $1 AND user_id = $2 AND is_deleted = false`

	result, err := r.db.ExecContext(ctx, query, id, userID, now)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListEntries(
	ctx context.Context,
	accountID string,
) ([]Entry, error) {
	query := `
		SELECT id, transaction_type, transaction_method, amount,
		       description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, accountID); err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}

	return entries, nil
}

// AngelaMos | 2026
// repository.go

package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelamos/ledger-backend/internal/core"
)

const transactionColumns = `t.id, t.account_id, t.transaction_type,
		       t.transaction_method, t.amount, t.description,
		       t.created_at, t.updated_at`

// Ownership is resolved through accounts.user_id. Transactions of a
// soft deleted account stay readable.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	GetByID(ctx context.Context, id, userID string) (*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id string) error
	Sum(
		ctx context.Context,
		userID, txType string,
		from, to time.Time,
	) (float64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tx *Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, transaction_type,
		                          transaction_method, amount, description,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AccountID,
		tx.TransactionType,
		tx.TransactionMethod,
		tx.Amount,
		tx.Description,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	filter Filter,
) ([]Transaction, error) {
	conditions := []string{"a.user_id = $1"}
	args := []any{filter.UserID}
	argIdx := 2

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("t.created_at >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("t.created_at < $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("t.transaction_type = $%d", argIdx))
		args = append(args, filter.Type)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s
		ORDER BY t.created_at DESC`,
		transactionColumns, strings.Join(conditions, " AND "))

	var txs []Transaction
	if err := r.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txs, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id, userID string,
) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.user_id = $2`

	var tx Transaction
	if err := r.db.GetContext(ctx, &tx, query, id, userID); err != nil {
		return nil, core.MapNoRows(err, "get transaction")
	}

	return &tx, nil
}

func (r *repository) Update(ctx context.Context, tx *Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_type = $2, transaction_method = $3, amount = $4,
		    description = $5, updated_at = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.TransactionType,
		tx.TransactionMethod,
		tx.Amount,
		tx.Description,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update transaction: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete transaction: %w", core.ErrNotFound)
	}

	return nil
}

// Sum totals one transaction type over [from, to) for all of a user's
// accounts.
func (r *repository) Sum(
	ctx context.Context,
	userID, txType string,
	from, to time.Time,
) (float64, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.transaction_type = $2
		  AND t.created_at >= $3 AND t.created_at < $4`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, userID, txType, from, to); err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}

	return total, nil
}

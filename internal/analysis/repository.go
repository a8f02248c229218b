// AngelaMos | 2026
// repository.go

package analysis

import (
	"context"
	"fmt"

	"github.com/angelamos/ledger-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Analysis) error
	ListByUser(ctx context.Context, userID string, params ListParams) ([]Analysis, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Analysis) error {
	query := `
		INSERT INTO analysis (id, user_id, analysis_type, analysis_about,
		                      amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.AnalysisType,
		a.AnalysisAbout,
		a.Amount,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Analysis, error) {
	query := `
		SELECT id, user_id, analysis_type, analysis_about, amount,
		       created_at, updated_at
		FROM analysis
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var items []Analysis
	if err := r.db.SelectContext(ctx, &items, query, userID, params.Limit, params.Skip); err != nil {
		return nil, fmt.Errorf("list analysis: %w", err)
	}

	return items, nil
}

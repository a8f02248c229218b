// AngelaMos | 2026
// service.go

package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/ledger-backend/internal/core"
)

// Totals sums one transaction type of a user over [from, to).
type Totals interface {
	Sum(
		ctx context.Context,
		userID, txType string,
		from, to time.Time,
	) (float64, error)
}

var transactionTypeFor = map[string]string{
	AboutTotalSpending: "WITHDRAW",
	AboutTotalIncome:   "DEPOSIT",
}

type Service struct {
	repo   Repository
	totals Totals
	now    func() time.Time
}

func NewService(repo Repository, totals Totals) *Service {
	return &Service{
		repo:   repo,
		totals: totals,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Analysis, error) {
	params.Normalize()
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateAnalysisRequest,
) (*Analysis, error) {
	return s.store(ctx, userID, req.AnalysisType, req.AnalysisAbout, req.Amount)
}

// Generate computes the figure from the user's transactions over the
// period ending now and stores it.
func (s *Service) Generate(
	ctx context.Context,
	userID string,
	req GenerateAnalysisRequest,
) (*Analysis, error) {
	now := s.now()

	from, ok := PeriodStart(req.AnalysisType, now)
	if !ok {
		return nil, fmt.Errorf("analysis type %q: %w", req.AnalysisType, core.ErrInvalidInput)
	}

	txType, ok := transactionTypeFor[req.AnalysisAbout]
	if !ok {
		return nil, fmt.Errorf("analysis about %q: %w", req.AnalysisAbout, core.ErrInvalidInput)
	}

	amount, err := s.totals.Sum(ctx, userID, txType, from, now)
	if err != nil {
		return nil, err
	}

	return s.store(ctx, userID, req.AnalysisType, req.AnalysisAbout, amount)
}

func (s *Service) store(
	ctx context.Context,
	userID, analysisType, about string,
	amount float64,
) (*Analysis, error) {
	now := s.now()
	a := &Analysis{
		ID:            uuid.New().String(),
		UserID:        userID,
		AnalysisType:  analysisType,
		AnalysisAbout: about,
		Amount:        amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

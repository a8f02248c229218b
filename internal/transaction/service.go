// AngelaMos | 2026
// service.go

package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/ledger-backend/internal/core"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("dates must use the YYYY-MM-DD format")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountChecker confirms that an account is live and owned by a user.
type AccountChecker interface {
	Owns(ctx context.Context, accountID, userID string) (bool, error)
}

type Service struct {
	repo     Repository
	accounts AccountChecker
	now      func() time.Time
}

func NewService(repo Repository, accounts AccountChecker) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List filters by creation date. Both bounds are whole UTC days and the
// end date is inclusive.
func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Transaction, error) {
	filter := Filter{UserID: userID, Type: params.TransactionType}

	if params.StartDate != "" {
		from, err := parseDate(params.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}

	if params.EndDate != "" {
		end, err := parseDate(params.EndDate)
		if err != nil {
			return nil, err
		}
		to := end.AddDate(0, 0, 1)
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("start_date after end_date: %w", ErrInvalidDate)
	}

	return s.repo.List(ctx, filter)
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTransactionRequest,
) (*Transaction, error) {
	if err := s.requireAccount(ctx, req.AccountID, userID); err != nil {
		return nil, err
	}

	now := s.now()
	tx := &Transaction{
		ID:                uuid.New().String(),
		AccountID:         req.AccountID,
		TransactionType:   req.TransactionType,
		TransactionMethod: req.TransactionMethod,
		Amount:            req.Amount,
		Description:       req.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Transaction, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *Service) Update(
	ctx context.Context,
	id, userID string,
	req UpdateTransactionRequest,
) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.TransactionType != nil {
		tx.TransactionType = *req.TransactionType
	}
	if req.TransactionMethod != nil {
		tx.TransactionMethod = *req.TransactionMethod
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Description != nil {
		tx.Description = req.Description
	}
	tx.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes the transaction and returns it as it was.
func (s *Service) Delete(ctx context.Context, id, userID string) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, tx.ID); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) requireAccount(ctx context.Context, accountID, userID string) error {
	owned, err := s.accounts.Owns(ctx, accountID, userID)
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if !owned {
		return fmt.Errorf("%w: %w", ErrAccountNotFound, core.ErrNotFound)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
	}
	return t, nil
}

// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/ledger-backend/internal/core"
)

var ErrNumberTaken = errors.New("account number already registered")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns core.ErrNotFound when the user has no live accounts.
func (s *Service) List(ctx context.Context, userID string) ([]Account, error) {
	accounts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("list accounts: %w", core.ErrNotFound)
	}
	return accounts, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateAccountRequest,
) (*Account, error) {
	now := s.now()
	account := &Account{
		ID:            uuid.New().String(),
		UserID:        userID,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Balance:       req.Balance,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNumberTaken
		}
		return nil, err
	}

	slog.InfoContext(ctx, "account opened",
		"account_id", account.ID,
		"user_id", userID,
	)
	return account, nil
}

func (s *Service) Detail(
	ctx context.Context,
	id, userID string,
) (*Account, []Entry, error) {
	account, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.repo.ListEntries(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	return account, entries, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, userID string,
	req UpdateAccountRequest,
) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	account.BankCode = req.BankCode
	account.AccountType = req.AccountType
	account.Balance = req.Balance
	account.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.SoftDelete(ctx, id, userID, s.now())
}

// Owns reports whether accountID is a live account of userID.
func (s *Service) Owns(ctx context.Context, accountID, userID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/angelamos/ledger-backend/internal/auth"
	"github.com/angelamos/ledger-backend/internal/core"
)

var ErrEmailTaken = errors.New("email already registered")

type Service struct {
	db     *sqlx.DB
	repo   Repository
	hasher *core.PasswordHasher
	now    func() time.Time
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	hasher *core.PasswordHasher,
) *Service {
	return &Service{
		db:     db,
		repo:   repo,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) inTx(ctx context.Context, fn func(repo Repository) error) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(s.repo.WithTx(tx))
	})
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	user := New(
		uuid.New().String(),
		normalizeEmail(email),
		passwordHash,
		name,
		s.now(),
	)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

// UpdateMe applies the present fields of req in one transaction. Nothing
// is written when any step fails.
func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	var updated *User
	err := s.inTx(ctx, func(repo Repository) error {
		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email != user.Email {
				exists, err := repo.ExistsByEmail(ctx, email)
				if err != nil {
					return err
				}
				if exists {
					return ErrEmailTaken
				}
				user.Email = email
			}
		}

		if req.Name != nil {
			user.Name = *req.Name
		}

		if req.Password != nil {
			hash, err := s.hasher.Hash(*req.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		user.UpdatedAt = s.now()

		if err := repo.Update(ctx, user); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return ErrEmailTaken
			}
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteMe soft deletes the user. Deleting an already deleted user is a
// no-op and keeps the first deleted_at.
func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	ctx, span := core.StartSpan(ctx, "user.delete",
		attribute.String("user.id", userID),
	)
	defer span.End()

	err := s.inTx(ctx, func(repo Repository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		if !user.MarkDeleted(s.now()) {
			return nil
		}

		deleted, err := repo.SoftDelete(ctx, user)
		if err != nil {
			return err
		}
		if deleted {
			slog.InfoContext(ctx, "user deleted", "user_id", user.ID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		core.SetSpanError(ctx, err)
	}

	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsDeleted:    u.IsDeleted,
		Visible:      u.IsVisible(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)

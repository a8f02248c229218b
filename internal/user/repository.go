// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/angelamos/ledger-backend/internal/core"
)

const userColumns = `id, email, password, name, is_active, is_deleted,
		       deleted_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SoftDelete(ctx context.Context, user *User) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	WithTx(tx core.DBTX) Repository
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx core.DBTX) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password, name, is_active, is_deleted,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.IsActive,
		user.IsDeleted,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID returns only a visible user.
func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND is_deleted = false AND is_active = true`

	var user User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, core.MapNoRows(err, "get user")
	}

	return &user, nil
}

// GetByEmail returns only a visible user.
func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND is_deleted = false AND is_active = true`

	var user User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, core.MapNoRows(err, "get user by email")
	}

	return &user, nil
}

// FindByID returns the user in any state. FOR UPDATE holds the row until
// the surrounding transaction ends.
func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		FOR UPDATE`

	var user User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, core.MapNoRows(err, "find user")
	}

	return &user, nil
}

// Update writes the profile columns. Lifecycle columns are never touched
// here.
func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, password = $4, updated_at = $5
		WHERE id = $1 AND is_deleted = false`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return requireRow(result.RowsAffected, "update user")
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password = $2
		WHERE id = $1 AND is_deleted = false`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return requireRow(result.RowsAffected, "update password")
}

// SoftDelete persists a transition made by User.MarkDeleted. The
// is_deleted guard makes a concurrent second delete a no-op, reported as
// false.
func (r *repository) SoftDelete(ctx context.Context, user *User) (bool, error) {
	query := `
		UPDATE users
		SET is_active = false, is_deleted = true,
		    deleted_at = $2, updated_at = $2
		WHERE id = $1 AND is_deleted = false`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.DeletedAt)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return rows > 0, nil
}

// ExistsByEmail includes deleted rows: a deleted user's email stays
// reserved.
func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func requireRow(rowsAffected func() (int64, error), op string) error {
	rows, err := rowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}

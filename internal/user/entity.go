// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

// User is a row of the users table. The row is never physically removed:
// deletion moves it to StateDeleted and accounts that reference it keep
// pointing at a valid id.
type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Name         string     `db:"name"`
	IsActive     bool       `db:"is_active"`
	IsDeleted    bool       `db:"is_deleted"`
	DeletedAt    *time.Time `db:"deleted_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func New(id, email, passwordHash, name string, now time.Time) *User {
	now = now.UTC()
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) State() State {
	if u.IsDeleted {
		return StateDeleted
	}
	return StateActive
}

// IsVisible reports whether the user may be resolved as the current user.
func (u *User) IsVisible() bool {
	return u.IsActive && !u.IsDeleted
}

// MarkDeleted moves an active user to StateDeleted and reports whether the
// transition happened. On a deleted user it changes nothing, so DeletedAt
// keeps its first value.
func (u *User) MarkDeleted(now time.Time) bool {
	if u.IsDeleted {
		return false
	}

	now = now.UTC()
	u.IsActive = false
	u.IsDeleted = true
	u.DeletedAt = &now
	u.UpdatedAt = now
	return true
}

// AngelaMos | 2026
// entity_test.go

package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserIsActive(t *testing.T) {
	local := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
	u := New("id-1", "a@x.com", "hash", "Alice", local)

	assert.Equal(t, StateActive, u.State())
	assert.True(t, u.IsVisible())
	assert.Nil(t, u.DeletedAt)
	assert.Equal(t, time.UTC, u.CreatedAt.Location())
	assert.True(t, u.CreatedAt.Equal(local))
}

func TestMarkDeletedIsIdempotent(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := New("id-1", "a@x.com", "hash", "Alice", first.Add(-time.Hour))

	require.True(t, u.MarkDeleted(first))
	assert.Equal(t, StateDeleted, u.State())
	assert.False(t, u.IsVisible())
	assert.False(t, u.IsActive)
	require.NotNil(t, u.DeletedAt)
	assert.True(t, u.DeletedAt.Equal(first))

	assert.False(t, u.MarkDeleted(first.Add(time.Hour)))
	assert.True(t, u.DeletedAt.Equal(first), "deleted_at keeps its first value")
	assert.True(t, u.UpdatedAt.Equal(first))
}

func TestInactiveUserIsNotVisible(t *testing.T) {
	u := New("id-1", "a@x.com", "hash", "Alice", time.Now())
	u.IsActive = false

	assert.Equal(t, StateActive, u.State())
	assert.False(t, u.IsVisible())
}

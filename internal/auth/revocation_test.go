// AngelaMos | 2026
// revocation_test.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ledger-backend/internal/core"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	exp := time.Now().Add(time.Hour)

	revoked, err := store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	added, err := store.Revoke(ctx, "token-a", exp)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Revoke(ctx, "token-a", exp)
	require.NoError(t, err)
	assert.False(t, added, "second revoke is a no-op")

	revoked, err = store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Equal(t, 1, store.Len())
}

func TestMemoryRevocationStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	exp := time.Now().Add(time.Hour)

	const workers = 32
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)

	for i := range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ok, err := store.Revoke(ctx, "shared", exp)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
			_, err = store.Revoke(ctx, fmt.Sprintf("token-%d", i), exp)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := store.IsRevoked(ctx, "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added, "exactly one caller wins the shared revoke")
	assert.Equal(t, workers+1, store.Len())
}

func newRedisStore(t *testing.T) (*RedisRevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRevocationStore(client, ""), mr
}

func TestRedisRevocationStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	added, err := store.Revoke(ctx, "token-a", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.True(t, added)

	key := "revoked:" + core.HashToken("token-a")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	added, err = store.Revoke(ctx, "token-a", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, added)

	revoked, err := store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(10 * time.Minute)

	revoked, err = store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lives only as long as the token")
}

func TestRedisRevocationStoreExpiredToken(t *testing.T) {
	store, mr := newRedisStore(t)

	added, err := store.Revoke(context.Background(), "old", time.Now().Add(-time.Minute))
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.False(t, added)
	assert.Empty(t, mr.Keys())
}

func TestRedisRevocationStoreKeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRevocationStore(client, "ledger:revoked:")
	_, err := store.Revoke(context.Background(), "tok", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, mr.Exists("ledger:revoked:"+core.HashToken("tok")))
}

func TestRedisRevocationStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "tok")
	assert.ErrorContains(t, err, "check revocation")

	_, err = store.Revoke(context.Background(), "tok", time.Now().Add(time.Hour))
	assert.ErrorContains(t, err, "revoke token")
}

// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelamos/ledger-backend/internal/core"
)

// RevocationStore records tokens that must no longer be honored even though
// their signature and expiry are still valid.
type RevocationStore interface {
	// Revoke adds token and reports whether it was newly added. Revoking
	// a token twice is not an error. A store whose entries expire with the
	// token rejects an already expired token with core.ErrTokenExpired.
	Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore keeps revoked token digests for the life of the
// process. Entries are never swept, so it suits single-instance deployments.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
	}
}

func (s *MemoryRevocationStore) Revoke(
	_ context.Context,
	token string,
	expiresAt time.Time,
) (bool, error) {
	key := core.HashToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.revoked[key]; exists {
		return false, nil
	}

	s.revoked[key] = expiresAt
	return true, nil
}

func (s *MemoryRevocationStore) IsRevoked(
	_ context.Context,
	token string,
) (bool, error) {
	key := core.HashToken(token)

	s.mu.RLock()
	_, exists := s.revoked[key]
	s.mu.RUnlock()

	return exists, nil
}

func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

// RedisRevocationStore shares revocations across instances. Each entry
// lives only as long as the token it blocks.
type RedisRevocationStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

func NewRedisRevocationStore(
	client *redis.Client,
	keyPrefix string,
) *RedisRevocationStore {
	if keyPrefix == "" {
		keyPrefix = "revoked:"
	}
	return &RedisRevocationStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (s *RedisRevocationStore) key(token string) string {
	return s.keyPrefix + core.HashToken(token)
}

func (s *RedisRevocationStore) Revoke(
	ctx context.Context,
	token string,
	expiresAt time.Time,
) (bool, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return false, fmt.Errorf("revoke token: %w", core.ErrTokenExpired)
	}

	added, err := s.client.SetNX(ctx, s.key(token), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}

	return added, nil
}

func (s *RedisRevocationStore) IsRevoked(
	ctx context.Context,
	token string,
) (bool, error) {
	exists, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}

	return exists > 0, nil
}

var (
	_ RevocationStore = (*MemoryRevocationStore)(nil)
	_ RevocationStore = (*RedisRevocationStore)(nil)
)

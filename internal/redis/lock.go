package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles short-lived request locks in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireRequestLock attempts to acquire the lock for an idempotency key.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireRequestLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey(key), "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleaseRequestLock releases the lock for an idempotency key.
func (s *LockStore) ReleaseRequestLock(ctx context.Context, key string) error {
	return s.client.Del(ctx, lockKey(key)).Err()
}

func lockKey(key string) string {
	return fmt.Sprintf("lock:idempotency:%s", key)
}

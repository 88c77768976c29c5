package redis

import (
	"context"
	"time"

	"triphaven/internal/service"
)

// RequestLocker defines the interface for idempotency request locks.
type RequestLocker interface {
	AcquireRequestLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseRequestLock(ctx context.Context, key string) error
}

// Ensure concrete types implement interfaces.
var (
	_ service.TripCache = (*CacheStore)(nil)
	_ RequestLocker     = (*LockStore)(nil)
)

package redis

import (
	"context"
	"time"
)

// CaptainCacheInterface defines captain profile caching.
type CaptainCacheInterface interface {
	GetCaptain(ctx context.Context, captainID string) (*CachedCaptain, error)
	SetCaptain(ctx context.Context, captain *CachedCaptain) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireRegistrationLock(ctx context.Context, email string, ttl time.Duration) (string, bool, error)
	ReleaseRegistrationLock(ctx context.Context, email, token string) error
}

// TokenDenylistInterface defines revoked-token tracking.
type TokenDenylistInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IdempotencyStoreInterface defines response replay storage.
type IdempotencyStoreInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ CaptainCacheInterface     = (*CacheStore)(nil)
	_ LockStoreInterface        = (*LockStore)(nil)
	_ TokenDenylistInterface    = (*TokenDenylist)(nil)
	_ IdempotencyStoreInterface = (*IdempotencyStore)(nil)
)

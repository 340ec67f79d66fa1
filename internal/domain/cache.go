package domain

import (
	"context"
	"time"
)

// CacheStore is a shared, non-authoritative side table keyed by string.
// Implementations return ErrCacheMiss from Get when the key is absent or
// expired. The persistence repositories remain the sole source of truth.
type CacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern removes every key matching a glob pattern. O(N) over the
	// keyspace; reserved for mutation paths.
	DeleteByPattern(ctx context.Context, pattern string) error
}

package cache

import (
	"context"
	"time"
)

// Cache is the contract shared by the Redis cache and the in-process
// memory cache, so handlers and tests can swap implementations.
type Cache interface {
	// Get fetches a value into dest.
	// found = true: cache hit, data unmarshalled into dest
	// found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the cache is reachable
	Ping(ctx context.Context) error
}

package core

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching chain responses.
// The data layer provides the Redis implementation; the engine only sees
// this contract.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

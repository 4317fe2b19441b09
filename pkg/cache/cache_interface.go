package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so implementations can be
// swapped (Redis in production, an in-memory map in tests).
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// found == false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value (JSON-marshalled) under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}

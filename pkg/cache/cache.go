// Package cache provides the byte-level caches used by the layout pipeline
// and the key scheme shared by every store.
//
// Three implementations satisfy [Cache]: [FileCache] for the CLI,
// [RedisCache] for servers sharing state, and [NullCache] when caching is
// disabled. Keys come from a [Keyer] so the file, redis and settings
// backends agree on naming.
package cache

import (
	"context"
	"time"
)

// TTLPlan is how long a computed layout plan stays cached.
const TTLPlan = time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and whether it was found. A missing or expired
	// entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

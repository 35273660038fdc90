// Package cache provides small key/value backends used to keep short-lived
// credentials between runs.
//
// bomstock never caches distributor responses: every part lookup goes to
// the API. The only thing worth keeping is the DigiKey OAuth access token,
// which is valid for several minutes and costs a round-trip to obtain.
//
// Backends:
//   - [FileCache]: one JSON file per key under ~/.cache/bomstock (CLI default)
//   - [RedisCache]: shared store for CI runners or several workstations
//   - [NullCache]: no-op, used with --no-cache and in tests
//
// Use [NewScoped] to give each consumer its own key space on a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. A miss or an expired entry is
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any connection held by the backend.
	Close() error
}

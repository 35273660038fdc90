package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prefixes every key. Consumers sharing one backend
// (for example several DigiKey accounts on the same Redis) stay isolated.
//
// Example usage:
//
//	tokens := NewScoped(backend, "token:digikey:")
//	tokens.Set(ctx, key, data, ttl) // stored as "token:digikey:<key>"
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner.
// If inner is nil, a NullCache is used.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a prefixed key from the inner cache.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key in the inner cache.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key from the inner cache.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner cache.
func (s *Scoped) Close() error {
	return s.inner.Close()
}

var _ Cache = (*Scoped)(nil)

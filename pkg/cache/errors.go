package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrEmptyKey is returned when Set or Delete is called with an empty key.
	ErrEmptyKey = errors.New("empty cache key")

	// ErrUnsupportedURL is returned by [Open] for an unknown backend scheme.
	ErrUnsupportedURL = errors.New("unsupported cache url")
)

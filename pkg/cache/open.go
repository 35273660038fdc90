package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open selects a backend from a location string:
//   - "" or "none": [NullCache]
//   - "redis://..." or "rediss://...": [RedisCache]
//   - anything else is treated as a directory for [FileCache]
func Open(ctx context.Context, location string) (Cache, error) {
	switch {
	case location == "" || location == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		rc, err := NewRedisCache(ctx, location)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, location)
	default:
		fc, err := NewFileCache(location)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

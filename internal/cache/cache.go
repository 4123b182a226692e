package cache

import (
	"context"
	"time"
)

// Cache is a JSON read-through cache. The only consumer today is the
// job-catalog listing; a miss is never an error, callers fall back to
// the database.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

package repository

import (
	"context"
	"time"
)

// CacheRepository is a best-effort key/value cache for aggregate reads.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

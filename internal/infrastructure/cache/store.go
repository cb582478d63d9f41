package cache

import (
	"context"
	"time"
)

// Store is a JSON key/value store with per-key expiry.
type Store interface {
	Ping(ctx context.Context) error
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const DefaultTTL = 600 * time.Second

var (
	_ Store = (*Redis)(nil)
	_ Store = (*Memory)(nil)
)

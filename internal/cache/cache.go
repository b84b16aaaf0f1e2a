package cache

import (
	"context"
	"time"
)

// Cache is a small read-through cache for dashboard stats and product lists.
// Implementations must treat a miss as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Well-known keys
const (
	KeyDashboardStats = "pos:dashboard:stats"
	KeyProductList    = "pos:products:all"
)

// Noop satisfies Cache without storing anything. Used when Redis is not
// configured and in tests.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error { return nil }

func (Noop) Delete(ctx context.Context, keys ...string) error { return nil }

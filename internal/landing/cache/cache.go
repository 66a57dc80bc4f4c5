// Package cache stores rendered landing page variants so repeat visits skip
// template execution.
package cache

import (
	"context"
	"time"
)

// Store is a byte cache with per-key TTL. Get returns sentinel.ErrNotFound on
// a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

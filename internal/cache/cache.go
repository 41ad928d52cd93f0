// Package cache memoizes analytics results behind a pluggable byte store.
// Two backends are provided: an in-process sharded LRU and Redis.
package cache

import (
	"context"
	"time"
)

// Store is a byte-valued cache with per-entry expiry.
type Store interface {
	// Get returns the value for key. ok is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Purge drops every entry owned by this store.
	Purge(ctx context.Context) error
	Close() error
}

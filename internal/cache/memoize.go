package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/aevon-lab/fleet-analytics/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

// Memoizer caches JSON-encoded results by operation, parameters and time
// bucket (now truncated to the TTL). Concurrent misses for the same key are
// computed once.
type Memoizer struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
	nowFn func() time.Time

	// generation counts invalidations. A result computed across an
	// invalidation is returned to its callers but never stored.
	generation atomic.Uint64
	// storeMu orders result writes against Invalidate's purge.
	storeMu sync.RWMutex

	hits   metric.Int64Counter
	misses metric.Int64Counter
}

// NewMemoizer creates a memoizer over store. Entries expire after ttl.
func NewMemoizer(store Store, ttl time.Duration) *Memoizer {
	if store == nil {
		panic("cache: store is nil")
	}

	meter := telemetry.Meter("fleet-analytics/cache")
	hits, _ := meter.Int64Counter("fleet.cache.hits",
		metric.WithDescription("Analytics results served from cache"),
	)
	misses, _ := meter.Int64Counter("fleet.cache.misses",
		metric.WithDescription("Analytics results computed on a cache miss"),
	)

	return &Memoizer{
		store:  store,
		ttl:    ttl,
		hits:   hits,
		misses: misses,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Key builds the cache key for op, its parameters and the bucket start.
func Key(op string, params any, bucket time.Time) (string, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode cache key for %s: %w", op, err)
	}
	return fmt.Sprintf("%s:%s@%d", op, encoded, bucket.Unix()), nil
}

func (m *Memoizer) bucket() time.Time {
	now := m.nowFn()
	if m.ttl <= 0 {
		return time.Time{}
	}
	return coreagg.BucketFor(now, m.ttl)
}

// Do returns the cached result for (op, params) or computes it with fn and
// stores it. A nil memoizer always calls fn. Cache backend failures are logged
// and never fail the request.
func Do[T any](ctx context.Context, m *Memoizer, op string, params any, fn func(ctx context.Context) (T, error)) (T, error) {
	if m == nil {
		return fn(ctx)
	}

	key, err := Key(op, params, m.bucket())
	if err != nil {
		return fn(ctx)
	}
	attrs := metric.WithAttributes(attribute.String("op", op))

	if cached, ok := lookup[T](ctx, m, key); ok {
		m.hits.Add(ctx, 1, attrs)
		return cached, nil
	}

	// Requests arriving after an Invalidate never join a flight started before it.
	gen := m.generation.Load()
	flightKey := fmt.Sprintf("%s#%d", key, gen)

	result, err, _ := m.group.Do(flightKey, func() (interface{}, error) {
		// Shared by every waiter, so it must not die with the first caller.
		flightCtx := context.WithoutCancel(ctx)

		// Double-check cache after acquiring singleflight lock
		if cached, ok := lookup[T](flightCtx, m, key); ok {
			return cached, nil
		}

		m.misses.Add(flightCtx, 1, attrs)
		value, err := fn(flightCtx)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			slog.Warn("[Cache] Failed to encode result", "op", op, "error", err)
			return value, nil
		}
		m.storeResult(flightCtx, op, key, gen, encoded)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

func lookup[T any](ctx context.Context, m *Memoizer, key string) (T, bool) {
	var value T

	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		slog.Warn("[Cache] Lookup failed, computing instead", "key", key, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("[Cache] Dropping undecodable entry", "key", key, "error", err)
		return value, false
	}
	return value, true
}

// storeResult writes encoded unless the cache was invalidated after the
// computation started.
func (m *Memoizer) storeResult(ctx context.Context, op, key string, gen uint64, encoded []byte) {
	m.storeMu.RLock()
	defer m.storeMu.RUnlock()

	if m.generation.Load() != gen {
		slog.Debug("[Cache] Dropping result computed before invalidation", "op", op)
		return
	}
	if err := m.store.Set(ctx, key, encoded, m.ttl); err != nil {
		slog.Warn("[Cache] Failed to store result", "op", op, "error", err)
	}
}

// Invalidate drops every cached result. Called after new records are ingested.
// Computations still in flight keep their result out of the cache.
func (m *Memoizer) Invalidate(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	m.generation.Add(1)
	if err := m.store.Purge(ctx); err != nil {
		return fmt.Errorf("invalidate analytics cache: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (m *Memoizer) Close() error {
	if m == nil {
		return nil
	}
	return m.store.Close()
}

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Vehicle string          `json:"vehicle"`
	Value   decimal.Decimal `json:"value"`
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}
func (brokenStore) Purge(context.Context) error { return errors.New("backend down") }
func (brokenStore) Close() error                { return nil }

func TestDo_CachesByOperationAndParams(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	var calls atomic.Int32
	compute := func(v string) func(context.Context) (report, error) {
		return func(context.Context) (report, error) {
			calls.Add(1)
			return report{Vehicle: v, Value: decimal.RequireFromString("20.5")}, nil
		}
	}

	first, err := Do(ctx, m, "efficiency", map[string]string{"vehicle": "V1"}, compute("V1"))
	require.NoError(t, err)
	second, err := Do(ctx, m, "efficiency", map[string]string{"vehicle": "V1"}, compute("V1"))
	require.NoError(t, err)

	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, first.Vehicle, second.Vehicle)
	require.True(t, first.Value.Equal(second.Value))

	_, err = Do(ctx, m, "efficiency", map[string]string{"vehicle": "V2"}, compute("V2"))
	require.NoError(t, err)
	_, err = Do(ctx, m, "fraud", map[string]string{"vehicle": "V1"}, compute("V1"))
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestDo_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	var calls atomic.Int32
	fail := func(context.Context) (report, error) {
		calls.Add(1)
		return report{}, errors.New("snapshot unavailable")
	}

	_, err := Do(ctx, m, "summary", nil, fail)
	require.Error(t, err)
	_, err = Do(ctx, m, "summary", nil, fail)
	require.Error(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestDo_DedupesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	slow := func(context.Context) (report, error) {
		calls.Add(1)
		<-release
		return report{Vehicle: "V1"}, nil
	}

	const numGoroutines = 20
	var wg sync.WaitGroup
	var started sync.WaitGroup
	wg.Add(numGoroutines)
	started.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			started.Done()
			got, err := Do(ctx, m, "fraud", nil, slow)
			assert.NoError(t, err)
			assert.Equal(t, "V1", got.Vehicle)
		}()
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}

func TestDo_BackendFailureFallsBackToCompute(t *testing.T) {
	m := NewMemoizer(brokenStore{}, time.Minute)

	got, err := Do(context.Background(), m, "actions", nil, func(context.Context) (report, error) {
		return report{Vehicle: "V9"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "V9", got.Vehicle)

	require.Error(t, m.Invalidate(context.Background()))
}

func TestDo_NilMemoizerAlwaysComputes(t *testing.T) {
	var m *Memoizer
	var calls int
	for i := 0; i < 3; i++ {
		_, err := Do(context.Background(), m, "summary", nil, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 3, calls)
	require.NoError(t, m.Invalidate(context.Background()))
}

func TestInvalidate_ForcesRecompute(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	var calls int
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := Do(ctx, m, "summary", nil, compute)
	require.Equal(t, 1, v)
	v, _ = Do(ctx, m, "summary", nil, compute)
	require.Equal(t, 1, v)

	require.NoError(t, m.Invalidate(ctx))
	v, _ = Do(ctx, m, "summary", nil, compute)
	require.Equal(t, 2, v)
}

func TestDo_ResultComputedAcrossInvalidateIsNotStored(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)
	m.nowFn = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC) }

	var calls atomic.Int32
	loaded := make(chan struct{})
	release := make(chan struct{})
	compute := func(context.Context) (int32, error) {
		n := calls.Add(1)
		if n == 1 {
			// First computation read its data before the ingest below.
			close(loaded)
			<-release
		}
		return n, nil
	}

	stale := make(chan int32, 1)
	go func() {
		v, err := Do(ctx, m, "fraud", nil, compute)
		assert.NoError(t, err)
		stale <- v
	}()

	<-loaded
	require.NoError(t, m.Invalidate(ctx))

	// A request after the invalidation must not wait on the old computation.
	fresh := make(chan int32, 1)
	go func() {
		v, err := Do(ctx, m, "fraud", nil, compute)
		assert.NoError(t, err)
		fresh <- v
	}()
	select {
	case v := <-fresh:
		require.Equal(t, int32(2), v)
	case <-time.After(2 * time.Second):
		t.Fatal("request after invalidate joined the stale computation")
	}

	close(release)
	require.Equal(t, int32(1), <-stale)

	v, err := Do(ctx, m, "fraud", nil, compute)
	require.NoError(t, err)
	require.Equal(t, int32(2), v)
	require.Equal(t, int32(2), calls.Load())
}

func TestDo_CancelledCallerDoesNotFailTheComputation(t *testing.T) {
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Do(ctx, m, "summary", nil, func(ctx context.Context) (report, error) {
		if err := ctx.Err(); err != nil {
			return report{}, err
		}
		return report{Vehicle: "V1"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "V1", got.Vehicle)
}

func TestDo_RecomputesInNextBucket(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer(NewMemoryStore(64), time.Minute)

	now := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	m.nowFn = func() time.Time { return now }

	var calls int
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := Do(ctx, m, "cost-trends", nil, compute)
	require.Equal(t, 1, v)

	now = now.Add(50 * time.Second)
	v, _ = Do(ctx, m, "cost-trends", nil, compute)
	require.Equal(t, 1, v)

	now = now.Add(10 * time.Second)
	v, _ = Do(ctx, m, "cost-trends", nil, compute)
	require.Equal(t, 2, v)
}

func TestKey(t *testing.T) {
	bucket := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	key, err := Key("fraud", map[string]string{"agency": "North"}, bucket)
	require.NoError(t, err)
	require.Equal(t, `fraud:{"agency":"North"}@1772359200`, key)

	_, err = Key("fraud", map[string]any{"bad": make(chan int)}, bucket)
	require.Error(t, err)
}

func TestNewMemoizer_PanicsOnNilStore(t *testing.T) {
	require.Panics(t, func() { NewMemoizer(nil, time.Minute) })
}

package analytics

import (
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
)

// Pool runs fn(i) for every i in [0, n). Implementations may run the calls
// concurrently but must return only after all of them finish.
type Pool interface {
	Map(n int, fn func(i int))
}

type sequentialPool struct{}

func (sequentialPool) Map(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Engine evaluates every calculator against a snapshot with one set of Params.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	params Params
	pool   Pool
}

// NewEngine creates an engine. A nil pool evaluates vehicles sequentially.
func NewEngine(params Params, pool Pool) *Engine {
	if pool == nil {
		pool = sequentialPool{}
	}
	return &Engine{
		params: params.normalized(),
		pool:   pool,
	}
}

// Params returns the effective constants after defaults were applied.
func (e *Engine) Params() Params {
	return e.params
}

// mapVehicles evaluates fn once per vehicle group through the pool and returns
// the accepted results ordered by VehicleID. Each call sees only its own group.
func mapVehicles[T, R any](pool Pool, groups map[string][]T, fn func(vehicleID string, events []T) (R, bool)) []R {
	keys := coreagg.SortedKeys(groups)
	results := make([]R, len(keys))
	accepted := make([]bool, len(keys))

	pool.Map(len(keys), func(i int) {
		results[i], accepted[i] = fn(keys[i], groups[keys[i]])
	})

	out := make([]R, 0, len(keys))
	for i := range keys {
		if accepted[i] {
			out = append(out, results[i])
		}
	}
	return out
}

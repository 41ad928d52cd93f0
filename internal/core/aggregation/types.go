package aggregation

import "time"

// Reducers available to the per-vehicle folds.
const (
	OpCount = "count"
	OpSum   = "sum"
	OpMin   = "min"
	OpMax   = "max"
)

// TimeFunc extracts the timeline position of an event.
type TimeFunc[E any] func(E) time.Time

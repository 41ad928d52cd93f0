package aggregation

import (
	"github.com/shopspring/decimal"
)

// Aggregator defines the reduce semantics of a reducer over decimal values.
type Aggregator interface {
	// Initial returns the aggregate after the first value.
	// count -> 1; sum/min/max -> the value itself.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming value into an existing aggregate.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Operators is the registry of supported reducers.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
	OpMin:   minAgg{},
	OpMax:   maxAgg{},
}

// Fold reduces value(e) over events with the named reducer.
// ok is false when events is empty or op is unknown; the caller decides
// what an empty fold means (a sentinel, or absence from output).
func Fold[E any](op string, events []E, value func(E) decimal.Decimal) (result decimal.Decimal, ok bool) {
	agg, known := Operators[op]
	if !known || len(events) == 0 {
		return decimal.Zero, false
	}

	result = agg.Initial(value(events[0]))
	for _, e := range events[1:] {
		result = agg.Apply(result, value(e))
	}
	return result, true
}

// Sum is Fold(OpSum) with zero for an empty input.
func Sum[E any](events []E, value func(E) decimal.Decimal) decimal.Decimal {
	total, _ := Fold(OpSum, events, value)
	return total
}

type countAgg struct{}

func (countAgg) Initial(_ decimal.Decimal) decimal.Decimal    { return decimal.NewFromInt(1) }
func (countAgg) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

type minAgg struct{}

func (minAgg) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (minAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.LessThan(cur) {
		return inc
	}
	return cur
}

type maxAgg struct{}

func (maxAgg) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (maxAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.GreaterThan(cur) {
		return inc
	}
	return cur
}

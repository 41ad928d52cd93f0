package analytics

import (
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// Direction reads a cost delta with inverse semantics: more spend is worse.
type Direction string

const (
	DirectionWorse  Direction = "worse"
	DirectionBetter Direction = "better"
	DirectionFlat   Direction = "flat"
)

// Cost streams compared by the trend calculator.
const (
	StreamFuel             = "fuel"
	StreamTrafficPenalties = "traffic_penalties"
)

// CostTrend compares total cost in [anchor-w, anchor) against [anchor-2w, anchor-w),
// where anchor is the latest timestamp across the whole stream.
type CostTrend struct {
	Stream  string `json:"stream"`
	HasData bool   `json:"has_data"`

	Anchor       time.Time `json:"anchor"`
	CurrentStart time.Time `json:"current_start"`
	PriorStart   time.Time `json:"prior_start"`

	CurrentTotal decimal.Decimal `json:"current_total"`
	PriorTotal   decimal.Decimal `json:"prior_total"`
	Delta        decimal.Decimal `json:"delta"`
	Direction    Direction       `json:"direction"`
}

// CostTrends holds the trend for every cost-bearing stream.
type CostTrends struct {
	Fuel             CostTrend `json:"fuel"`
	TrafficPenalties CostTrend `json:"traffic_penalties"`
}

// ComputeCostTrend builds the trend for one stream. An empty stream yields a
// zero trend with HasData=false.
func ComputeCostTrend[E any](stream string, events []E, at coreagg.TimeFunc[E], cost func(E) decimal.Decimal, window time.Duration) CostTrend {
	trend := CostTrend{
		Stream:       stream,
		CurrentTotal: decimal.Zero,
		PriorTotal:   decimal.Zero,
		Delta:        decimal.Zero,
		Direction:    DirectionFlat,
	}

	anchor, ok := coreagg.Anchor(events, at)
	if !ok {
		return trend
	}

	currentStart := anchor.Add(-window)
	priorStart := currentStart.Add(-window)

	trend.HasData = true
	trend.Anchor = anchor
	trend.CurrentStart = currentStart
	trend.PriorStart = priorStart
	trend.CurrentTotal = coreagg.Sum(coreagg.Range(events, at, currentStart, anchor), cost)
	trend.PriorTotal = coreagg.Sum(coreagg.Range(events, at, priorStart, currentStart), cost)
	trend.Delta = trend.CurrentTotal.Sub(trend.PriorTotal)

	switch trend.Delta.Sign() {
	case 1:
		trend.Direction = DirectionWorse
	case -1:
		trend.Direction = DirectionBetter
	}
	return trend
}

// CostTrends compares fuel and traffic penalty spend across the two latest windows.
func (e *Engine) CostTrends(snap *v1.Snapshot, filter Filter) CostTrends {
	ix := newFleetIndex(snap)
	fuel := filterEvents(filter, ix, snap.Fuel, fuelVehicle, fuelTime)
	penalties := filterEvents(filter, ix, snap.Penalties, penaltyVehicle, penaltyTime)

	return CostTrends{
		Fuel: ComputeCostTrend(StreamFuel, fuel, fuelTime,
			func(e v1.FuelEvent) decimal.Decimal { return e.Cost }, e.params.CostTrendWindow),
		TrafficPenalties: ComputeCostTrend(StreamTrafficPenalties, penalties, penaltyTime,
			func(p v1.TrafficPenalty) decimal.Decimal { return p.Cost }, e.params.CostTrendWindow),
	}
}

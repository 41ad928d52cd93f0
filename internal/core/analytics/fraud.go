package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// FraudRow describes the implied daily distance for a vehicle's latest fills.
type FraudRow struct {
	VehicleID string `json:"vehicle_id"`
	VehicleAttributes

	FirstFill time.Time `json:"first_fill"`
	LastFill  time.Time `json:"last_fill"`
	Fills     int       `json:"fills"`
	// DaysSpan counts whole days between FirstFill and LastFill.
	DaysSpan int64 `json:"days_span"`

	FuelConsumed     decimal.Decimal `json:"fuel_consumed"`
	Baseline         decimal.Decimal `json:"baseline_efficiency"`
	ExpectedDistance decimal.Decimal `json:"expected_distance_per_day"`
}

// VehicleFraudCheck computes ExpectedDistance over the vehicle's sampleSize
// most recent fills. ok is false when the check is not applicable: no events,
// or a span shorter than one whole day.
func VehicleFraudCheck(vehicleID string, events []v1.FuelEvent, sampleSize int, baseline decimal.Decimal) (FraudRow, bool) {
	sample := coreagg.LatestN(events, fuelTime, sampleSize)
	if len(sample) == 0 {
		return FraudRow{}, false
	}

	first, last := sample[0], sample[len(sample)-1]
	days := int64(last.Timestamp.Sub(first.Timestamp) / day)
	if days <= 0 {
		return FraudRow{}, false
	}

	consumed := coreagg.Sum(sample, func(e v1.FuelEvent) decimal.Decimal { return e.FuelAmount }).
		Sub(last.FuelAmount)

	expected, ok := coreagg.SafeDiv(baseline.Mul(consumed), decimal.NewFromInt(days))
	if !ok {
		return FraudRow{}, false
	}

	return FraudRow{
		VehicleID:        vehicleID,
		FirstFill:        first.Timestamp,
		LastFill:         last.Timestamp,
		Fills:            len(sample),
		DaysSpan:         days,
		FuelConsumed:     consumed,
		Baseline:         baseline,
		ExpectedDistance: expected,
	}, true
}

// Fraud returns only the vehicles whose expected daily distance exceeds the
// threshold, sorted by ExpectedDistance ascending and then VehicleID.
func (e *Engine) Fraud(snap *v1.Snapshot, filter Filter) []FraudRow {
	ix := newFleetIndex(snap)
	events := filterEvents(filter, ix, snap.Fuel, fuelVehicle, fuelTime)
	groups := coreagg.GroupBy(events, fuelVehicle)
	p := e.params

	flagged := mapVehicles(e.pool, groups, func(id string, evts []v1.FuelEvent) (FraudRow, bool) {
		row, ok := VehicleFraudCheck(id, evts, p.FraudSampleSize, p.FraudBaseline)
		if !ok || !row.ExpectedDistance.GreaterThan(p.FraudThreshold) {
			return FraudRow{}, false
		}
		row.VehicleAttributes = ix.attributes(id)
		return row, true
	})

	sort.SliceStable(flagged, func(i, j int) bool {
		if !flagged[i].ExpectedDistance.Equal(flagged[j].ExpectedDistance) {
			return flagged[i].ExpectedDistance.LessThan(flagged[j].ExpectedDistance)
		}
		return flagged[i].VehicleID < flagged[j].VehicleID
	})
	return flagged
}

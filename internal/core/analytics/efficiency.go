package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// EfficiencyRow is one vehicle's distance per fuel unit over a window.
type EfficiencyRow struct {
	VehicleID string `json:"vehicle_id"`
	VehicleAttributes

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Events      int       `json:"events"`

	TotalDistance     decimal.Decimal `json:"total_distance"`
	TotalFuelConsumed decimal.Decimal `json:"total_fuel_consumed"`
	// Efficiency is zero when no fuel was consumed inside the window.
	Efficiency decimal.Decimal `json:"efficiency"`
	LastCost   decimal.Decimal `json:"last_cost"`

	// OdometerRegressions counts readings lower than the previous one in time order.
	OdometerRegressions int `json:"odometer_regressions,omitempty"`
}

// GroupEfficiency is the mean efficiency of the fleet rows sharing a category.
type GroupEfficiency struct {
	VehicleType *string         `json:"vehicle_type"`
	Agency      *string         `json:"agency,omitempty"`
	Vehicles    int             `json:"vehicles"`
	Mean        decimal.Decimal `json:"mean_efficiency"`
}

// EfficiencyReport is the fleet-level view: rows that passed the plausibility
// bounds for the current and prior windows, their means and the delta.
type EfficiencyReport struct {
	Lookback    string          `json:"lookback"`
	Current     []EfficiencyRow `json:"current"`
	Prior       []EfficiencyRow `json:"prior"`
	CurrentMean decimal.Decimal `json:"current_mean"`
	PriorMean   decimal.Decimal `json:"prior_mean"`
	// Delta is CurrentMean - PriorMean.
	Delta decimal.Decimal `json:"delta"`

	ByVehicleType   []GroupEfficiency `json:"by_vehicle_type"`
	ByAgencyAndType []GroupEfficiency `json:"by_agency_and_type"`

	// Excluded counts computed rows dropped by the bounds (current window).
	Excluded int `json:"excluded"`
}

// VehicleEfficiency computes the efficiency over [anchor-lookback, anchor],
// anchored at the vehicle's latest event. ok is false when events is empty.
func VehicleEfficiency(vehicleID string, events []v1.FuelEvent, lookback time.Duration) (EfficiencyRow, bool) {
	anchor, ok := coreagg.Anchor(events, fuelTime)
	if !ok {
		return EfficiencyRow{}, false
	}
	window := coreagg.Window(events, fuelTime, anchor, lookback)
	return windowEfficiency(vehicleID, window, anchor.Add(-lookback), anchor)
}

// VehiclePriorEfficiency computes the efficiency over the window of the same
// length immediately preceding the current one. ok is false when that window is empty.
func VehiclePriorEfficiency(vehicleID string, events []v1.FuelEvent, lookback time.Duration) (EfficiencyRow, bool) {
	anchor, ok := coreagg.Anchor(events, fuelTime)
	if !ok {
		return EfficiencyRow{}, false
	}
	window := coreagg.PriorWindow(events, fuelTime, anchor, lookback)
	end := anchor.Add(-lookback)
	return windowEfficiency(vehicleID, window, end.Add(-lookback), end)
}

func windowEfficiency(vehicleID string, window []v1.FuelEvent, start, end time.Time) (EfficiencyRow, bool) {
	if len(window) == 0 {
		return EfficiencyRow{}, false
	}

	odometer := func(e v1.FuelEvent) decimal.Decimal { return e.OdometerReading }
	fuel := func(e v1.FuelEvent) decimal.Decimal { return e.FuelAmount }

	maxOdo, _ := coreagg.Fold(coreagg.OpMax, window, odometer)
	minOdo, _ := coreagg.Fold(coreagg.OpMin, window, odometer)
	latest, _ := coreagg.MostRecent(window, fuelTime)

	// The most recent fill is assumed not yet burned.
	consumed := coreagg.Sum(window, fuel).Sub(latest.FuelAmount)
	distance := maxOdo.Sub(minOdo)

	efficiency := decimal.Zero
	if consumed.IsPositive() {
		efficiency, _ = coreagg.SafeDiv(distance, consumed)
	}

	return EfficiencyRow{
		VehicleID:           vehicleID,
		WindowStart:         start,
		WindowEnd:           end,
		Events:              len(window),
		TotalDistance:       distance,
		TotalFuelConsumed:   consumed,
		Efficiency:          efficiency,
		LastCost:            latest.Cost,
		OdometerRegressions: countOdometerRegressions(window),
	}, true
}

func countOdometerRegressions(window []v1.FuelEvent) int {
	sorted := coreagg.SortByTime(window, fuelTime)
	regressions := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].OdometerReading.LessThan(sorted[i-1].OdometerReading) {
			regressions++
		}
	}
	return regressions
}

// withinBounds reports lower < efficiency < upper.
func (p Params) withinBounds(efficiency decimal.Decimal) bool {
	return efficiency.GreaterThan(p.EfficiencyLowerBound) && efficiency.LessThan(p.EfficiencyUpperBound)
}

// Efficiency computes the fleet efficiency report over the filtered fuel events.
func (e *Engine) Efficiency(snap *v1.Snapshot, filter Filter) EfficiencyReport {
	ix := newFleetIndex(snap)
	events := filterEvents(filter, ix, snap.Fuel, fuelVehicle, fuelTime)
	groups := coreagg.GroupBy(events, fuelVehicle)
	lookback := e.params.Lookback

	current := mapVehicles(e.pool, groups, func(id string, evts []v1.FuelEvent) (EfficiencyRow, bool) {
		row, ok := VehicleEfficiency(id, evts, lookback)
		row.VehicleAttributes = ix.attributes(id)
		return row, ok
	})
	prior := mapVehicles(e.pool, groups, func(id string, evts []v1.FuelEvent) (EfficiencyRow, bool) {
		row, ok := VehiclePriorEfficiency(id, evts, lookback)
		row.VehicleAttributes = ix.attributes(id)
		return row, ok
	})

	fleetCurrent := e.boundedRows(current)
	fleetPrior := e.boundedRows(prior)

	report := EfficiencyReport{
		Lookback:        coreagg.FormatWindowSize(lookback),
		Current:         fleetCurrent,
		Prior:           fleetPrior,
		CurrentMean:     meanEfficiency(fleetCurrent),
		PriorMean:       meanEfficiency(fleetPrior),
		ByVehicleType:   groupEfficiency(fleetCurrent, false),
		ByAgencyAndType: groupEfficiency(fleetCurrent, true),
		Excluded:        len(current) - len(fleetCurrent),
	}
	report.Delta = report.CurrentMean.Sub(report.PriorMean)
	return report
}

func (e *Engine) boundedRows(rows []EfficiencyRow) []EfficiencyRow {
	out := make([]EfficiencyRow, 0, len(rows))
	for _, row := range rows {
		if e.params.withinBounds(row.Efficiency) {
			out = append(out, row)
		}
	}
	return out
}

func meanEfficiency(rows []EfficiencyRow) decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Efficiency)
	}
	return coreagg.Mean(values)
}

type efficiencyGroupKey struct {
	vehicleType string
	agency      string
}

// groupEfficiency averages rows by vehicle type, or by (agency, type).
// Groups are sorted by mean descending, then by key.
func groupEfficiency(rows []EfficiencyRow, byAgency bool) []GroupEfficiency {
	keyOf := func(r EfficiencyRow) efficiencyGroupKey {
		k := efficiencyGroupKey{vehicleType: deref(r.VehicleType)}
		if byAgency {
			k.agency = deref(r.Agency)
		}
		return k
	}

	groups := coreagg.GroupBy(rows, keyOf)
	out := make([]GroupEfficiency, 0, len(groups))
	for _, members := range groups {
		g := GroupEfficiency{
			VehicleType: members[0].VehicleType,
			Vehicles:    len(members),
			Mean:        meanEfficiency(members),
		}
		if byAgency {
			g.Agency = members[0].Agency
		}
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Mean.Equal(out[j].Mean) {
			return out[i].Mean.GreaterThan(out[j].Mean)
		}
		if a, b := deref(out[i].Agency), deref(out[j].Agency); a != b {
			return a < b
		}
		return deref(out[i].VehicleType) < deref(out[j].VehicleType)
	})
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

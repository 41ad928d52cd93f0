package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// VehicleCount is the number of vehicles in an agency or (agency, type) bucket.
// VehicleType is nil when counting by agency alone.
type VehicleCount struct {
	Agency      *string `json:"agency,omitempty"`
	VehicleType *string `json:"vehicle_type,omitempty"`
	Vehicles    int     `json:"vehicles"`
}

// FleetSummary holds the headline KPIs of the fleet.
type FleetSummary struct {
	AsOf time.Time `json:"as_of"`

	TotalVehicles          int             `json:"total_vehicles"`
	ExpiredLicenses        int             `json:"expired_licenses"`
	ExpiredLicensesPercent decimal.Decimal `json:"expired_licenses_percent"`
	InactiveVehicles       int             `json:"inactive_vehicles"`
	UnderMaintenance       int             `json:"under_maintenance"`

	MeanEfficiency  decimal.Decimal `json:"mean_efficiency"`
	EfficiencyDelta decimal.Decimal `json:"efficiency_delta"`
	CostTrends      CostTrends      `json:"cost_trends"`

	VehiclesByAgency        []VehicleCount `json:"vehicles_by_agency"`
	VehiclesByAgencyAndType []VehicleCount `json:"vehicles_by_agency_and_type"`
}

var hundred = decimal.NewFromInt(100)

// Summary computes the fleet KPIs as of today.
func (e *Engine) Summary(snap *v1.Snapshot, today time.Time) FleetSummary {
	ix := newFleetIndex(snap)
	ids := ix.vehicleIDs()

	summary := FleetSummary{
		AsOf:          today,
		TotalVehicles: len(ids),
	}

	todayDate := dateOf(today)
	for _, id := range ids {
		if lic, ok := ix.licenses[id]; ok && dateOf(lic.EndDate).Before(todayDate) {
			summary.ExpiredLicenses++
		}
		if alloc, ok := ix.allocations[id]; ok {
			switch alloc.Condition {
			case v1.ConditionInactive:
				summary.InactiveVehicles++
			case v1.ConditionUnderMaintenance:
				summary.UnderMaintenance++
			}
		}
	}

	summary.ExpiredLicensesPercent = decimal.Zero
	if pct, ok := coreagg.SafeDiv(decimal.NewFromInt(int64(summary.ExpiredLicenses)).Mul(hundred),
		decimal.NewFromInt(int64(summary.TotalVehicles))); ok {
		summary.ExpiredLicensesPercent = pct.Round(2)
	}

	efficiency := e.Efficiency(snap, Filter{})
	summary.MeanEfficiency = efficiency.CurrentMean
	summary.EfficiencyDelta = efficiency.Delta
	summary.CostTrends = e.CostTrends(snap, Filter{})

	summary.VehiclesByAgency = countVehicles(ix, ids, false)
	summary.VehiclesByAgencyAndType = countVehicles(ix, ids, true)
	return summary
}

func countVehicles(ix *fleetIndex, ids []string, withType bool) []VehicleCount {
	type bucket struct{ agency, vehicleType string }

	counts := make(map[bucket]*VehicleCount)
	for _, id := range ids {
		attrs := ix.attributes(id)
		b := bucket{agency: deref(attrs.Agency)}
		if withType {
			b.vehicleType = deref(attrs.VehicleType)
		}
		c, ok := counts[b]
		if !ok {
			c = &VehicleCount{Agency: attrs.Agency}
			if withType {
				c.VehicleType = attrs.VehicleType
			}
			counts[b] = c
		}
		c.Vehicles++
	}

	out := make([]VehicleCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vehicles != out[j].Vehicles {
			return out[i].Vehicles > out[j].Vehicles
		}
		if a, b := deref(out[i].Agency), deref(out[j].Agency); a != b {
			return a < b
		}
		return deref(out[i].VehicleType) < deref(out[j].VehicleType)
	})
	return out
}

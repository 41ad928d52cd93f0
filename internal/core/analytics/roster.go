package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// RosterRow is the basic record of one registered vehicle.
type RosterRow struct {
	VehicleID string `json:"vehicle_id"`
	ChassisNo string `json:"chassis_no,omitempty"`
	VehicleAttributes

	Branch         *string          `json:"branch"`
	Condition      *v1.Condition    `json:"condition"`
	LastFuelAmount *decimal.Decimal `json:"last_fuel_amount"`
	LastFuelDate   *time.Time       `json:"last_fuel_date"`
	LicenseEndDate *time.Time       `json:"license_end_date"`
	Ownership      *string          `json:"ownership"`
}

// CategoryCount is the number of vehicles in one category.
type CategoryCount struct {
	Key      string `json:"key"`
	Vehicles int    `json:"vehicles"`
}

type Roster struct {
	Rows          []RosterRow     `json:"rows"`
	ByVehicleType []CategoryCount `json:"by_vehicle_type"`
	ByOwnership   []CategoryCount `json:"by_ownership"`
}

// Roster lists every registered vehicle that passes the filter, sorted by
// VehicleID. The last fill-up honours the filter's time range; vehicles with
// no ownership record are left out of ByOwnership.
func (e *Engine) Roster(snap *v1.Snapshot, filter Filter) Roster {
	ix := newFleetIndex(snap)
	fuelByVehicle := coreagg.GroupBy(
		filterEvents(filter, ix, snap.Fuel, fuelVehicle, fuelTime),
		fuelVehicle,
	)

	var rows []RosterRow
	byType := make(map[string]int)
	byOwnership := make(map[string]int)
	for _, id := range coreagg.SortedKeys(ix.vehicles) {
		if !filter.matchesVehicle(ix, id) {
			continue
		}

		row := RosterRow{
			VehicleID:         id,
			ChassisNo:         ix.vehicles[id].ChassisNo,
			VehicleAttributes: ix.attributes(id),
		}
		if alloc, ok := ix.allocations[id]; ok {
			cond := alloc.Condition
			row.Condition = &cond
			if alloc.Branch != "" {
				branch := alloc.Branch
				row.Branch = &branch
			}
		}
		if last, ok := coreagg.MostRecent(fuelByVehicle[id], fuelTime); ok {
			amount, at := last.FuelAmount, last.Timestamp
			row.LastFuelAmount = &amount
			row.LastFuelDate = &at
		}
		if lic, ok := ix.licenses[id]; ok {
			end := lic.EndDate
			row.LicenseEndDate = &end
		}
		if own, ok := ix.ownerships[id]; ok && own.Ownership != "" {
			label := own.Ownership
			row.Ownership = &label
			byOwnership[label]++
		}
		byType[deref(row.VehicleType)]++
		rows = append(rows, row)
	}

	return Roster{
		Rows:          rows,
		ByVehicleType: sortedCounts(byType),
		ByOwnership:   sortedCounts(byOwnership),
	}
}

// sortedCounts orders counts descending, then key.
func sortedCounts(m map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for k, n := range m {
		out = append(out, CategoryCount{Key: k, Vehicles: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vehicles != out[j].Vehicles {
			return out[i].Vehicles > out[j].Vehicles
		}
		return out[i].Key < out[j].Key
	})
	return out
}

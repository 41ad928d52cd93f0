package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// PenaltyRow is a traffic penalty joined with the vehicle's current allocation.
type PenaltyRow struct {
	PenaltyID int64  `json:"penalty_id"`
	VehicleID string `json:"vehicle_id"`
	VehicleAttributes

	Condition   *v1.Condition   `json:"condition"`
	Timestamp   time.Time       `json:"timestamp"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
}

// PenaltyTotal is the cost and violation count of one penalty description.
type PenaltyTotal struct {
	Description string          `json:"description"`
	Violations  int64           `json:"violations"`
	Total       decimal.Decimal `json:"total"`
}

type PenaltyReport struct {
	Rows          []PenaltyRow    `json:"rows"`
	Total         decimal.Decimal `json:"total"`
	ByDescription []PenaltyTotal  `json:"by_description"`
	ByAgency      []ExpenseTotal  `json:"by_agency"`
}

// Penalties lists the penalties that pass the filter, sorted by timestamp then
// PenaltyID, with totals per description (highest cost first) and per agency.
func (e *Engine) Penalties(snap *v1.Snapshot, filter Filter) PenaltyReport {
	ix := newFleetIndex(snap)
	penalties := filterEvents(filter, ix, snap.Penalties, penaltyVehicle, penaltyTime)

	rows := make([]PenaltyRow, 0, len(penalties))
	for _, p := range penalties {
		row := PenaltyRow{
			PenaltyID:         p.PenaltyID,
			VehicleID:         p.VehicleID,
			VehicleAttributes: ix.attributes(p.VehicleID),
			Timestamp:         p.Timestamp,
			Location:          p.Location,
			Description:       p.Description,
			Cost:              p.Cost,
		}
		if alloc, ok := ix.allocations[p.VehicleID]; ok {
			cond := alloc.Condition
			row.Condition = &cond
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		}
		return rows[i].PenaltyID < rows[j].PenaltyID
	})

	cost := func(r PenaltyRow) decimal.Decimal { return r.Cost }

	byDescription := make([]PenaltyTotal, 0)
	for desc, group := range coreagg.GroupBy(rows, func(r PenaltyRow) string { return r.Description }) {
		count, _ := coreagg.Fold(coreagg.OpCount, group, cost)
		byDescription = append(byDescription, PenaltyTotal{
			Description: desc,
			Violations:  count.IntPart(),
			Total:       coreagg.Sum(group, cost),
		})
	}
	sort.Slice(byDescription, func(i, j int) bool {
		if !byDescription[i].Total.Equal(byDescription[j].Total) {
			return byDescription[i].Total.GreaterThan(byDescription[j].Total)
		}
		return byDescription[i].Description < byDescription[j].Description
	})

	byAgency := make(map[string]decimal.Decimal)
	for _, row := range rows {
		byAgency[deref(row.Agency)] = byAgency[deref(row.Agency)].Add(row.Cost)
	}

	return PenaltyReport{
		Rows:          rows,
		Total:         coreagg.Sum(rows, cost),
		ByDescription: byDescription,
		ByAgency:      sortedTotals(byAgency),
	}
}

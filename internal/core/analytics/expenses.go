package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/shopspring/decimal"
)

type ExpenseType string

const (
	ExpenseFuel        ExpenseType = "Fuel"
	ExpenseMaintenance ExpenseType = "Maintenance"
)

// ExpenseRow is one cost line from either the fuel or maintenance stream.
type ExpenseRow struct {
	ID        int64       `json:"id"`
	Type      ExpenseType `json:"expense_type"`
	VehicleID string      `json:"vehicle_id"`
	VehicleAttributes

	Timestamp time.Time       `json:"timestamp"`
	Cost      decimal.Decimal `json:"cost"`
	// Detail is the fuel type or maintenance type.
	Detail string `json:"detail,omitempty"`
}

// ExpenseTotal is the summed cost of a category.
type ExpenseTotal struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseLedger is the union of fuel and maintenance costs in a range.
type ExpenseLedger struct {
	Rows     []ExpenseRow    `json:"rows"`
	Total    decimal.Decimal `json:"total"`
	ByType   []ExpenseTotal  `json:"by_type"`
	ByAgency []ExpenseTotal  `json:"by_agency"`
}

// Expenses merges fuel and maintenance costs that pass the filter.
// Rows are sorted by timestamp, then expense type, then ID.
func (e *Engine) Expenses(snap *v1.Snapshot, filter Filter) ExpenseLedger {
	ix := newFleetIndex(snap)

	var rows []ExpenseRow
	for _, f := range filterEvents(filter, ix, snap.Fuel, fuelVehicle, fuelTime) {
		rows = append(rows, ExpenseRow{
			ID:                f.FuelID,
			Type:              ExpenseFuel,
			VehicleID:         f.VehicleID,
			VehicleAttributes: ix.attributes(f.VehicleID),
			Timestamp:         f.Timestamp,
			Cost:              f.Cost,
			Detail:            f.FuelType,
		})
	}
	for _, m := range filterEvents(filter, ix, snap.Maintenance, maintenanceVehicle, maintenanceTime) {
		rows = append(rows, ExpenseRow{
			ID:                m.MaintenanceID,
			Type:              ExpenseMaintenance,
			VehicleID:         m.VehicleID,
			VehicleAttributes: ix.attributes(m.VehicleID),
			Timestamp:         m.Timestamp,
			Cost:              m.Cost,
			Detail:            m.MaintenanceType,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		}
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].ID < rows[j].ID
	})

	total := decimal.Zero
	byType := make(map[string]decimal.Decimal)
	byAgency := make(map[string]decimal.Decimal)
	for _, row := range rows {
		total = total.Add(row.Cost)
		byType[string(row.Type)] = byType[string(row.Type)].Add(row.Cost)
		byAgency[deref(row.Agency)] = byAgency[deref(row.Agency)].Add(row.Cost)
	}

	return ExpenseLedger{
		Rows:     rows,
		Total:    total,
		ByType:   sortedTotals(byType),
		ByAgency: sortedTotals(byAgency),
	}
}

// sortedTotals orders totals by amount descending, then key.
func sortedTotals(m map[string]decimal.Decimal) []ExpenseTotal {
	out := make([]ExpenseTotal, 0, len(m))
	for k, v := range m {
		out = append(out, ExpenseTotal{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

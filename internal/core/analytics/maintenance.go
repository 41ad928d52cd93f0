package analytics

import (
	"sort"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceNoPrevious MaintenanceStatus = "No Previous Maintenance"
	MaintenanceNormal     MaintenanceStatus = "Normal"
	MaintenanceAbnormal   MaintenanceStatus = "Abnormal"
)

// MaintenanceRow is one service visit annotated against the vehicle's history.
type MaintenanceRow struct {
	MaintenanceID int64  `json:"maintenance_id"`
	VehicleID     string `json:"vehicle_id"`
	VehicleAttributes

	Timestamp       time.Time       `json:"timestamp"`
	MaintenanceType string          `json:"maintenance_type"`
	OdometerReading decimal.Decimal `json:"odometer_reading"`
	Cost            decimal.Decimal `json:"cost"`

	HasPrevious          bool              `json:"has_previous"`
	MileageSincePrevious *decimal.Decimal  `json:"mileage_since_previous"`
	Status               MaintenanceStatus `json:"status"`
	// TypeCount is the number of visits of this type for the vehicle.
	TypeCount int `json:"type_count"`
}

// MaintenanceHistory annotates each visit with the mileage since the vehicle's
// previous visit. Previous-visit lookups and type counts use the full history;
// only the rows returned are narrowed by the filter's time range.
func (e *Engine) MaintenanceHistory(snap *v1.Snapshot, filter Filter) []MaintenanceRow {
	ix := newFleetIndex(snap)
	limit := e.params.MaintenanceMileageLimit

	vehicleOnly := filter
	vehicleOnly.Start, vehicleOnly.End = time.Time{}, time.Time{}
	events := filterEvents(vehicleOnly, ix, snap.Maintenance, maintenanceVehicle, maintenanceTime)
	groups := coreagg.GroupBy(events, maintenanceVehicle)

	perVehicle := mapVehicles(e.pool, groups, func(id string, evts []v1.MaintenanceEvent) ([]MaintenanceRow, bool) {
		rows := vehicleMaintenance(evts, limit)
		attrs := ix.attributes(id)
		out := rows[:0]
		for _, row := range rows {
			if !filter.matchesTime(row.Timestamp) {
				continue
			}
			row.VehicleAttributes = attrs
			out = append(out, row)
		}
		return out, len(out) > 0
	})

	var rows []MaintenanceRow
	for _, vr := range perVehicle {
		rows = append(rows, vr...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		}
		return rows[i].VehicleID < rows[j].VehicleID
	})
	return rows
}

// vehicleMaintenance annotates one vehicle's visits in time order.
func vehicleMaintenance(events []v1.MaintenanceEvent, limit decimal.Decimal) []MaintenanceRow {
	sorted := coreagg.SortByTime(events, maintenanceTime)

	typeCounts := make(map[string]int)
	for _, evt := range sorted {
		typeCounts[evt.MaintenanceType]++
	}

	rows := make([]MaintenanceRow, 0, len(sorted))
	for i, evt := range sorted {
		row := MaintenanceRow{
			MaintenanceID:   evt.MaintenanceID,
			VehicleID:       evt.VehicleID,
			Timestamp:       evt.Timestamp,
			MaintenanceType: evt.MaintenanceType,
			OdometerReading: evt.OdometerReading,
			Cost:            evt.Cost,
			Status:          MaintenanceNoPrevious,
			TypeCount:       typeCounts[evt.MaintenanceType],
		}

		// A visit on the same instant as the first one has no strictly earlier visit.
		row.HasPrevious = i > 0 && sorted[0].Timestamp.Before(evt.Timestamp)
		if row.HasPrevious {
			delta := evt.OdometerReading.Sub(sorted[i-1].OdometerReading)
			row.MileageSincePrevious = &delta
			row.Status = MaintenanceNormal
			if !delta.LessThan(limit) {
				row.Status = MaintenanceAbnormal
			}
		}
		rows = append(rows, row)
	}
	return rows
}

package analytics

import (
	"strings"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	coreagg "github.com/aevon-lab/fleet-analytics/internal/core/aggregation"
)

// VehicleAttributes are the categorical fields joined onto output rows.
// A nil field means the lookup had no match; the row is still emitted.
type VehicleAttributes struct {
	VehicleType *string `json:"vehicle_type"`
	Agency      *string `json:"agency"`
}

// fleetIndex is the current-state view of a snapshot: one vehicle record and
// the latest license, ownership and allocation per VehicleID.
type fleetIndex struct {
	vehicles    map[string]v1.Vehicle
	licenses    map[string]v1.LicenseRecord
	ownerships  map[string]v1.OwnershipRecord
	allocations map[string]v1.AllocationRecord
}

func newFleetIndex(snap *v1.Snapshot) *fleetIndex {
	vehicles := make(map[string]v1.Vehicle, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		vehicles[v.VehicleID] = v
	}

	return &fleetIndex{
		vehicles: vehicles,
		licenses: coreagg.LatestBy(snap.Licenses,
			func(r v1.LicenseRecord) string { return r.VehicleID },
			func(r v1.LicenseRecord) int64 { return r.LicenseID },
		),
		ownerships: coreagg.LatestBy(snap.Ownerships,
			func(r v1.OwnershipRecord) string { return r.VehicleID },
			func(r v1.OwnershipRecord) int64 { return r.OwnershipID },
		),
		allocations: coreagg.LatestBy(snap.Allocations,
			func(r v1.AllocationRecord) string { return r.VehicleID },
			func(r v1.AllocationRecord) int64 { return r.AllocationID },
		),
	}
}

func (ix *fleetIndex) attributes(vehicleID string) VehicleAttributes {
	var attrs VehicleAttributes
	if v, ok := ix.vehicles[vehicleID]; ok && v.VehicleType != "" {
		vt := v.VehicleType
		attrs.VehicleType = &vt
	}
	if a, ok := ix.allocations[vehicleID]; ok && a.Agency != "" {
		agency := a.Agency
		attrs.Agency = &agency
	}
	return attrs
}

// vehicleIDs returns every VehicleID known to the registry or to a current-state stream.
func (ix *fleetIndex) vehicleIDs() []string {
	seen := make(map[string]struct{}, len(ix.vehicles))
	for id := range ix.vehicles {
		seen[id] = struct{}{}
	}
	for id := range ix.licenses {
		seen[id] = struct{}{}
	}
	for id := range ix.ownerships {
		seen[id] = struct{}{}
	}
	for id := range ix.allocations {
		seen[id] = struct{}{}
	}
	return coreagg.SortedKeys(seen)
}

// Filter narrows the records a calculator sees. Zero fields match everything.
// Start is inclusive and End exclusive; both apply to event timestamps only.
type Filter struct {
	VehicleID   string
	VehicleType string
	Agency      string
	// Chassis matches as a case-insensitive substring of the chassis number.
	Chassis string
	Start   time.Time
	End     time.Time
}

func (f Filter) matchesVehicle(ix *fleetIndex, vehicleID string) bool {
	if f.VehicleID != "" && f.VehicleID != vehicleID {
		return false
	}
	attrs := ix.attributes(vehicleID)
	if f.VehicleType != "" && (attrs.VehicleType == nil || *attrs.VehicleType != f.VehicleType) {
		return false
	}
	if f.Agency != "" && (attrs.Agency == nil || *attrs.Agency != f.Agency) {
		return false
	}
	if f.Chassis != "" {
		v, ok := ix.vehicles[vehicleID]
		if !ok || !strings.Contains(strings.ToLower(v.ChassisNo), strings.ToLower(f.Chassis)) {
			return false
		}
	}
	return true
}

func (f Filter) matchesTime(ts time.Time) bool {
	if !f.Start.IsZero() && ts.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && !ts.Before(f.End) {
		return false
	}
	return true
}

// filterEvents keeps the events whose vehicle and timestamp match f.
func filterEvents[E any](f Filter, ix *fleetIndex, events []E, vehicleOf func(E) string, at coreagg.TimeFunc[E]) []E {
	out := make([]E, 0, len(events))
	for _, e := range events {
		if !f.matchesTime(at(e)) || !f.matchesVehicle(ix, vehicleOf(e)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func fuelVehicle(e v1.FuelEvent) string               { return e.VehicleID }
func fuelTime(e v1.FuelEvent) time.Time               { return e.Timestamp }
func maintenanceVehicle(e v1.MaintenanceEvent) string { return e.VehicleID }
func maintenanceTime(e v1.MaintenanceEvent) time.Time { return e.Timestamp }
func penaltyVehicle(p v1.TrafficPenalty) string       { return p.VehicleID }
func penaltyTime(p v1.TrafficPenalty) time.Time       { return p.Timestamp }

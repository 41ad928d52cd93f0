package v1

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRecord marks structurally invalid input rejected at ingestion.
var ErrInvalidRecord = errors.New("invalid record")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// Condition is the operational state of a vehicle in its current allocation.
type Condition string

const (
	ConditionActive           Condition = "Active"
	ConditionInactive         Condition = "Inactive"
	ConditionUnderMaintenance Condition = "UnderMaintenance"
)

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionActive, ConditionInactive, ConditionUnderMaintenance:
		return true
	}
	return false
}

// Vehicle is the basic registration record every other stream references by VehicleID.
type Vehicle struct {
	VehicleID   string `json:"vehicle_id" yaml:"vehicle_id"`
	ChassisNo   string `json:"chassis_no,omitempty" yaml:"chassis_no,omitempty"`
	VehicleType string `json:"vehicle_type" yaml:"vehicle_type"`
}

func (v *Vehicle) Validate() error {
	if strings.TrimSpace(v.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if strings.TrimSpace(v.VehicleType) == "" {
		return invalidf("vehicle_type is required")
	}
	return nil
}

// FuelEvent is a single fill-up. OdometerReading is expected to be
// non-decreasing per vehicle but regressions are tolerated downstream.
type FuelEvent struct {
	FuelID          int64           `json:"fuel_id,omitempty" yaml:"fuel_id,omitempty"`
	VehicleID       string          `json:"vehicle_id" yaml:"vehicle_id"`
	Timestamp       time.Time       `json:"timestamp" yaml:"timestamp"`
	OdometerReading decimal.Decimal `json:"odometer_reading" yaml:"odometer_reading"`
	FuelAmount      decimal.Decimal `json:"fuel_amount" yaml:"fuel_amount"`
	Cost            decimal.Decimal `json:"cost" yaml:"cost"`
	FuelType        string          `json:"fuel_type,omitempty" yaml:"fuel_type,omitempty"`
}

func (e *FuelEvent) Validate() error {
	if strings.TrimSpace(e.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if e.Timestamp.IsZero() {
		return invalidf("timestamp is required")
	}
	if !e.FuelAmount.IsPositive() {
		return invalidf("fuel_amount must be > 0, got %s", e.FuelAmount)
	}
	if e.Cost.IsNegative() {
		return invalidf("cost must be >= 0, got %s", e.Cost)
	}
	if e.OdometerReading.IsNegative() {
		return invalidf("odometer_reading must be >= 0, got %s", e.OdometerReading)
	}
	return nil
}

// MaintenanceEvent is a single service visit.
type MaintenanceEvent struct {
	MaintenanceID   int64           `json:"maintenance_id,omitempty" yaml:"maintenance_id,omitempty"`
	VehicleID       string          `json:"vehicle_id" yaml:"vehicle_id"`
	Timestamp       time.Time       `json:"timestamp" yaml:"timestamp"`
	OdometerReading decimal.Decimal `json:"odometer_reading" yaml:"odometer_reading"`
	MaintenanceType string          `json:"maintenance_type" yaml:"maintenance_type"`
	Cost            decimal.Decimal `json:"cost" yaml:"cost"`
}

func (e *MaintenanceEvent) Validate() error {
	if strings.TrimSpace(e.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if e.Timestamp.IsZero() {
		return invalidf("timestamp is required")
	}
	if strings.TrimSpace(e.MaintenanceType) == "" {
		return invalidf("maintenance_type is required")
	}
	if e.Cost.IsNegative() {
		return invalidf("cost must be >= 0, got %s", e.Cost)
	}
	if e.OdometerReading.IsNegative() {
		return invalidf("odometer_reading must be >= 0, got %s", e.OdometerReading)
	}
	return nil
}

// LicenseRecord is one registration period. The record with the highest
// LicenseID is the vehicle's current license.
type LicenseRecord struct {
	LicenseID int64     `json:"license_id" yaml:"license_id"`
	VehicleID string    `json:"vehicle_id" yaml:"vehicle_id"`
	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`
}

func (r *LicenseRecord) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if r.EndDate.IsZero() {
		return invalidf("end_date is required")
	}
	if !r.StartDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return invalidf("end_date %s is before start_date %s",
			r.EndDate.Format(time.DateOnly), r.StartDate.Format(time.DateOnly))
	}
	return nil
}

// OwnershipRecord tracks who holds the vehicle. Highest OwnershipID wins.
type OwnershipRecord struct {
	OwnershipID int64  `json:"ownership_id" yaml:"ownership_id"`
	VehicleID   string `json:"vehicle_id" yaml:"vehicle_id"`
	Ownership   string `json:"ownership" yaml:"ownership"`
}

func (r *OwnershipRecord) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if strings.TrimSpace(r.Ownership) == "" {
		return invalidf("ownership is required")
	}
	return nil
}

// AllocationRecord assigns a vehicle to an agency. Highest AllocationID wins.
type AllocationRecord struct {
	AllocationID int64     `json:"allocation_id" yaml:"allocation_id"`
	VehicleID    string    `json:"vehicle_id" yaml:"vehicle_id"`
	Agency       string    `json:"agency" yaml:"agency"`
	Branch       string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	Condition    Condition `json:"condition" yaml:"condition"`
}

func (r *AllocationRecord) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if strings.TrimSpace(r.Agency) == "" {
		return invalidf("agency is required")
	}
	if !r.Condition.Valid() {
		return invalidf("unknown condition %q", r.Condition)
	}
	return nil
}

// TrafficPenalty is a fine charged against a vehicle.
type TrafficPenalty struct {
	PenaltyID   int64           `json:"penalty_id,omitempty" yaml:"penalty_id,omitempty"`
	VehicleID   string          `json:"vehicle_id" yaml:"vehicle_id"`
	Timestamp   time.Time       `json:"timestamp" yaml:"timestamp"`
	Location    string          `json:"location,omitempty" yaml:"location,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost" yaml:"cost"`
}

func (p *TrafficPenalty) Validate() error {
	if strings.TrimSpace(p.VehicleID) == "" {
		return invalidf("vehicle_id is required")
	}
	if p.Timestamp.IsZero() {
		return invalidf("timestamp is required")
	}
	if p.Cost.IsNegative() {
		return invalidf("cost must be >= 0, got %s", p.Cost)
	}
	return nil
}

// Snapshot is one consistent read of every stream. Analytics never mutate it.
type Snapshot struct {
	Vehicles    []Vehicle          `json:"vehicles" yaml:"vehicles"`
	Fuel        []FuelEvent        `json:"fuel" yaml:"fuel"`
	Maintenance []MaintenanceEvent `json:"maintenance" yaml:"maintenance"`
	Licenses    []LicenseRecord    `json:"licenses" yaml:"licenses"`
	Ownerships  []OwnershipRecord  `json:"ownerships" yaml:"ownerships"`
	Allocations []AllocationRecord `json:"allocations" yaml:"allocations"`
	Penalties   []TrafficPenalty   `json:"penalties" yaml:"penalties"`
}

package analytics

import (
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/shopspring/decimal"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func fuel(vehicleID string, dayOffset int, odometer, amount, cost float64) v1.FuelEvent {
	return v1.FuelEvent{
		VehicleID:       vehicleID,
		Timestamp:       base.AddDate(0, 0, dayOffset),
		OdometerReading: dec(odometer),
		FuelAmount:      dec(amount),
		Cost:            dec(cost),
		FuelType:        "Diesel",
	}
}

func strPtr(s string) *string { return &s }

// scenarioV1 is the three-fill vehicle: days 0, 3 and 7.
func scenarioV1() []v1.FuelEvent {
	return []v1.FuelEvent{
		fuel("V1", 0, 1000, 20, 100),
		fuel("V1", 3, 1300, 15, 75),
		fuel("V1", 7, 1700, 25, 125),
	}
}

func fleetSnapshot() *v1.Snapshot {
	return &v1.Snapshot{
		Vehicles: []v1.Vehicle{
			{VehicleID: "V1", VehicleType: "Van", ChassisNo: "CH-001"},
			{VehicleID: "V2", VehicleType: "Truck", ChassisNo: "CH-002"},
		},
		Fuel: scenarioV1(),
		Allocations: []v1.AllocationRecord{
			{AllocationID: 1, VehicleID: "V1", Agency: "North", Condition: v1.ConditionActive},
			{AllocationID: 2, VehicleID: "V1", Agency: "South", Condition: v1.ConditionActive},
			{AllocationID: 3, VehicleID: "V2", Agency: "North", Condition: v1.ConditionActive},
		},
	}
}

package analytics

import (
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/aevon-lab/fleet-analytics/internal/cache"
	fleet "github.com/aevon-lab/fleet-analytics/internal/core/analytics"
	storagemocks "github.com/aevon-lab/fleet-analytics/internal/mocks/storage"
	"github.com/shopspring/decimal"
)

var (
	base  = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	today = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
)

func fill(vehicleID string, dayOffset int, odometer, amount int64) v1.FuelEvent {
	return v1.FuelEvent{
		VehicleID:       vehicleID,
		Timestamp:       base.AddDate(0, 0, dayOffset),
		OdometerReading: decimal.NewFromInt(odometer),
		FuelAmount:      decimal.NewFromInt(amount),
		Cost:            decimal.NewFromInt(amount * 5),
	}
}

// testSnapshot: V1 runs at 20 distance/fuel and is not suspicious; V2 burns
// 60 units in a day and gets flagged; V2's license expires within a month.
func testSnapshot() *v1.Snapshot {
	return &v1.Snapshot{
		Vehicles: []v1.Vehicle{
			{VehicleID: "V1", VehicleType: "Van"},
			{VehicleID: "V2", VehicleType: "Truck"},
		},
		Fuel: []v1.FuelEvent{
			fill("V1", 0, 1000, 20),
			fill("V1", 3, 1300, 15),
			fill("V1", 7, 1700, 25),
			fill("V2", 5, 5000, 60),
			fill("V2", 6, 5400, 10),
		},
		Licenses: []v1.LicenseRecord{
			{LicenseID: 1, VehicleID: "V2", EndDate: time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)},
		},
		Allocations: []v1.AllocationRecord{
			{AllocationID: 1, VehicleID: "V1", Agency: "South", Condition: v1.ConditionActive},
			{AllocationID: 2, VehicleID: "V2", Agency: "North", Condition: v1.ConditionActive},
		},
	}
}

func newTestService(reader *storagemocks.SnapshotReader, memo *cache.Memoizer) *Service {
	svc := NewService(reader, fleet.NewEngine(fleet.DefaultParams(), nil), memo)
	svc.nowFn = func() time.Time { return today }
	return svc
}

func newTestMemoizer() *cache.Memoizer {
	return cache.NewMemoizer(cache.NewMemoryStore(64), time.Hour)
}

package analytics

import (
	"testing"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func rosterSnapshot() *v1.Snapshot {
	snap := fleetSnapshot()
	snap.Vehicles = append(snap.Vehicles, v1.Vehicle{VehicleID: "V3", VehicleType: "Van"})
	snap.Allocations[1].Branch = "Giza"
	// V9 has an allocation but is not in the registry.
	snap.Allocations = append(snap.Allocations,
		v1.AllocationRecord{AllocationID: 7, VehicleID: "V9", Agency: "North", Condition: v1.ConditionActive})
	snap.Licenses = []v1.LicenseRecord{{LicenseID: 1, VehicleID: "V1", EndDate: *datePtr(2027, 1, 1)}}
	snap.Ownerships = []v1.OwnershipRecord{
		{OwnershipID: 1, VehicleID: "V1", Ownership: "Leased"},
		{OwnershipID: 2, VehicleID: "V2", Ownership: "Leased"},
		{OwnershipID: 3, VehicleID: "V1", Ownership: "Internal"},
	}
	return snap
}

func TestRoster(t *testing.T) {
	roster := NewEngine(DefaultParams(), nil).Roster(rosterSnapshot(), Filter{})

	require.Len(t, roster.Rows, 3)
	require.Equal(t, "V1", roster.Rows[0].VehicleID)
	require.Equal(t, "V2", roster.Rows[1].VehicleID)
	require.Equal(t, "V3", roster.Rows[2].VehicleID)

	v1Row := roster.Rows[0]
	require.Equal(t, "CH-001", v1Row.ChassisNo)
	require.Equal(t, "Van", *v1Row.VehicleType)
	require.Equal(t, "South", *v1Row.Agency)
	require.Equal(t, "Giza", *v1Row.Branch)
	require.Equal(t, v1.ConditionActive, *v1Row.Condition)
	require.True(t, dec(25).Equal(*v1Row.LastFuelAmount))
	require.Equal(t, base.AddDate(0, 0, 7), *v1Row.LastFuelDate)
	require.Equal(t, *datePtr(2027, 1, 1), *v1Row.LicenseEndDate)
	require.Equal(t, "Internal", *v1Row.Ownership)

	v2Row := roster.Rows[1]
	require.Nil(t, v2Row.Branch)
	require.Nil(t, v2Row.LastFuelAmount)
	require.Nil(t, v2Row.LastFuelDate)
	require.Nil(t, v2Row.LicenseEndDate)
	require.Equal(t, "Leased", *v2Row.Ownership)

	v3Row := roster.Rows[2]
	require.Nil(t, v3Row.Agency)
	require.Nil(t, v3Row.Condition)
	require.Nil(t, v3Row.Ownership)

	require.Equal(t, []CategoryCount{{Key: "Van", Vehicles: 2}, {Key: "Truck", Vehicles: 1}}, roster.ByVehicleType)
	require.Equal(t, []CategoryCount{{Key: "Internal", Vehicles: 1}, {Key: "Leased", Vehicles: 1}}, roster.ByOwnership)
}

func TestRoster_Filter(t *testing.T) {
	engine := NewEngine(DefaultParams(), nil)

	byType := engine.Roster(rosterSnapshot(), Filter{VehicleType: "Truck"})
	require.Len(t, byType.Rows, 1)
	require.Equal(t, "V2", byType.Rows[0].VehicleID)
	require.Equal(t, []CategoryCount{{Key: "Truck", Vehicles: 1}}, byType.ByVehicleType)

	byChassis := engine.Roster(rosterSnapshot(), Filter{Chassis: "ch-001"})
	require.Len(t, byChassis.Rows, 1)
	require.Equal(t, "V1", byChassis.Rows[0].VehicleID)

	// The range only bounds which fill counts as the last one.
	ranged := engine.Roster(rosterSnapshot(), Filter{End: base.AddDate(0, 0, 5)})
	require.Len(t, ranged.Rows, 3)
	require.True(t, dec(15).Equal(*ranged.Rows[0].LastFuelAmount))
	require.Equal(t, base.AddDate(0, 0, 3), *ranged.Rows[0].LastFuelDate)
}

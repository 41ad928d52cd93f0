package postgres

// SQL for the fleet record tables. Inserts that have a natural key use
// ON CONFLICT DO NOTHING, which returns no rows (sql.ErrNoRows) for duplicates.

const (
	querySaveVehicle = `
		INSERT INTO vehicles (vehicle_id, chassis_no, vehicle_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (vehicle_id) DO NOTHING
		RETURNING vehicle_id
	`

	// querySaveFuelEvent dedupes on (vehicle_id, occurred_at): one fill per vehicle per instant.
	querySaveFuelEvent = `
		INSERT INTO fuel_events (
			vehicle_id, occurred_at, odometer_reading, fuel_amount, cost, fuel_type
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vehicle_id, occurred_at) DO NOTHING
		RETURNING fuel_id
	`

	querySaveMaintenanceEvent = `
		INSERT INTO maintenance_events (
			vehicle_id, occurred_at, odometer_reading, maintenance_type, cost
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vehicle_id, occurred_at, maintenance_type) DO NOTHING
		RETURNING maintenance_id
	`

	querySaveLicense = `
		INSERT INTO licenses (vehicle_id, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING license_id
	`

	querySaveOwnership = `
		INSERT INTO ownerships (vehicle_id, ownership)
		VALUES ($1, $2)
		RETURNING ownership_id
	`

	querySaveAllocation = `
		INSERT INTO allocations (vehicle_id, agency, branch, condition)
		VALUES ($1, $2, $3, $4)
		RETURNING allocation_id
	`

	querySaveTrafficPenalty = `
		INSERT INTO traffic_penalties (vehicle_id, occurred_at, location, description, cost)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vehicle_id, occurred_at) DO NOTHING
		RETURNING penalty_id
	`
)

// Snapshot reads. These run inside one read-only REPEATABLE READ transaction
// so every stream reflects the same point in time.
const (
	queryLoadVehicles = `
		SELECT vehicle_id, chassis_no, vehicle_type
		FROM vehicles
		ORDER BY vehicle_id
	`

	queryLoadFuelEvents = `
		SELECT fuel_id, vehicle_id, occurred_at, odometer_reading, fuel_amount, cost, fuel_type
		FROM fuel_events
		ORDER BY vehicle_id, occurred_at, fuel_id
	`

	queryLoadMaintenanceEvents = `
		SELECT maintenance_id, vehicle_id, occurred_at, odometer_reading, maintenance_type, cost
		FROM maintenance_events
		ORDER BY vehicle_id, occurred_at, maintenance_id
	`

	queryLoadLicenses = `
		SELECT license_id, vehicle_id, start_date, end_date
		FROM licenses
		ORDER BY license_id
	`

	queryLoadOwnerships = `
		SELECT ownership_id, vehicle_id, ownership
		FROM ownerships
		ORDER BY ownership_id
	`

	queryLoadAllocations = `
		SELECT allocation_id, vehicle_id, agency, branch, condition
		FROM allocations
		ORDER BY allocation_id
	`

	queryLoadTrafficPenalties = `
		SELECT penalty_id, vehicle_id, occurred_at, location, description, cost
		FROM traffic_penalties
		ORDER BY vehicle_id, occurred_at, penalty_id
	`
)

// requiredTables must exist before the adapter starts serving.
var requiredTables = []string{
	"vehicles",
	"fuel_events",
	"maintenance_events",
	"licenses",
	"ownerships",
	"allocations",
	"traffic_penalties",
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"github.com/lib/pq"
)

// PostgreSQL error codes mapped onto storage sentinels.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// mapWriteError converts insert failures into storage sentinels.
// sql.ErrNoRows means ON CONFLICT DO NOTHING skipped the row.
func mapWriteError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, storage.ErrUnknownVehicle)
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, v1.ErrInvalidRecord, pqErr.Message)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// nullString stores empty optional text as SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row scanner) (v1.Vehicle, error) {
	var v v1.Vehicle
	var chassis sql.NullString
	if err := row.Scan(&v.VehicleID, &chassis, &v.VehicleType); err != nil {
		return v1.Vehicle{}, err
	}
	v.ChassisNo = chassis.String
	return v, nil
}

func scanFuelEvent(row scanner) (v1.FuelEvent, error) {
	var e v1.FuelEvent
	var fuelType sql.NullString
	err := row.Scan(
		&e.FuelID,
		&e.VehicleID,
		&e.Timestamp,
		&e.OdometerReading,
		&e.FuelAmount,
		&e.Cost,
		&fuelType,
	)
	if err != nil {
		return v1.FuelEvent{}, err
	}
	e.Timestamp = e.Timestamp.UTC()
	e.FuelType = fuelType.String
	return e, nil
}

func scanMaintenanceEvent(row scanner) (v1.MaintenanceEvent, error) {
	var e v1.MaintenanceEvent
	err := row.Scan(
		&e.MaintenanceID,
		&e.VehicleID,
		&e.Timestamp,
		&e.OdometerReading,
		&e.MaintenanceType,
		&e.Cost,
	)
	if err != nil {
		return v1.MaintenanceEvent{}, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}

func scanLicense(row scanner) (v1.LicenseRecord, error) {
	var r v1.LicenseRecord
	var start sql.NullTime
	if err := row.Scan(&r.LicenseID, &r.VehicleID, &start, &r.EndDate); err != nil {
		return v1.LicenseRecord{}, err
	}
	if start.Valid {
		r.StartDate = start.Time.UTC()
	}
	r.EndDate = r.EndDate.UTC()
	return r, nil
}

func scanOwnership(row scanner) (v1.OwnershipRecord, error) {
	var r v1.OwnershipRecord
	if err := row.Scan(&r.OwnershipID, &r.VehicleID, &r.Ownership); err != nil {
		return v1.OwnershipRecord{}, err
	}
	return r, nil
}

func scanAllocation(row scanner) (v1.AllocationRecord, error) {
	var r v1.AllocationRecord
	var branch sql.NullString
	var condition string
	if err := row.Scan(&r.AllocationID, &r.VehicleID, &r.Agency, &branch, &condition); err != nil {
		return v1.AllocationRecord{}, err
	}
	r.Branch = branch.String
	r.Condition = v1.Condition(condition)
	return r, nil
}

func scanTrafficPenalty(row scanner) (v1.TrafficPenalty, error) {
	var p v1.TrafficPenalty
	var location, description sql.NullString
	err := row.Scan(
		&p.PenaltyID,
		&p.VehicleID,
		&p.Timestamp,
		&location,
		&description,
		&p.Cost,
	)
	if err != nil {
		return v1.TrafficPenalty{}, err
	}
	p.Timestamp = p.Timestamp.UTC()
	p.Location = location.String
	p.Description = description.String
	return p, nil
}

package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
)

var (
	// ErrDuplicate is returned when a record with the same natural key already exists.
	ErrDuplicate = errors.New("record already exists")

	// ErrUnknownVehicle is returned when a record references a VehicleID that was never registered.
	ErrUnknownVehicle = errors.New("unknown vehicle")
)

// SnapshotReader loads every stream in one consistent read.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (*v1.Snapshot, error)
}

// RecordWriter persists one validated record at a time. Implementations
// populate server-assigned IDs on the passed record.
type RecordWriter interface {
	SaveVehicle(ctx context.Context, vehicle *v1.Vehicle) error
	SaveFuelEvent(ctx context.Context, event *v1.FuelEvent) error
	SaveMaintenanceEvent(ctx context.Context, event *v1.MaintenanceEvent) error
	SaveLicense(ctx context.Context, record *v1.LicenseRecord) error
	SaveOwnership(ctx context.Context, record *v1.OwnershipRecord) error
	SaveAllocation(ctx context.Context, record *v1.AllocationRecord) error
	SaveTrafficPenalty(ctx context.Context, penalty *v1.TrafficPenalty) error
}

// Repository is the full storage surface the server needs.
type Repository interface {
	SnapshotReader
	RecordWriter
	Ping(ctx context.Context) error
	Close() error
}

// Package snapshot implements storage.Repository on top of a single YAML
// document. It backs the CLI report command and small deployments that run
// without PostgreSQL.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"gopkg.in/yaml.v3"
)

// Load reads a snapshot document from path.
func Load(path string) (*v1.Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap v1.Snapshot
	if err := yaml.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Save writes snap to path through a temporary file and rename, so readers
// never observe a partially written document.
func Save(path string, snap *v1.Snapshot) error {
	content, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

type fuelKey struct {
	vehicleID string
	at        time.Time
}

type maintenanceKey struct {
	vehicleID string
	at        time.Time
	kind      string
}

// Store is an in-memory Repository persisted to a YAML file after every
// write. An empty path keeps everything in memory.
type Store struct {
	mu   sync.RWMutex
	path string
	snap v1.Snapshot

	vehicles    map[string]struct{}
	fuel        map[fuelKey]struct{}
	maintenance map[maintenanceKey]struct{}
	penalties   map[fuelKey]struct{}
	nextID      int64
}

// Open loads the document at path, or starts empty if it does not exist yet.
func Open(path string) (*Store, error) {
	s := newStore(path)
	if path == "" {
		return s, nil
	}

	snap, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("[Snapshot] No snapshot file yet, starting empty", "path", path)
			return s, nil
		}
		return nil, err
	}

	s.index(snap)
	slog.Info("[Snapshot] Loaded snapshot",
		"path", path,
		"vehicles", len(snap.Vehicles),
		"fuel", len(snap.Fuel),
		"maintenance", len(snap.Maintenance))
	return s, nil
}

// NewMemoryStore returns a Store seeded with snap that never touches disk.
func NewMemoryStore(snap *v1.Snapshot) *Store {
	s := newStore("")
	if snap != nil {
		s.index(snap)
	}
	return s
}

func newStore(path string) *Store {
	return &Store{
		path:        path,
		vehicles:    make(map[string]struct{}),
		fuel:        make(map[fuelKey]struct{}),
		maintenance: make(map[maintenanceKey]struct{}),
		penalties:   make(map[fuelKey]struct{}),
	}
}

// index adopts snap and rebuilds the natural key sets. IDs continue after
// the highest one seen in any stream.
func (s *Store) index(snap *v1.Snapshot) {
	s.snap = *cloneSnapshot(snap)

	for _, v := range s.snap.Vehicles {
		s.vehicles[v.VehicleID] = struct{}{}
	}
	for _, e := range s.snap.Fuel {
		s.fuel[fuelKey{e.VehicleID, e.Timestamp.UTC()}] = struct{}{}
		s.bump(e.FuelID)
	}
	for _, e := range s.snap.Maintenance {
		s.maintenance[maintenanceKey{e.VehicleID, e.Timestamp.UTC(), e.MaintenanceType}] = struct{}{}
		s.bump(e.MaintenanceID)
	}
	for _, p := range s.snap.Penalties {
		s.penalties[fuelKey{p.VehicleID, p.Timestamp.UTC()}] = struct{}{}
		s.bump(p.PenaltyID)
	}
	for _, r := range s.snap.Licenses {
		s.bump(r.LicenseID)
	}
	for _, r := range s.snap.Ownerships {
		s.bump(r.OwnershipID)
	}
	for _, r := range s.snap.Allocations {
		s.bump(r.AllocationID)
	}
}

func (s *Store) bump(id int64) {
	if id > s.nextID {
		s.nextID = id
	}
}


func (s *Store) requireVehicle(id string) error {
	if _, ok := s.vehicles[id]; !ok {
		return fmt.Errorf("vehicle %q: %w", id, storage.ErrUnknownVehicle)
	}
	return nil
}

// persist must be called with mu held.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	return Save(s.path, &s.snap)
}

// appendPersisted appends item to list and writes the document. On a failed
// write the append is undone, so memory never holds a record the file lacks.
// Must be called with mu held.
func appendPersisted[T any](s *Store, list *[]T, item T) error {
	n := len(*list)
	*list = append(*list, item)
	if err := s.persist(); err != nil {
		*list = (*list)[:n]
		return err
	}
	return nil
}

// LoadSnapshot returns a deep copy of the current state.
func (s *Store) LoadSnapshot(ctx context.Context) (*v1.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneSnapshot(&s.snap), nil
}

func (s *Store) SaveVehicle(ctx context.Context, vehicle *v1.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.vehicles[vehicle.VehicleID]; exists {
		return fmt.Errorf("vehicle %q: %w", vehicle.VehicleID, storage.ErrDuplicate)
	}

	if err := appendPersisted(s, &s.snap.Vehicles, *vehicle); err != nil {
		return err
	}
	s.vehicles[vehicle.VehicleID] = struct{}{}
	return nil
}

func (s *Store) SaveFuelEvent(ctx context.Context, event *v1.FuelEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(event.VehicleID); err != nil {
		return err
	}
	key := fuelKey{event.VehicleID, event.Timestamp.UTC()}
	if _, exists := s.fuel[key]; exists {
		return fmt.Errorf("fuel event for %q at %s: %w", event.VehicleID, event.Timestamp.Format(time.RFC3339), storage.ErrDuplicate)
	}

	stored := *event
	stored.FuelID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Fuel, stored); err != nil {
		return err
	}
	s.nextID = stored.FuelID
	s.fuel[key] = struct{}{}
	event.FuelID = stored.FuelID
	return nil
}

func (s *Store) SaveMaintenanceEvent(ctx context.Context, event *v1.MaintenanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(event.VehicleID); err != nil {
		return err
	}
	key := maintenanceKey{event.VehicleID, event.Timestamp.UTC(), event.MaintenanceType}
	if _, exists := s.maintenance[key]; exists {
		return fmt.Errorf("maintenance event for %q at %s: %w", event.VehicleID, event.Timestamp.Format(time.RFC3339), storage.ErrDuplicate)
	}

	stored := *event
	stored.MaintenanceID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Maintenance, stored); err != nil {
		return err
	}
	s.nextID = stored.MaintenanceID
	s.maintenance[key] = struct{}{}
	event.MaintenanceID = stored.MaintenanceID
	return nil
}

func (s *Store) SaveLicense(ctx context.Context, record *v1.LicenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(record.VehicleID); err != nil {
		return err
	}
	stored := *record
	stored.LicenseID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Licenses, stored); err != nil {
		return err
	}
	s.nextID = stored.LicenseID
	record.LicenseID = stored.LicenseID
	return nil
}

func (s *Store) SaveOwnership(ctx context.Context, record *v1.OwnershipRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(record.VehicleID); err != nil {
		return err
	}
	stored := *record
	stored.OwnershipID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Ownerships, stored); err != nil {
		return err
	}
	s.nextID = stored.OwnershipID
	record.OwnershipID = stored.OwnershipID
	return nil
}

func (s *Store) SaveAllocation(ctx context.Context, record *v1.AllocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(record.VehicleID); err != nil {
		return err
	}
	stored := *record
	stored.AllocationID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Allocations, stored); err != nil {
		return err
	}
	s.nextID = stored.AllocationID
	record.AllocationID = stored.AllocationID
	return nil
}

func (s *Store) SaveTrafficPenalty(ctx context.Context, penalty *v1.TrafficPenalty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireVehicle(penalty.VehicleID); err != nil {
		return err
	}
	key := fuelKey{penalty.VehicleID, penalty.Timestamp.UTC()}
	if _, exists := s.penalties[key]; exists {
		return fmt.Errorf("traffic penalty for %q at %s: %w", penalty.VehicleID, penalty.Timestamp.Format(time.RFC3339), storage.ErrDuplicate)
	}

	stored := *penalty
	stored.PenaltyID = s.nextID + 1
	if err := appendPersisted(s, &s.snap.Penalties, stored); err != nil {
		return err
	}
	s.nextID = stored.PenaltyID
	s.penalties[key] = struct{}{}
	penalty.PenaltyID = stored.PenaltyID
	return nil
}

// Ping reports whether the backing directory is still writable.
func (s *Store) Ping(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("snapshot directory unavailable: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.Repository = (*Store)(nil)

func cloneSnapshot(in *v1.Snapshot) *v1.Snapshot {
	return &v1.Snapshot{
		Vehicles:    append([]v1.Vehicle(nil), in.Vehicles...),
		Fuel:        append([]v1.FuelEvent(nil), in.Fuel...),
		Maintenance: append([]v1.MaintenanceEvent(nil), in.Maintenance...),
		Licenses:    append([]v1.LicenseRecord(nil), in.Licenses...),
		Ownerships:  append([]v1.OwnershipRecord(nil), in.Ownerships...),
		Allocations: append([]v1.AllocationRecord(nil), in.Allocations...),
		Penalties:   append([]v1.TrafficPenalty(nil), in.Penalties...),
	}
}

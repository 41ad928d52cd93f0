package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	fleet "github.com/aevon-lab/fleet-analytics/internal/core/analytics"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid analytics query")

// Query holds the filters shared by every analytics endpoint. Start and End
// accept a calendar date (YYYY-MM-DD, End inclusive) or an RFC 3339
// timestamp (End exclusive).
type Query struct {
	VehicleID   string `form:"vehicle_id" json:"vehicle_id,omitempty"`
	VehicleType string `form:"vehicle_type" json:"vehicle_type,omitempty"`
	Agency      string `form:"agency" json:"agency,omitempty"`
	Chassis     string `form:"chassis" json:"chassis,omitempty"`
	Start       string `form:"start" json:"start,omitempty"`
	End         string `form:"end" json:"end,omitempty"`
}

// normalize trims every field and canonicalizes the vehicle ID so equivalent
// requests share a cache entry.
func (q Query) normalize() (Query, error) {
	q.VehicleType = strings.TrimSpace(q.VehicleType)
	q.Agency = strings.TrimSpace(q.Agency)
	q.Chassis = strings.TrimSpace(q.Chassis)
	q.Start = strings.TrimSpace(q.Start)
	q.End = strings.TrimSpace(q.End)

	if raw := strings.TrimSpace(q.VehicleID); raw != "" {
		q.VehicleID = v1.NormalizeVehicleID(raw)
		if q.VehicleID == "" {
			return q, invalidQueryf("vehicle_id %q has no letters or digits", raw)
		}
	}
	return q, nil
}

// filter converts the query into an engine filter.
func (q Query) filter() (fleet.Filter, error) {
	start, err := parseBound(q.Start, false)
	if err != nil {
		return fleet.Filter{}, invalidQueryf("start: %v", err)
	}
	end, err := parseBound(q.End, true)
	if err != nil {
		return fleet.Filter{}, invalidQueryf("end: %v", err)
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return fleet.Filter{}, invalidQueryf("end must be after start")
	}

	return fleet.Filter{
		VehicleID:   q.VehicleID,
		VehicleType: q.VehicleType,
		Agency:      q.Agency,
		Chassis:     q.Chassis,
		Start:       start,
		End:         end,
	}, nil
}

// parseBound returns the zero time for an empty value. A date used as an
// upper bound covers the whole day.
func parseBound(value string, upper bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(time.DateOnly, value); err == nil {
		if upper {
			return d.AddDate(0, 0, 1), nil
		}
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC 3339", value)
	}
	return t.UTC(), nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

// ListResponse wraps row-oriented results.
type ListResponse[T any] struct {
	Count int `json:"count"`
	Rows  []T `json:"rows"`
}

func newListResponse[T any](rows []T) ListResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return ListResponse[T]{Count: len(rows), Rows: rows}
}

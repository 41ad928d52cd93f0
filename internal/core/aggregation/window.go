package aggregation

import (
	"fmt"
	"sort"
	"time"
)

// WindowSpec represents a parsed and validated lookback length.
type WindowSpec struct {
	Size time.Duration
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "12h", "90m") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window_size must not be empty")
	}

	// Handle "d" suffix (days), not supported by time.ParseDuration.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// FormatWindowSize renders d in the shortest unit ParseWindowSize accepts.
func FormatWindowSize(d time.Duration) string {
	switch {
	case d <= 0:
		return d.String()
	case d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return d.String()
}

// BucketFor truncates a timestamp to the nearest granularity boundary.
// Example: BucketFor(10:35:42, 15*time.Minute) -> 10:30:00
func BucketFor(t time.Time, granularity time.Duration) time.Time {
	return t.Truncate(granularity)
}

// Anchor returns the latest timestamp in events. ok is false for an empty slice.
func Anchor[E any](events []E, at TimeFunc[E]) (anchor time.Time, ok bool) {
	for i, e := range events {
		if ts := at(e); i == 0 || ts.After(anchor) {
			anchor = ts
		}
	}
	return anchor, len(events) > 0
}

// Window returns the events with anchor-lookback <= t <= anchor, in input order.
// Both ends are inclusive. An empty result is not an error.
func Window[E any](events []E, at TimeFunc[E], anchor time.Time, lookback time.Duration) []E {
	start := anchor.Add(-lookback)

	out := make([]E, 0, len(events))
	for _, e := range events {
		ts := at(e)
		if ts.Before(start) || ts.After(anchor) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PriorWindow returns the window of the same length immediately preceding
// Window(events, at, anchor, lookback): anchor-2*lookback <= t < anchor-lookback.
// The upper end is open so no event belongs to both windows.
func PriorWindow[E any](events []E, at TimeFunc[E], anchor time.Time, lookback time.Duration) []E {
	end := anchor.Add(-lookback)
	return Range(events, at, end.Add(-lookback), end)
}

// Range returns the events with start <= t < end, in input order.
func Range[E any](events []E, at TimeFunc[E], start, end time.Time) []E {
	out := make([]E, 0, len(events))
	for _, e := range events {
		ts := at(e)
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortByTime returns a copy of events ordered by timestamp ascending.
// Equal timestamps keep their input order.
func SortByTime[E any](events []E, at TimeFunc[E]) []E {
	sorted := make([]E, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return at(sorted[i]).Before(at(sorted[j]))
	})
	return sorted
}

// LatestN returns the n most recent events, oldest first.
// Fewer than n events are returned as-is (sorted).
func LatestN[E any](events []E, at TimeFunc[E], n int) []E {
	sorted := SortByTime(events, at)
	if n <= 0 {
		return sorted[:0]
	}
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// MostRecent returns the event with the latest timestamp. On ties the
// later element in input order wins.
func MostRecent[E any](events []E, at TimeFunc[E]) (latest E, ok bool) {
	for i, e := range events {
		if i == 0 || !at(e).Before(at(latest)) {
			latest = e
		}
	}
	return latest, len(events) > 0
}

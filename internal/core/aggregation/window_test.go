package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseWindowSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSize  time.Duration
		wantError bool
	}{
		{name: "minute", input: "1m", wantSize: time.Minute},
		{name: "hour", input: "2h", wantSize: 2 * time.Hour},
		{name: "days suffix", input: "3d", wantSize: 72 * time.Hour},
		{name: "empty invalid", input: "", wantError: true},
		{name: "negative invalid", input: "-1m", wantError: true},
		{name: "zero invalid", input: "0m", wantError: true},
		{name: "bad day format invalid", input: "xd", wantError: true},
		{name: "unknown unit invalid", input: "10x", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseWindowSize(tc.input)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantSize, spec.Size)
		})
	}
}

func TestFormatWindowSize(t *testing.T) {
	require.Equal(t, "7d", FormatWindowSize(7*24*time.Hour))
	require.Equal(t, "36h", FormatWindowSize(36*time.Hour))
	require.Equal(t, "90m", FormatWindowSize(90*time.Minute))
	require.Equal(t, "45s", FormatWindowSize(45*time.Second))
	require.Equal(t, "1.5s", FormatWindowSize(1500*time.Millisecond))

	for _, d := range []time.Duration{time.Minute, 3 * time.Hour, 14 * 24 * time.Hour} {
		spec, err := ParseWindowSize(FormatWindowSize(d))
		require.NoError(t, err)
		require.Equal(t, d, spec.Size)
	}
}

func TestBucketFor(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 35, 42, 123456789, time.UTC)

	require.Equal(t,
		time.Date(2026, 2, 11, 10, 35, 0, 0, time.UTC),
		BucketFor(ts, time.Minute),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC),
		BucketFor(ts, time.Hour),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 10, 30, 0, 0, time.UTC),
		BucketFor(ts, 15*time.Minute),
	)
}

type stamped struct {
	id string
	at time.Time
}

func stampedAt(s stamped) time.Time { return s.at }

func ids(events []stamped) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.id)
	}
	return out
}

func TestWindow_InclusiveBounds(t *testing.T) {
	anchor := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	events := []stamped{
		{id: "too-old", at: anchor.Add(-7*24*time.Hour - time.Second)},
		{id: "start", at: anchor.Add(-7 * 24 * time.Hour)},
		{id: "middle", at: anchor.Add(-3 * 24 * time.Hour)},
		{id: "anchor", at: anchor},
		{id: "future", at: anchor.Add(time.Second)},
	}

	got := Window(events, stampedAt, anchor, 7*24*time.Hour)
	require.Equal(t, []string{"start", "middle", "anchor"}, ids(got))

	start := anchor.Add(-7 * 24 * time.Hour)
	for _, e := range got {
		require.False(t, e.at.Before(start))
		require.False(t, e.at.After(anchor))
	}
}

func TestWindow_EmptyIsNotAnError(t *testing.T) {
	anchor := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	require.Empty(t, Window(nil, stampedAt, anchor, time.Hour))
	require.Empty(t, Window([]stamped{{id: "old", at: anchor.AddDate(0, 0, -30)}}, stampedAt, anchor, time.Hour))
}

func TestPriorWindow_DoesNotOverlapCurrent(t *testing.T) {
	day := 24 * time.Hour
	anchor := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	events := []stamped{
		{id: "d-15", at: anchor.Add(-15 * day)},
		{id: "d-14", at: anchor.Add(-14 * day)},
		{id: "d-10", at: anchor.Add(-10 * day)},
		{id: "d-7", at: anchor.Add(-7 * day)},
		{id: "d-1", at: anchor.Add(-1 * day)},
	}

	current := Window(events, stampedAt, anchor, 7*day)
	prior := PriorWindow(events, stampedAt, anchor, 7*day)

	require.Equal(t, []string{"d-7", "d-1"}, ids(current))
	require.Equal(t, []string{"d-14", "d-10"}, ids(prior))
}

func TestRange_HalfOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	events := []stamped{
		{id: "before", at: start.Add(-time.Nanosecond)},
		{id: "start", at: start},
		{id: "inside", at: start.Add(time.Hour)},
		{id: "end", at: end},
	}

	require.Equal(t, []string{"start", "inside"}, ids(Range(events, stampedAt, start, end)))
}

func TestAnchorAndMostRecent(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []stamped{
		{id: "b", at: base.Add(2 * time.Hour)},
		{id: "a", at: base},
		{id: "c", at: base.Add(2 * time.Hour)},
	}

	anchor, ok := Anchor(events, stampedAt)
	require.True(t, ok)
	require.Equal(t, base.Add(2*time.Hour), anchor)

	latest, ok := MostRecent(events, stampedAt)
	require.True(t, ok)
	require.Equal(t, "c", latest.id)

	_, ok = Anchor([]stamped{}, stampedAt)
	require.False(t, ok)
	_, ok = MostRecent([]stamped{}, stampedAt)
	require.False(t, ok)
}

func TestLatestN(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []stamped{
		{id: "d4", at: base.AddDate(0, 0, 4)},
		{id: "d1", at: base.AddDate(0, 0, 1)},
		{id: "d5", at: base.AddDate(0, 0, 5)},
		{id: "d2", at: base.AddDate(0, 0, 2)},
		{id: "d3", at: base.AddDate(0, 0, 3)},
	}

	require.Equal(t, []string{"d2", "d3", "d4", "d5"}, ids(LatestN(events, stampedAt, 4)))
	require.Equal(t, []string{"d1", "d2", "d3", "d4", "d5"}, ids(LatestN(events, stampedAt, 10)))
	require.Empty(t, LatestN(events, stampedAt, 0))

	// input is not reordered
	require.Equal(t, "d4", events[0].id)
}

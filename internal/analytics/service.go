package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	"github.com/aevon-lab/fleet-analytics/internal/cache"
	fleet "github.com/aevon-lab/fleet-analytics/internal/core/analytics"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"github.com/aevon-lab/fleet-analytics/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// Operation names, used as cache key prefixes and metric attributes.
const (
	OpEfficiency  = "efficiency"
	OpFraud       = "fraud"
	OpCostTrends  = "cost_trends"
	OpActions     = "actions"
	OpMaintenance = "maintenance"
	OpExpenses    = "expenses"
	OpPenalties   = "penalties"
	OpRoster      = "roster"
	OpSummary     = "summary"
)

// Service implements the analytics read path: load one snapshot, run the
// engine, memoize the result.
type Service struct {
	reader storage.SnapshotReader
	engine *fleet.Engine
	memo   *cache.Memoizer
	nowFn  func() time.Time

	passDuration metric.Float64Histogram
	fraudFlagged metric.Int64Counter
}

// NewService creates the analytics service. memo may be nil to disable caching.
func NewService(reader storage.SnapshotReader, engine *fleet.Engine, memo *cache.Memoizer) *Service {
	if reader == nil {
		panic("analytics: snapshot reader is nil")
	}
	if engine == nil {
		panic("analytics: engine is nil")
	}

	meter := telemetry.Meter("fleet-analytics/analytics")
	passDuration, _ := meter.Float64Histogram("fleet.analytics.pass.duration",
		metric.WithDescription("Time to load a snapshot and compute one analytics result"),
		metric.WithUnit("s"),
	)
	fraudFlagged, _ := meter.Int64Counter("fleet.analytics.fraud.flagged",
		metric.WithDescription("Vehicles flagged by the fraud detector across computations"),
	)

	return &Service{
		reader:       reader,
		engine:       engine,
		memo:         memo,
		nowFn:        func() time.Time { return time.Now().UTC() },
		passDuration: passDuration,
		fraudFlagged: fraudFlagged,
	}
}

// WithClock replaces the clock used for date-relative results such as
// license expiry. It returns s for chaining.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// run normalizes q, then serves op from the cache or computes it over a
// freshly loaded snapshot.
func run[T any](ctx context.Context, s *Service, op string, q Query, compute func(snap *v1.Snapshot, filter fleet.Filter, today time.Time) T) (T, error) {
	var zero T

	q, err := q.normalize()
	if err != nil {
		return zero, err
	}
	filter, err := q.filter()
	if err != nil {
		return zero, err
	}

	today := s.nowFn()
	key := struct {
		Query
		Today string `json:"today"`
	}{q, today.Format(time.DateOnly)}

	return cache.Do(ctx, s.memo, op, key, func(ctx context.Context) (T, error) {
		started := time.Now()

		snap, err := s.reader.LoadSnapshot(ctx)
		if err != nil {
			return zero, fmt.Errorf("load snapshot: %w", err)
		}
		result := compute(snap, filter, today)

		elapsed := time.Since(started)
		s.passDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("op", op)))
		slog.Debug("[Analytics] Computed result", "op", op, "duration_ms", elapsed.Milliseconds())
		return result, nil
	})
}

func (s *Service) Efficiency(ctx context.Context, q Query) (fleet.EfficiencyReport, error) {
	return run(ctx, s, OpEfficiency, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) fleet.EfficiencyReport {
		report := s.engine.Efficiency(snap, filter)

		regressions := 0
		for _, row := range report.Current {
			regressions += row.OdometerRegressions
		}
		if regressions > 0 {
			slog.Warn("[Analytics] Odometer regressions inside efficiency window",
				"regressions", regressions,
				"vehicles", len(report.Current))
		}
		return report
	})
}

func (s *Service) Fraud(ctx context.Context, q Query) (ListResponse[fleet.FraudRow], error) {
	return run(ctx, s, OpFraud, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) ListResponse[fleet.FraudRow] {
		rows := s.engine.Fraud(snap, filter)
		if len(rows) > 0 {
			s.fraudFlagged.Add(ctx, int64(len(rows)))
			slog.Info("[Analytics] Vehicles flagged for fuel fraud", "count", len(rows))
		}
		return newListResponse(rows)
	})
}

func (s *Service) CostTrends(ctx context.Context, q Query) (fleet.CostTrends, error) {
	return run(ctx, s, OpCostTrends, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) fleet.CostTrends {
		return s.engine.CostTrends(snap, filter)
	})
}

func (s *Service) Actions(ctx context.Context, q Query) (ListResponse[fleet.ActionRow], error) {
	return run(ctx, s, OpActions, q, func(snap *v1.Snapshot, filter fleet.Filter, today time.Time) ListResponse[fleet.ActionRow] {
		return newListResponse(s.engine.Actions(snap, today, filter))
	})
}

func (s *Service) MaintenanceHistory(ctx context.Context, q Query) (ListResponse[fleet.MaintenanceRow], error) {
	return run(ctx, s, OpMaintenance, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) ListResponse[fleet.MaintenanceRow] {
		return newListResponse(s.engine.MaintenanceHistory(snap, filter))
	})
}

func (s *Service) Expenses(ctx context.Context, q Query) (fleet.ExpenseLedger, error) {
	return run(ctx, s, OpExpenses, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) fleet.ExpenseLedger {
		return s.engine.Expenses(snap, filter)
	})
}

func (s *Service) Penalties(ctx context.Context, q Query) (fleet.PenaltyReport, error) {
	return run(ctx, s, OpPenalties, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) fleet.PenaltyReport {
		return s.engine.Penalties(snap, filter)
	})
}

// Roster lists registered vehicles; start and end only bound the last fill-up.
func (s *Service) Roster(ctx context.Context, q Query) (fleet.Roster, error) {
	return run(ctx, s, OpRoster, q, func(snap *v1.Snapshot, filter fleet.Filter, _ time.Time) fleet.Roster {
		return s.engine.Roster(snap, filter)
	})
}

// Summary ignores every filter field.
func (s *Service) Summary(ctx context.Context) (fleet.FleetSummary, error) {
	return run(ctx, s, OpSummary, Query{}, func(snap *v1.Snapshot, _ fleet.Filter, today time.Time) fleet.FleetSummary {
		return s.engine.Summary(snap, today)
	})
}

// Warm computes every unfiltered result so the dashboards hit the cache.
// It returns the number of results computed or served.
func (s *Service) Warm(ctx context.Context) (int, error) {
	passes := []func(ctx context.Context) error{
		func(ctx context.Context) error { _, err := s.Efficiency(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Fraud(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.CostTrends(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Actions(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.MaintenanceHistory(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Expenses(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Penalties(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Roster(ctx, Query{}); return err },
		func(ctx context.Context) error { _, err := s.Summary(ctx); return err },
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, pass := range passes {
		g.Go(func() error { return pass(gctx) })
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("warm analytics cache: %w", err)
	}
	return len(passes), nil
}

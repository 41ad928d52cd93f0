package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aevon-lab/fleet-analytics/internal/aggregation"
	"github.com/aevon-lab/fleet-analytics/internal/analytics"
	fleet "github.com/aevon-lab/fleet-analytics/internal/core/analytics"
	corecfg "github.com/aevon-lab/fleet-analytics/internal/core/config"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage/snapshot"
	"github.com/spf13/cobra"
)

var reportKinds = []string{"efficiency", "fraud", "costs", "actions", "maintenance", "expenses", "penalties", "roster", "summary"}

type reportOptions struct {
	configPath   string
	snapshotPath string
	today        string
	query        analytics.Query
}

func reportCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:       "report <efficiency|fraud|costs|actions|maintenance|expenses|penalties|roster|summary>",
		Short:     "Compute one analytics result offline from a YAML snapshot",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: reportKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Optional configuration file for analytics parameters")
	flags.StringVarP(&opts.snapshotPath, "snapshot", "s", "", "Snapshot file (defaults to database.snapshot_path)")
	flags.StringVar(&opts.today, "today", "", "Reference date YYYY-MM-DD for license and renewal checks (defaults to now)")
	flags.StringVar(&opts.query.VehicleID, "vehicle", "", "Filter by vehicle ID")
	flags.StringVar(&opts.query.VehicleType, "type", "", "Filter by vehicle type")
	flags.StringVar(&opts.query.Agency, "agency", "", "Filter by agency")
	flags.StringVar(&opts.query.Chassis, "chassis", "", "Filter by chassis number")
	flags.StringVar(&opts.query.Start, "start", "", "Range start (YYYY-MM-DD or RFC 3339)")
	flags.StringVar(&opts.query.End, "end", "", "Range end (YYYY-MM-DD inclusive or RFC 3339)")

	return cmd
}

func runReport(ctx context.Context, out io.Writer, kind string, opts reportOptions) error {
	cfg, err := corecfg.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	params, err := cfg.Analytics.Params()
	if err != nil {
		return err
	}

	path := opts.snapshotPath
	if path == "" {
		path = cfg.Database.SnapshotPath
	}
	snap, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if opts.today != "" {
		now, err = time.Parse(time.DateOnly, opts.today)
		if err != nil {
			return fmt.Errorf("invalid --today %q: %w", opts.today, err)
		}
	}

	engine := fleet.NewEngine(params, aggregation.NewWorkerPool(cfg.Analytics.WorkerCount))
	svc := analytics.NewService(snapshot.NewMemoryStore(snap), engine, nil).
		WithClock(func() time.Time { return now })

	var result any
	switch kind {
	case "efficiency":
		result, err = svc.Efficiency(ctx, opts.query)
	case "fraud":
		result, err = svc.Fraud(ctx, opts.query)
	case "costs":
		result, err = svc.CostTrends(ctx, opts.query)
	case "actions":
		result, err = svc.Actions(ctx, opts.query)
	case "maintenance":
		result, err = svc.MaintenanceHistory(ctx, opts.query)
	case "expenses":
		result, err = svc.Expenses(ctx, opts.query)
	case "penalties":
		result, err = svc.Penalties(ctx, opts.query)
	case "roster":
		result, err = svc.Roster(ctx, opts.query)
	case "summary":
		result, err = svc.Summary(ctx)
	default:
		return fmt.Errorf("unknown report %q", kind)
	}
	if err != nil {
		return fmt.Errorf("compute %s report: %w", kind, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

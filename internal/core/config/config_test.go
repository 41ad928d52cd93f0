package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	requireNoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	requireNoError(t, err)

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Database.Backend != BackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.Database.Backend)
	}

	params, err := cfg.Analytics.Params()
	requireNoError(t, err)
	if params.Lookback != 7*24*time.Hour {
		t.Fatalf("expected 7d lookback, got %s", params.Lookback)
	}
	if !params.FraudThreshold.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected fraud threshold 400, got %s", params.FraudThreshold)
	}
	if params.InternalOwnership != "JT" {
		t.Fatalf("expected JT ownership label, got %q", params.InternalOwnership)
	}
	if cfg.Cache.TTLDuration() != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %s", cfg.Cache.TTLDuration())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
  mode: "debug"
database:
  backend: "snapshot"
  snapshot_path: "/tmp/fleet.yaml"
analytics:
  lookback: "14d"
  fraud_baseline: 9.5
  maintenance_mileage_limit: 7500
  worker_count: 4
cache:
  backend: "redis"
  ttl: "1m"
  redis:
    addr: "redis:6379"
refresher:
  interval: "30s"
`)

	cfg, err := Load(cfgPath)
	requireNoError(t, err)

	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Database.Backend != BackendSnapshot || cfg.Database.SnapshotPath != "/tmp/fleet.yaml" {
		t.Fatalf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.KeyPrefix != "fleet:analytics:" {
		t.Fatalf("unexpected redis config %+v", cfg.Cache.Redis)
	}

	params, err := cfg.Analytics.Params()
	requireNoError(t, err)
	if params.Lookback != 14*24*time.Hour {
		t.Fatalf("expected 14d lookback, got %s", params.Lookback)
	}
	if !params.FraudBaseline.Equal(decimal.RequireFromString("9.5")) {
		t.Fatalf("expected baseline 9.5, got %s", params.FraudBaseline)
	}
	if !params.MaintenanceMileageLimit.Equal(decimal.NewFromInt(7500)) {
		t.Fatalf("expected mileage limit 7500, got %s", params.MaintenanceMileageLimit)
	}

	interval, timeout := cfg.Refresher.Durations()
	if interval != 30*time.Second || timeout != 30*time.Second {
		t.Fatalf("unexpected refresher durations %s / %s", interval, timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("FLEET_SERVER__PORT", "7070")
	t.Setenv("FLEET_CACHE__REDIS__DB", "3")

	cfg, err := Load(cfgPath)
	requireNoError(t, err)

	if cfg.Server.Port != 7070 {
		t.Fatalf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Cache.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Cache.Redis.DB)
	}
}

func TestLoad_InvalidConfigFailsStartup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "server port",
			body:    "server:\n  port: -1\n",
			wantErr: "invalid server.port",
		},
		{
			name:    "unknown backend",
			body:    "database:\n  backend: \"sqlite\"\n",
			wantErr: "unsupported database.backend",
		},
		{
			name:    "snapshot without path",
			body:    "database:\n  backend: \"snapshot\"\n  snapshot_path: \"\"\n",
			wantErr: "database.snapshot_path is required",
		},
		{
			name:    "bad lookback",
			body:    "analytics:\n  lookback: \"soon\"\n",
			wantErr: "analytics.lookback",
		},
		{
			name:    "inverted efficiency bounds",
			body:    "analytics:\n  efficiency_lower_bound: 50\n",
			wantErr: "efficiency_upper_bound must be >",
		},
		{
			name:    "fraud sample too small",
			body:    "analytics:\n  fraud_sample_size: 1\n",
			wantErr: "fraud_sample_size must be >= 2",
		},
		{
			name:    "bad cache ttl",
			body:    "cache:\n  ttl: \"nope\"\n",
			wantErr: "invalid cache.ttl",
		},
		{
			name:    "unknown cache backend",
			body:    "cache:\n  backend: \"memcached\"\n",
			wantErr: "unsupported cache.backend",
		},
		{
			name:    "refresher without cache",
			body:    "cache:\n  enabled: false\n",
			wantErr: "refresher requires cache.enabled",
		},
		{
			name:    "bad refresher interval",
			body:    "refresher:\n  interval: \"0s\"\n",
			wantErr: "refresher.interval must be > 0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Fatalf("expected file load error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

package ingestion

import (
	"context"

	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"github.com/aevon-lab/fleet-analytics/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
)

// Record kinds accepted by POST /v1/records/:kind.
const (
	KindVehicles    = "vehicles"
	KindFuel        = "fuel"
	KindMaintenance = "maintenance"
	KindLicenses    = "licenses"
	KindOwnerships  = "ownerships"
	KindAllocations = "allocations"
	KindPenalties   = "penalties"
)

// Invalidator drops derived results that new records make stale.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	store            storage.RecordWriter
	invalidator      Invalidator
	maxBodySizeBytes int
	ingested         metric.Int64Counter
}

// NewService creates the ingestion service. invalidator may be nil.
func NewService(store storage.RecordWriter, invalidator Invalidator, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}

	ingested, _ := telemetry.Meter("fleet-analytics/ingestion").Int64Counter("fleet.ingest.records",
		metric.WithDescription("Records accepted by the ingestion API"),
	)

	return &Service{
		store:            store,
		invalidator:      invalidator,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		ingested:         ingested,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/records/:kind", s.IngestHandler)
}

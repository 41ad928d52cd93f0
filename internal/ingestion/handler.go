package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	httperr "github.com/aevon-lab/fleet-analytics/internal/core/errors"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist record"
	msgDuplicateRecord = "Record already exists"
	msgUnknownVehicle  = "Vehicle is not registered"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// validatable is implemented by every v1 record type.
type validatable interface {
	Validate() error
}

// IngestHandler handles POST /v1/records/:kind
func (s *Service) IngestHandler(c *gin.Context) {
	kind := c.Param("kind")

	payloadSize, err := s.readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}

	rec, err := s.ingest(c, kind)
	if err != nil {
		writeError(c, err)
		return
	}

	s.ingested.Add(c.Request.Context(), 1, metric.WithAttributes(attribute.String("kind", kind)))
	slog.Info("Received Record", "kind", kind, "payload_size", payloadSize)

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(c.Request.Context()); err != nil {
			slog.Warn("Failed to invalidate analytics cache", "kind", kind, "error", err)
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "kind": kind, "record": rec})
}

// readBody enforces the body size limit and rewinds the body for binding.
func (s *Service) readBody(c *gin.Context) (int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return len(bodyBytes), nil
}

// ingest dispatches on kind and returns the persisted record.
func (s *Service) ingest(c *gin.Context, kind string) (interface{}, *ingestionError) {
	ctx := c.Request.Context()

	switch kind {
	case KindVehicles:
		var rec v1.Vehicle
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveVehicle(ctx, &rec) })
	case KindFuel:
		var rec v1.FuelEvent
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveFuelEvent(ctx, &rec) })
	case KindMaintenance:
		var rec v1.MaintenanceEvent
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveMaintenanceEvent(ctx, &rec) })
	case KindLicenses:
		var rec v1.LicenseRecord
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveLicense(ctx, &rec) })
	case KindOwnerships:
		var rec v1.OwnershipRecord
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveOwnership(ctx, &rec) })
	case KindAllocations:
		var rec v1.AllocationRecord
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveAllocation(ctx, &rec) })
	case KindPenalties:
		var rec v1.TrafficPenalty
		return &rec, persist(ctx, c, &rec, &rec.VehicleID, func(ctx context.Context) error { return s.store.SaveTrafficPenalty(ctx, &rec) })
	}

	return nil, &ingestionError{
		statusCode: http.StatusNotFound,
		errorType:  httperr.HttpUnknownKindError,
		message:    "Unknown record kind",
		details: map[string]interface{}{
			"kind": kind,
			"supported": []string{
				KindVehicles, KindFuel, KindMaintenance, KindLicenses,
				KindOwnerships, KindAllocations, KindPenalties,
			},
		},
	}
}

// persist binds the body into rec, canonicalizes its vehicle ID, validates
// it and hands it to save.
func persist(ctx context.Context, c *gin.Context, rec validatable, vehicleID *string, save func(ctx context.Context) error) *ingestionError {
	if err := c.ShouldBindJSON(rec); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    err.Error(),
		}
	}

	*vehicleID = v1.NormalizeVehicleID(*vehicleID)

	if err := rec.Validate(); err != nil {
		slog.Warn("Record validation failed", "error", err, "vehicle_id", *vehicleID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRecordError,
			message:    err.Error(),
		}
	}

	if err := save(ctx); err != nil {
		return mapStoreError(err, *vehicleID)
	}
	return nil
}

func mapStoreError(err error, vehicleID string) *ingestionError {
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		slog.Info("Duplicate record rejected", "vehicle_id", vehicleID)
		return &ingestionError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpDuplicateRecord,
			message:    msgDuplicateRecord,
		}
	case errors.Is(err, storage.ErrUnknownVehicle):
		return &ingestionError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpUnknownVehicleError,
			message:    msgUnknownVehicle,
			details:    map[string]interface{}{"vehicle_id": vehicleID},
		}
	case errors.Is(err, v1.ErrInvalidRecord):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRecordError,
			message:    err.Error(),
		}
	}

	slog.Error("Failed to persist record", "error", err, "vehicle_id", vehicleID)
	return &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}

package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/aevon-lab/fleet-analytics/internal/api/v1"
	httperr "github.com/aevon-lab/fleet-analytics/internal/core/errors"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	storagemocks "github.com/aevon-lab/fleet-analytics/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	calls int
	err   error
}

func (i *countingInvalidator) Invalidate(context.Context) error {
	i.calls++
	return i.err
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func post(r *gin.Engine, kind, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/records/"+kind, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestIngestHandler_FuelSuccess(t *testing.T) {
	store := storagemocks.NewRecordWriter(t)
	store.EXPECT().
		SaveFuelEvent(mock.Anything, mock.MatchedBy(func(e *v1.FuelEvent) bool {
			return e.VehicleID == "ABC123" && e.FuelAmount.Equal(decimal.RequireFromString("20.5"))
		})).
		RunAndReturn(func(_ context.Context, e *v1.FuelEvent) error {
			e.FuelID = 42
			return nil
		}).
		Once()

	inv := &countingInvalidator{}
	r := newRouter(NewService(store, inv, 1))

	resp := post(r, KindFuel, `{
		"vehicle_id": "abc-123",
		"timestamp": "2026-03-01T09:00:00Z",
		"odometer_reading": 1000,
		"fuel_amount": "20.5",
		"cost": 100
	}`)

	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())
	require.Equal(t, 1, inv.calls)

	var body struct {
		Status string       `json:"status"`
		Kind   string       `json:"kind"`
		Record v1.FuelEvent `json:"record"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "accepted", body.Status)
	require.Equal(t, int64(42), body.Record.FuelID)
	require.Equal(t, "ABC123", body.Record.VehicleID)
}

func TestIngestHandler_EveryKindReachesItsStore(t *testing.T) {
	tests := []struct {
		kind   string
		body   string
		expect func(store *storagemocks.RecordWriter)
	}{
		{
			kind: KindVehicles,
			body: `{"vehicle_id":"ن ص ١٢٣","vehicle_type":"Van"}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveVehicle(mock.Anything, &v1.Vehicle{VehicleID: "NC123", VehicleType: "Van"}).Return(nil).Once()
			},
		},
		{
			kind: KindMaintenance,
			body: `{"vehicle_id":"NC123","timestamp":"2026-03-01T09:00:00Z","odometer_reading":5000,"maintenance_type":"Oil","cost":80}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveMaintenanceEvent(mock.Anything, mock.AnythingOfType("*v1.MaintenanceEvent")).Return(nil).Once()
			},
		},
		{
			kind: KindLicenses,
			body: `{"vehicle_id":"NC123","start_date":"2026-01-01T00:00:00Z","end_date":"2027-01-01T00:00:00Z"}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveLicense(mock.Anything, mock.AnythingOfType("*v1.LicenseRecord")).Return(nil).Once()
			},
		},
		{
			kind: KindOwnerships,
			body: `{"vehicle_id":"NC123","ownership":"JT"}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveOwnership(mock.Anything, mock.AnythingOfType("*v1.OwnershipRecord")).Return(nil).Once()
			},
		},
		{
			kind: KindAllocations,
			body: `{"vehicle_id":"NC123","agency":"North","condition":"UnderMaintenance"}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveAllocation(mock.Anything, mock.AnythingOfType("*v1.AllocationRecord")).Return(nil).Once()
			},
		},
		{
			kind: KindPenalties,
			body: `{"vehicle_id":"NC123","timestamp":"2026-03-01T09:00:00Z","location":"Ring Road","cost":250}`,
			expect: func(store *storagemocks.RecordWriter) {
				store.EXPECT().SaveTrafficPenalty(mock.Anything, mock.AnythingOfType("*v1.TrafficPenalty")).Return(nil).Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			store := storagemocks.NewRecordWriter(t)
			tc.expect(store)

			resp := post(newRouter(NewService(store, nil, 1)), tc.kind, tc.body)
			require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())
		})
	}
}

func TestIngestHandler_ErrorMapping(t *testing.T) {
	validFuel := `{"vehicle_id":"ABC123","timestamp":"2026-03-01T09:00:00Z","odometer_reading":1000,"fuel_amount":20,"cost":100}`

	tests := []struct {
		name              string
		kind              string
		body              string
		storeErr          error
		expectedStatus    int
		expectedErrorType string
	}{
		{
			name:              "unknown kind",
			kind:              "tyres",
			body:              validFuel,
			expectedStatus:    http.StatusNotFound,
			expectedErrorType: httperr.HttpUnknownKindError,
		},
		{
			name:              "malformed json",
			kind:              KindFuel,
			body:              `{"vehicle_id":`,
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidJsonError,
		},
		{
			name:              "negative fuel amount",
			kind:              KindFuel,
			body:              `{"vehicle_id":"ABC123","timestamp":"2026-03-01T09:00:00Z","fuel_amount":-1,"cost":10}`,
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidRecordError,
		},
		{
			name:              "unknown condition",
			kind:              KindAllocations,
			body:              `{"vehicle_id":"ABC123","agency":"North","condition":"Scrapped"}`,
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidRecordError,
		},
		{
			name:              "duplicate",
			kind:              KindFuel,
			body:              validFuel,
			storeErr:          fmt.Errorf("save fuel event: %w", storage.ErrDuplicate),
			expectedStatus:    http.StatusConflict,
			expectedErrorType: httperr.HttpDuplicateRecord,
		},
		{
			name:              "unregistered vehicle",
			kind:              KindFuel,
			body:              validFuel,
			storeErr:          fmt.Errorf("save fuel event: %w", storage.ErrUnknownVehicle),
			expectedStatus:    http.StatusNotFound,
			expectedErrorType: httperr.HttpUnknownVehicleError,
		},
		{
			name:              "store failure",
			kind:              KindFuel,
			body:              validFuel,
			storeErr:          errors.New("connection refused"),
			expectedStatus:    http.StatusInternalServerError,
			expectedErrorType: httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := storagemocks.NewRecordWriter(t)
			if tc.storeErr != nil {
				store.EXPECT().SaveFuelEvent(mock.Anything, mock.Anything).Return(tc.storeErr).Once()
			}

			inv := &countingInvalidator{}
			resp := post(newRouter(NewService(store, inv, 1)), tc.kind, tc.body)

			require.Equal(t, tc.expectedStatus, resp.Code, resp.Body.String())
			require.Equal(t, 0, inv.calls)

			var body httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.expectedErrorType, body.ErrorType)
		})
	}
}

func TestIngestHandler_BodyTooLarge(t *testing.T) {
	store := storagemocks.NewRecordWriter(t)
	r := newRouter(NewService(store, nil, 1))

	big := `{"vehicle_id":"ABC123","vehicle_type":"` + strings.Repeat("x", 1024*1024) + `"}`
	resp := post(r, KindVehicles, big)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestIngestHandler_InvalidateFailureDoesNotFailRequest(t *testing.T) {
	store := storagemocks.NewRecordWriter(t)
	store.EXPECT().SaveOwnership(mock.Anything, mock.Anything).Return(nil).Once()

	inv := &countingInvalidator{err: errors.New("redis unavailable")}
	resp := post(newRouter(NewService(store, inv, 1)), KindOwnerships, `{"vehicle_id":"ABC123","ownership":"Leased"}`)

	require.Equal(t, http.StatusAccepted, resp.Code)
	require.Equal(t, 1, inv.calls)
}

func TestNewService_PanicsWithoutStore(t *testing.T) {
	require.Panics(t, func() { NewService(nil, nil, 1) })
}

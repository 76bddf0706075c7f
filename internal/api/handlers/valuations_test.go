package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	"github.com/donaldgifford/vehicle-valuator/internal/store/mocks"
	"github.com/donaldgifford/vehicle-valuator/internal/valuation"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newOrchestrator() *valuation.Orchestrator {
	return valuation.NewOrchestrator(
		valuation.WithClock(func() time.Time { return fixedNow }),
		valuation.WithIDGenerator(func() string { return "val-1" }),
	)
}

func camryBody() map[string]any {
	return map[string]any{
		"vehicle":      map[string]any{"year": 2020, "make": "Toyota", "model": "Camry"},
		"mileage":      45000,
		"condition":    "good",
		"zip":          "90210",
		"features":     []string{"sunroof"},
		"title_status": "clean",
	}
}

func TestCreateValuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       func() map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid request",
			body:       camryBody,
			wantStatus: http.StatusOK,
		},
		{
			name: "missing make",
			body: func() map[string]any {
				b := camryBody()
				b["vehicle"] = map[string]any{"year": 2020, "model": "Camry"}
				return b
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.CodeMissingField,
		},
		{
			name: "year out of range",
			body: func() map[string]any {
				b := camryBody()
				b["vehicle"] = map[string]any{"year": 1899, "make": "Toyota", "model": "Camry"}
				return b
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.CodeOutOfRange,
		},
		{
			name: "check digit mismatch",
			body: func() map[string]any {
				b := camryBody()
				b["vehicle"] = map[string]any{
					"vin": "1HGCM82643A004352", "year": 2020, "make": "Toyota", "model": "Camry",
				}
				return b
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   domain.CodeCheckDigitFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewValuationsHandler(newOrchestrator(), mocks.NewMockStore(t))
			_, api := humatest.New(t)
			handlers.RegisterValuationRoutes(api, h)

			resp := api.Post("/api/v1/valuations", tt.body())
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())

			if tt.wantCode != "" {
				assert.Contains(t, resp.Body.String(), tt.wantCode)
				return
			}

			var got domain.ValuationResult
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, "val-1", got.ID)
			assert.Equal(t, domain.MethodDepreciation, got.BaseMethod)
			assert.GreaterOrEqual(t, got.FinalValue, valuation.DefaultFinalFloor)
			assert.LessOrEqual(t, got.PriceRange.Low, got.FinalValue)
			assert.GreaterOrEqual(t, got.PriceRange.High, got.FinalValue)
			assert.NotEmpty(t, got.CorrelationID)
			assert.Equal(t, got.CorrelationID, resp.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestCreateValuation_KeepsCallerCorrelationID(t *testing.T) {
	t.Parallel()

	h := handlers.NewValuationsHandler(newOrchestrator(), mocks.NewMockStore(t))
	_, api := humatest.New(t)
	handlers.RegisterValuationRoutes(api, h)

	body := camryBody()
	body["correlation_id"] = "dealer-42"

	resp := api.Post("/api/v1/valuations", body)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "dealer-42", resp.Header().Get("X-Correlation-ID"))
}

func TestListValuations(t *testing.T) {
	t.Parallel()

	rows := []domain.ValuationSummary{
		{ValuationID: "val-1", Year: 2020, Make: "Toyota", Model: "Camry", FinalValue: 21500},
	}

	tests := []struct {
		name       string
		path       string
		setup      func(ms *mocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "filters pass through",
			path: "/api/v1/valuations?make=toyota&min_confidence=50&fallback_only=true&limit=10",
			setup: func(ms *mocks.MockStore) {
				ms.EXPECT().
					ListValuations(mock.Anything, mock.MatchedBy(func(q *store.ValuationQuery) bool {
						return q.Make != nil && *q.Make == "toyota" &&
							q.MinConfidence != nil && *q.MinConfidence == 50 &&
							q.FallbackOnly && q.Limit == 10
					})).
					Return(rows, 1, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name: "since parsed",
			path: "/api/v1/valuations?since=2025-06-01T00:00:00Z",
			setup: func(ms *mocks.MockStore) {
				ms.EXPECT().
					ListValuations(mock.Anything, mock.MatchedBy(func(q *store.ValuationQuery) bool {
						return q.Since != nil && q.Since.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
					})).
					Return(nil, 0, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"valuations":[]`,
		},
		{
			name:       "bad order_by",
			path:       "/api/v1/valuations?order_by=vin",
			setup:      func(*mocks.MockStore) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   domain.CodeInvalidEnum,
		},
		{
			name:       "bad since",
			path:       "/api/v1/valuations?since=yesterday",
			setup:      func(*mocks.MockStore) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   domain.CodeOutOfRange,
		},
		{
			name: "store error",
			path: "/api/v1/valuations",
			setup: func(ms *mocks.MockStore) {
				ms.EXPECT().ListValuations(mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "listing valuations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			tt.setup(ms)

			_, api := humatest.New(t)
			handlers.RegisterValuationRoutes(api, handlers.NewValuationsHandler(newOrchestrator(), ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestGetValuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rec        *domain.AuditRecord
		err        error
		wantStatus int
	}{
		{name: "found", rec: &domain.AuditRecord{ValuationID: "val-1", Make: "Toyota"}, wantStatus: http.StatusOK},
		{name: "not found", err: store.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store error", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			ms.EXPECT().GetValuation(mock.Anything, "val-1").Return(tt.rec, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterValuationRoutes(api, handlers.NewValuationsHandler(newOrchestrator(), ms))

			resp := api.Get("/api/v1/valuations/val-1")
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.rec != nil {
				assert.Contains(t, resp.Body.String(), `"valuation_id":"val-1"`)
			}
		})
	}
}

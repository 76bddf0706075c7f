package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
	"github.com/donaldgifford/vehicle-valuator/internal/notify"
	notifyMocks "github.com/donaldgifford/vehicle-valuator/internal/notify/mocks"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	"github.com/donaldgifford/vehicle-valuator/internal/store/mocks"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

func storedRecord(t *testing.T) *domain.AuditRecord {
	t.Helper()

	r := domain.ValuationResult{
		ID:         "val-1",
		Vehicle:    domain.Vehicle{Year: 2020, Make: "Toyota", Model: "Camry", Trim: "SE"},
		ZIP:        "90210",
		BaseValue:  22000,
		BaseMethod: domain.MethodMarket,
		Adjustments: []domain.Adjustment{
			{Factor: "Mileage", Amount: -500, Reason: "Above average mileage"},
		},
		TotalAdjustment: -500,
		FinalValue:      21500,
		PriceRange:      domain.PriceRange{Low: 20000, High: 23000},
		ConfidenceScore: 72,
		Confidence:      domain.ConfidenceExplanation{Score: 72, Level: domain.ConfidenceMedium},
		SourcesUsed:     []string{"local", "method:market"},
		Explanation:     "Based on 8 comparable listings.",
		CreatedAt:       fixedNow,
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	return &domain.AuditRecord{ValuationID: "val-1", Result: raw}
}

func TestReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rec        func(t *testing.T) *domain.AuditRecord
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "renders html",
			rec:        storedRecord,
			wantStatus: http.StatusOK,
			wantBody:   "2020 Toyota Camry SE",
		},
		{
			name:       "not found",
			err:        store.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "no stored result",
			rec: func(*testing.T) *domain.AuditRecord {
				return &domain.AuditRecord{ValuationID: "val-1"}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "no stored result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rec *domain.AuditRecord
			if tt.rec != nil {
				rec = tt.rec(t)
			}

			ms := mocks.NewMockStore(t)
			ms.EXPECT().GetValuation(mock.Anything, "val-1").Return(rec, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterReportRoutes(api, handlers.NewReportHandler(ms, notify.NewNoOpNotifier(nil), ""))

			resp := api.Get("/api/v1/valuations/val-1/report")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
			}
		})
	}
}

func TestNotify(t *testing.T) {
	t.Parallel()

	t.Run("sends payload with report link", func(t *testing.T) {
		t.Parallel()

		ms := mocks.NewMockStore(t)
		ms.EXPECT().GetValuation(mock.Anything, "val-1").Return(storedRecord(t), nil).Once()

		mn := notifyMocks.NewMockNotifier(t)
		mn.EXPECT().
			SendValuation(mock.Anything, mock.MatchedBy(func(p *notify.ValuationPayload) bool {
				return p.ValuationID == "val-1" &&
					p.Vehicle == "2020 Toyota Camry SE" &&
					p.FinalValue == "$21,500" &&
					p.PriceRange == "$20,000 to $23,000" &&
					p.ReportURL == "https://values.example.com/api/v1/valuations/val-1/report"
			})).
			Return(nil).Once()

		_, api := humatest.New(t)
		handlers.RegisterReportRoutes(api, handlers.NewReportHandler(ms, mn, "https://values.example.com/"))

		resp := api.Post("/api/v1/valuations/val-1/notify", map[string]any{})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"status":"sent"`)
	})

	t.Run("notifier failure is a bad gateway", func(t *testing.T) {
		t.Parallel()

		ms := mocks.NewMockStore(t)
		ms.EXPECT().GetValuation(mock.Anything, "val-1").Return(storedRecord(t), nil).Once()

		mn := notifyMocks.NewMockNotifier(t)
		mn.EXPECT().SendValuation(mock.Anything, mock.Anything).Return(errors.New("webhook 500")).Once()

		_, api := humatest.New(t)
		handlers.RegisterReportRoutes(api, handlers.NewReportHandler(ms, mn, ""))

		resp := api.Post("/api/v1/valuations/val-1/notify", map[string]any{})
		require.Equal(t, http.StatusBadGateway, resp.Code)
	})
}

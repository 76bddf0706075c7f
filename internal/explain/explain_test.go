package explain_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

func testResult() *domain.ValuationResult {
	miles := 45000
	return &domain.ValuationResult{
		Vehicle:    domain.Vehicle{Year: 2020, Make: "Toyota", Model: "Camry", Trim: "SE"},
		Mileage:    &miles,
		Condition:  domain.ConditionGood,
		ZIP:        "94103",
		BaseValue:  22000,
		BaseMethod: domain.MethodMarket,
		Adjustments: []domain.Adjustment{
			{Factor: "Mileage", Amount: -300, Reason: "r"},
			{Factor: "Condition", Amount: 0, Reason: "r"},
			{Factor: "Title", Amount: 0, Reason: "r"},
			{Factor: "Region", Amount: 660, Reason: "r"},
		},
		FinalValue:      22360,
		PriceRange:      domain.PriceRange{Low: 21000, High: 23700},
		ConfidenceScore: 78,
		Confidence:      domain.ConfidenceExplanation{Score: 78, Level: domain.ConfidenceMedium},
		ListingCount:    6,
	}
}

func TestDollars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$24,995", explain.Dollars(24995))
	assert.Equal(t, "$1,234,568", explain.Dollars(1234567.6))
	assert.Equal(t, "$500", explain.Dollars(500))
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(r *domain.ValuationResult)
		contains []string
		excludes []string
	}{
		{
			name: "market valuation",
			contains: []string{
				"This 2020 Toyota Camry SE is valued at $22,360 in ZIP 94103",
				"based on 4 key factors including region and mileage.",
				"median of 6 comparable listings",
				"Confidence: 78% (Medium).",
			},
			excludes: []string{"remote"},
		},
		{
			name: "floor without zip",
			mutate: func(r *domain.ValuationResult) {
				r.ZIP = ""
				r.BaseMethod = domain.MethodFloor
				r.Adjustments = r.Adjustments[1:2]
			},
			contains: []string{"valued at $22,360 based on 1 key factor.", "floor estimate"},
			excludes: []string{"ZIP", "including"},
		},
		{
			name: "fallback noted",
			mutate: func(r *domain.ValuationResult) {
				r.BaseMethod = domain.MethodDepreciation
				r.FallbackUsed = true
			},
			contains: []string{"depreciation model", "remote valuation service was unavailable"},
		},
		{
			name: "repeated factor named once",
			mutate: func(r *domain.ValuationResult) {
				r.Adjustments = []domain.Adjustment{
					{Factor: "Equipment", Amount: 900, Reason: "sunroof"},
					{Factor: "Equipment", Amount: 700, Reason: "leather"},
					{Factor: "Equipment", Amount: 500, Reason: "navigation"},
					{Factor: "Mileage", Amount: -300, Reason: "r"},
				}
			},
			contains: []string{"based on 4 key factors including equipment and mileage."},
			excludes: []string{"equipment, equipment", "equipment and equipment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := testResult()
			if tt.mutate != nil {
				tt.mutate(r)
			}
			got := explain.Text(r)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestTemplate_Explain(t *testing.T) {
	t.Parallel()

	r := testResult()
	got, err := explain.Template{}.Explain(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, explain.Text(r), got)
	assert.Equal(t, "template", explain.Template{}.Name())
}

func TestOpenAICompat_Explain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		want       string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "successful explanation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

				var req map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "llama3", req["model"])
				msgs := req["messages"].([]any)
				assert.Len(t, msgs, 2)
				user := msgs[1].(map[string]any)
				assert.Contains(t, user["content"], "$22,360")

				_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  A fair price.  "}}]}`))
			},
			want: "A fair price.",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("overloaded"))
			},
			wantErr:    true,
			wantErrMsg: "status 500",
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
			wantErr:    true,
			wantErrMsg: "empty choices",
		},
		{
			name: "blank content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices": [{"message": {"content": " "}}]}`))
			},
			wantErr:    true,
			wantErrMsg: "empty explanation",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`nope`))
			},
			wantErr:    true,
			wantErrMsg: "parsing response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			e := explain.NewOpenAICompat(srv.URL+"/", "llama3",
				explain.WithHTTPClient(srv.Client()),
				explain.WithAPIKey("sk-test"),
			)
			assert.Equal(t, "openai_compat", e.Name())

			got, err := e.Explain(context.Background(), testResult())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

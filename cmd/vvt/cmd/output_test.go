package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

func TestPrintValuation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printValuation(&buf, &domain.ValuationResult{
		ID:              "val-1",
		Vehicle:         domain.Vehicle{Year: 2020, Make: "Toyota", Model: "Camry"},
		BaseValue:       22000,
		BaseMethod:      domain.MethodMarket,
		FinalValue:      21500,
		PriceRange:      domain.PriceRange{Low: 20000, High: 23000},
		ConfidenceScore: 72,
		Confidence:      domain.ConfidenceExplanation{Level: domain.ConfidenceMedium},
		Adjustments:     []domain.Adjustment{{Factor: "Mileage", Amount: -500, Reason: "High mileage"}},
		FallbackUsed:    true,
		Explanation:     "Estimated from 8 listings.",
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"$21,500", "$20,000 - $23,000", "72/100 (Medium)", "Mileage", "-$500", "Fallback:", "Estimated from 8 listings."} {
		assert.Contains(t, out, want)
	}
}

func TestPrintJobRunsTable(t *testing.T) {
	t.Parallel()

	done := time.Date(2025, 6, 15, 3, 0, 5, 0, time.UTC)
	rows := 4

	var buf bytes.Buffer
	require.NoError(t, printJobRunsTable(&buf, []domain.JobRun{
		{JobName: "listing_cache_prune", Status: "succeeded", StartedAt: done.Add(-5 * time.Second), CompletedAt: &done, RowsAffected: &rows},
		{JobName: "audit_retention", Status: "running", StartedAt: done},
	}))

	out := buf.String()
	assert.Contains(t, out, "listing_cache_prune")
	assert.Contains(t, out, "2025-06-15 03:00:05")
	assert.Contains(t, out, "audit_retention")
}

func TestPrintVINResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vin  string
		want string
	}{
		{name: "valid", vin: "1HGCM82633A004352", want: "Valid:  yes"},
		{name: "invalid", vin: "1HGCM82643A004352", want: domain.CodeCheckDigitFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := vin.Validate(tt.vin)
			var buf bytes.Buffer
			require.NoError(t, printVINResult(&buf, &r))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestValueFlags_Request(t *testing.T) {
	t.Parallel()

	t.Run("from flags", func(t *testing.T) {
		t.Parallel()

		f := valueFlags{year: 2020, make: "Toyota", model: "Camry", mileage: 45000, zip: "90210", condition: "good"}
		req, err := f.request(&cobra.Command{})
		require.NoError(t, err)
		assert.Equal(t, "Toyota", req.Vehicle.Make)
		require.NotNil(t, req.Mileage)
		assert.Equal(t, 45000, *req.Mileage)
		assert.Equal(t, domain.Condition("good"), req.Condition)
	})

	t.Run("mileage omitted", func(t *testing.T) {
		t.Parallel()

		f := valueFlags{year: 2020, make: "Toyota", model: "Camry", mileage: -1}
		req, err := f.request(&cobra.Command{})
		require.NoError(t, err)
		assert.Nil(t, req.Mileage)
	})

	t.Run("request from stdin", func(t *testing.T) {
		t.Parallel()

		cmd := &cobra.Command{}
		cmd.SetIn(bytes.NewBufferString(`{"vehicle":{"year":2018,"make":"Ford","model":"F-150"},"zip":"75001"}`))

		f := valueFlags{requestFile: "-"}
		req, err := f.request(cmd)
		require.NoError(t, err)
		assert.Equal(t, "F-150", req.Vehicle.Model)
		assert.Equal(t, "75001", req.ZIP)
	})
}

func TestSigned(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+$1,200", signed(1200))
	assert.Equal(t, "-$350", signed(-350))
}

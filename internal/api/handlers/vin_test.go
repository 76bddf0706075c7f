package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
)

func TestValidateVIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		vin    string
		wantOK bool
	}{
		{name: "valid", vin: "1HGCM82633A004352", wantOK: true},
		{name: "lowercase is normalized", vin: "1hgcm82633a004352", wantOK: true},
		{name: "bad check digit", vin: "1HGCM82643A004352"},
		{name: "too short", vin: "1HGCM8263"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterVINRoutes(api)

			resp := api.Post("/api/v1/vin/validate", map[string]any{"vin": tt.vin})
			require.Equal(t, http.StatusOK, resp.Code)
			if tt.wantOK {
				assert.Contains(t, resp.Body.String(), `"ok":true`)
			} else {
				assert.Contains(t, resp.Body.String(), `"ok":false`)
			}
		})
	}
}

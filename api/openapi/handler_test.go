package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/api/openapi"
	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
)

func newServer() *echo.Echo {
	e := echo.New()
	api := humaecho.New(e, huma.DefaultConfig("Vehicle Valuator API", "test"))
	handlers.RegisterVINRoutes(api)
	openapi.RegisterRoutes(e, api)
	return e
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "json", path: "/swagger/swagger.json", wantStatus: http.StatusOK, wantType: "application/json", wantContain: "/api/v1/vin/validate"},
		{name: "yaml", path: "/swagger/swagger.yaml", wantStatus: http.StatusOK, wantType: "text/yaml", wantContain: "validate-vin"},
		{name: "ui", path: "/swagger/index.html", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "swagger-ui"},
		{name: "redirect", path: "/swagger", wantStatus: http.StatusMovedPermanently},
	}

	e := newServer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantContain != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContain)
			}
		})
	}
}

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		headers       map[string]string
		wantID        string
		wantLogFields []string
	}{
		{
			name:   "generates an ID",
			method: http.MethodGet,
			path:   "/api/v1/valuations",
			status: http.StatusOK,
			wantLogFields: []string{
				"method=GET",
				"path=/api/v1/valuations",
				"status=200",
				"duration_ms=",
				"correlation_id=",
			},
		},
		{
			name:          "logs POST",
			method:        http.MethodPost,
			path:          "/api/v1/valuations",
			status:        http.StatusCreated,
			wantLogFields: []string{"method=POST", "status=201"},
		},
		{
			name:          "uses correlation header",
			method:        http.MethodGet,
			path:          "/api/v1/valuations",
			status:        http.StatusOK,
			headers:       map[string]string{CorrelationHeader: "corr-123"},
			wantID:        "corr-123",
			wantLogFields: []string{"correlation_id=corr-123"},
		},
		{
			name:          "falls back to request ID header",
			method:        http.MethodGet,
			path:          "/api/v1/valuations",
			status:        http.StatusOK,
			headers:       map[string]string{RequestIDHeader: "req-9"},
			wantID:        "req-9",
			wantLogFields: []string{"correlation_id=req-9"},
		},
		{
			name:   "correlation header wins",
			method: http.MethodGet,
			path:   "/api/v1/valuations",
			status: http.StatusOK,
			headers: map[string]string{
				CorrelationHeader: "corr-1",
				RequestIDHeader:   "req-1",
			},
			wantID: "corr-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var fromCtx string
			handler := RequestLog(logger)(func(c echo.Context) error {
				fromCtx = CorrelationID(c.Request().Context())
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(c))

			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(CorrelationHeader)
			assert.NotEmpty(t, respID)
			assert.Equal(t, respID, fromCtx)
			assert.Equal(t, respID, c.Get("correlation_id"))
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, respID)
			}
		})
	}
}

func TestRequestLog_Probes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	status := http.StatusOK
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(status)
	})

	call := func(path string) int {
		before := buf.Len()
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
		return buf.Len() - before
	}

	assert.Positive(t, call("/readyz"), "first success is logged")
	assert.Zero(t, call("/readyz"), "repeated success is suppressed")
	assert.Positive(t, call("/healthz"), "each probe path is tracked separately")

	status = http.StatusServiceUnavailable
	assert.Positive(t, call("/readyz"), "failure is logged")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Positive(t, call("/readyz"), "every failure is logged")

	status = http.StatusOK
	assert.Positive(t, call("/readyz"), "recovery is logged")
	assert.Zero(t, call("/readyz"))
}

func TestRequestLog_NonProbeAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for range 3 {
		before := buf.Len()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/valuations", http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
		assert.Greater(t, buf.Len(), before)
	}
}

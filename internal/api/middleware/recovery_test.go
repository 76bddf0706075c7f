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

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
	}{
		{
			name:       "no panic",
			method:     http.MethodGet,
			path:       "/healthz",
			handler:    func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "string panic",
			method:     http.MethodGet,
			path:       "/api/v1/valuations/abc",
			handler:    func(echo.Context) error { panic("nil audit record") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic recovered", "nil audit record", "path=/api/v1/valuations/abc"},
		},
		{
			name:       "non-string panic",
			method:     http.MethodPost,
			path:       "/api/v1/valuations",
			handler:    func(echo.Context) error { panic(42) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"42", "method=POST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()

			err := Recovery(logger)(tt.handler)(e.NewContext(req, rec))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, rec.Body.String(), "internal server error")
			for _, s := range tt.wantLog {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRecovery_LogsCorrelationID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/boom", http.NoBody)
	req.Header.Set(CorrelationHeader, "corr-77")
	rec := httptest.NewRecorder()

	chain := RequestLog(logger)(Recovery(logger)(func(echo.Context) error {
		panic("boom")
	}))
	require.NoError(t, chain(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "correlation_id=corr-77")
}

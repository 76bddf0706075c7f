package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultPingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	deps    map[string]Pinger
	names   []string
	timeout time.Duration
}

// ReadyResponse is the readiness body. Failed lists unreachable
// dependencies in name order.
type ReadyResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

// NewHealthHandler creates a HealthHandler that is ready only when every
// named dependency answers Ping.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return &HealthHandler{deps: deps, names: names, timeout: defaultPingTimeout}
}

// Healthz returns 200 while the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz pings every dependency, each bounded by the ping timeout, and
// returns 503 naming all that failed.
func (h *HealthHandler) Readyz(c echo.Context) error {
	var failed []string
	for _, name := range h.names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		err := h.deps[name].Ping(ctx)
		cancel()
		if err != nil {
			c.Logger().Warnf("readiness: %s unreachable: %v", name, err)
			failed = append(failed, name)
		}
	}

	if len(failed) > 0 {
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "unavailable", Failed: failed})
	}
	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready"})
}

// Package middleware provides Echo middleware for the vehicle-valuator API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
)

// probeGauges holds the up/down gauge for each probe path. Probes and the
// scrape endpoint stay out of the request histograms.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

const scrapePath = "/metrics"

// Metrics returns Echo middleware that records request duration and count
// by method, route and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}

			if g, probe := probeGauges[route]; probe || route == scrapePath {
				err := next(c)
				if probe {
					g.Set(up(c.Response().Status))
				}
				return err
			}

			start := time.Now()
			err := next(c)

			labels := []string{c.Request().Method, route, strconv.Itoa(c.Response().Status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

func up(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}

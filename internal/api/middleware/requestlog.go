package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CorrelationHeader carries the correlation ID in requests and responses.
// RequestIDHeader is accepted as a fallback on the way in.
const (
	CorrelationHeader = "X-Correlation-ID"
	RequestIDHeader   = "X-Request-ID"
)

type correlationKey struct{}

// WithCorrelationID returns a copy of ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation ID stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// probePaths are logged on their first success and on every failure.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that assigns each request a correlation
// ID and logs it with structured fields. The ID is echoed in the response
// header and stored in the request context for handlers and the valuation
// pipeline.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var quiet sync.Map // probe path -> true once a success has been logged

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(CorrelationHeader)
			if id == "" {
				id = req.Header.Get(RequestIDHeader)
			}
			if id == "" {
				id = uuid.NewString()
			}

			c.Set("correlation_id", id)
			c.SetRequest(req.WithContext(WithCorrelationID(req.Context(), id)))
			c.Response().Header().Set(CorrelationHeader, id)

			err := next(c)

			path := req.URL.Path
			status := c.Response().Status
			ok := status < 400

			level := slog.LevelInfo
			if _, probe := probePaths[path]; probe {
				if ok {
					if _, seen := quiet.LoadOrStore(path, true); seen {
						return err
					}
				} else {
					quiet.Delete(path)
					level = slog.LevelWarn
				}
			}

			log.Log(req.Context(), level, "request",
				"method", req.Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"correlation_id", id,
			)

			return err
		}
	}
}

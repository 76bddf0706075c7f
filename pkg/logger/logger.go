// Package logger builds the service's slog.Logger: level and format come
// from config, every record carries the service name, and attributes that
// hold credentials are masked.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Service is stamped on every record as the "service" attribute.
const Service = "vehicle-valuator"

// Redacted replaces the value of a sensitive attribute.
const Redacted = "[redacted]"

// sensitive lists attribute key fragments whose values are never logged.
var sensitive = []string{"api_key", "apikey", "password", "webhook_url", "token", "secret"}

// New returns a logger writing to stderr. Level is one of debug, info, warn
// or error (default info); format is json or text (default text).
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", Service)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel converts a level name to slog.Level, case-insensitively.
// "warning" is accepted for warn. Anything unrecognized is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redact(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range sensitive {
		if strings.Contains(key, s) {
			return slog.String(a.Key, Redacted)
		}
	}
	return a
}

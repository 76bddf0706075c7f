package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier logs and discards notifications. It is used when no
// notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards valuations with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendValuation logs and discards v.
func (n *NoOpNotifier) SendValuation(_ context.Context, v *ValuationPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"valuation_id", v.ValuationID,
		"vehicle", v.Vehicle,
		"confidence", v.Confidence,
	)
	return nil
}

package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/config"
	"github.com/donaldgifford/vehicle-valuator/internal/telemetry"
)

// These tests replace the global provider, so they do not run in parallel.

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), &config.TelemetryConfig{}, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, telemetry.Tracer())
}

func TestSetup_EnabledUnreachableEndpoint(t *testing.T) {
	cfg := &config.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "192.0.2.1:4317",
		Insecure:    true,
		ServiceName: "vehicle-valuator-test",
		SampleRatio: 1,
	}

	shutdown, err := telemetry.Setup(context.Background(), cfg, "test")
	require.NoError(t, err, "the exporter connects lazily")

	_, span := telemetry.Tracer().Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

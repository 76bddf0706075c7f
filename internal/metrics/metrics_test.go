package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, ValuationsTotal)
	assert.NotNil(t, ValuationDuration)
	assert.NotNil(t, ValidationFailuresTotal)
	assert.NotNil(t, ConfidenceDistribution)
	assert.NotNil(t, FloorEstimatesTotal)
	assert.NotNil(t, ListingsFetchedTotal)
	assert.NotNil(t, ListingsDroppedTotal)
	assert.NotNil(t, ListingSourceErrorsTotal)
	assert.NotNil(t, ListingFetchDuration)
	assert.NotNil(t, ListingCacheHitsTotal)
	assert.NotNil(t, ListingCacheMissesTotal)
	assert.NotNil(t, RemoteCallsTotal)
	assert.NotNil(t, RemoteFallbacksTotal)
	assert.NotNil(t, AuditFailuresTotal)
	assert.NotNil(t, ExplainFailuresTotal)
	assert.NotNil(t, EventPublishFailuresTotal)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, CachePrunedTotal)
	assert.NotNil(t, AuditPrunedTotal)
	assert.NotNil(t, SchedulerJobFailuresTotal)
}

func TestValuationsTotal_ByMethod(t *testing.T) {
	t.Parallel()

	c := ValuationsTotal.WithLabelValues("metrics-test")
	before := testutil.ToFloat64(c)
	c.Inc()
	c.Inc()
	assert.InDelta(t, before+2, testutil.ToFloat64(c), 0.001)
}

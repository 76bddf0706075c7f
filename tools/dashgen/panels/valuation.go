package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const valuationDuration = "vv_valuation_duration_seconds"

// ValuationsByMethod charts completed valuations per second by base price
// method.
func ValuationsByMethod() *timeseries.PanelBuilder {
	return MultiSeries("Valuations by Method", "Completed valuations per second by base price method").
		WithTarget(PromQuery(`vv:valuations:rate5m`, "{{method}}", "A")).
		Unit("reqps")
}

// ValuationLatency charts end-to-end valuation latency.
func ValuationLatency() *timeseries.PanelBuilder {
	return MultiSeries("Valuation Latency", "End-to-end valuation duration percentiles").
		WithTarget(PromQuery(Quantile(0.50, valuationDuration), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, valuationDuration), "p95", "B")).
		Unit("s")
}

// ValidationFailures charts rejected requests by error code.
func ValidationFailures() *timeseries.PanelBuilder {
	return Series("Validation Failures", "Rejected valuation requests per second by error code").
		WithTarget(PromQuery(Rate("vv_validation_failures_total", "code"), "{{code}}", "A")).
		Unit("reqps")
}

// FloorEstimates charts valuations that resolved to the floor price.
func FloorEstimates() *timeseries.PanelBuilder {
	return Series("Floor Estimates", "Valuations resolved to the floor price per second").
		WithTarget(PromQuery(Rate("vv_floor_estimates_total"), "floor/s", "A")).
		Unit("reqps")
}

// ConfidenceDistribution shows confidence score buckets over the last hour.
func ConfidenceDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Confidence Distribution").
		Description("Distribution of valuation confidence scores (0-100) over the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(Increase("vv_confidence_score_bucket", "1h")+" by (le)", "{{le}}", "A")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(Steps(0)).
		ColorScheme(paletteClassic())
}

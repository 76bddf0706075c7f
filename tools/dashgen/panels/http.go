package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

const httpDuration = "vv_http_request_duration_seconds"

// RequestRate charts HTTP requests per second.
func RequestRate() *timeseries.PanelBuilder {
	return MultiSeries("Request Rate", "HTTP requests per second").
		WithTarget(PromQuery(`vv:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps")
}

// LatencyPercentiles charts p50, p95 and p99 HTTP latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return MultiSeries("Latency Percentiles", "HTTP request duration percentiles").
		WithTarget(PromQuery(Quantile(0.50, httpDuration), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, httpDuration), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, httpDuration), "p99", "C")).
		Unit("s")
}

// ErrorRate charts 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return Series("Error Rate %", "HTTP 5xx responses as a percentage of all requests").
		WithTarget(PromQuery(`vv:http_errors:rate5m / vv:http_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(Steps(1, 5)).
		ColorScheme(byThresholds())
}

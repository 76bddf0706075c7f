package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

// ListingsFlow charts raw listings fetched against listings the normalizer
// rejected.
func ListingsFlow() *timeseries.PanelBuilder {
	return MultiSeries("Listings Fetched vs Dropped", "Raw listings fetched per second and listings rejected by the normalizer").
		WithTarget(PromQuery(`vv:listings_fetched:rate5m`, "fetched", "A")).
		WithTarget(PromQuery(Rate("vv_listings_dropped_total"), "dropped", "B"))
}

// CacheHitRatio charts the share of listing lookups served from cache.
func CacheHitRatio() *timeseries.PanelBuilder {
	return Series("Listing Cache Hit %", "Share of listing lookups served from the cache").
		WithTarget(PromQuery(`vv:listing_cache_hit_ratio:rate5m * 100`, "hit %", "A")).
		Unit("percent").
		Min(0).
		Max(100)
}

// SourceErrors charts listing provider failures by source.
func SourceErrors() *timeseries.PanelBuilder {
	return Series("Listing Source Errors", "Listing provider failures per second by source").
		WithTarget(PromQuery(Rate("vv_listing_source_errors_total", "source"), "{{source}}", "A"))
}

// FetchLatency charts p95 listing provider latency.
func FetchLatency() *timeseries.PanelBuilder {
	return Series("Listing Fetch Latency (p95)", "95th percentile listing provider response time").
		WithTarget(PromQuery(Quantile(0.95, "vv_listing_fetch_duration_seconds"), "p95", "A")).
		Unit("s").
		Thresholds(Steps(2, 5))
}

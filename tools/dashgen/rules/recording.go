package rules

// RecordingRules pre-computes the rates shared by the dashboard and alerts.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("vv-recording-rules", RuleGroup{
		Name:     "vv-recording",
		Interval: "1m",
		Rules: []Rule{
			record("vv:http_requests:rate5m", `sum(rate(vv_http_requests_total[5m]))`),
			record("vv:http_errors:rate5m", `sum(rate(vv_http_requests_total{status=~"5.."}[5m]))`),
			record("vv:valuations:rate5m", `sum(rate(vv_valuations_total[5m])) by (method)`),
			record("vv:listings_fetched:rate5m", `sum(rate(vv_listings_fetched_total[5m]))`),
			record("vv:listing_cache_hit_ratio:rate5m",
				`sum(rate(vv_listing_cache_hits_total[5m])) / `+
					`clamp_min(sum(rate(vv_listing_cache_hits_total[5m])) + sum(rate(vv_listing_cache_misses_total[5m])), 1e-9)`),
			record("vv:remote_fallbacks:rate5m", `sum(rate(vv_remote_fallbacks_total[5m]))`),
		},
	})
}

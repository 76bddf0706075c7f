package main

import "errors"

// KnownMetrics is the set of metric names exported by vehicle-valuator
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"vv_http_request_duration_seconds":        true,
	"vv_http_request_duration_seconds_bucket": true,
	"vv_http_requests_total":                  true,

	// Health metrics.
	"vv_healthz_up": true,
	"vv_readyz_up":  true,

	// Valuation metrics.
	"vv_valuations_total":                  true,
	"vv_valuation_duration_seconds":        true,
	"vv_valuation_duration_seconds_bucket": true,
	"vv_validation_failures_total":         true,
	"vv_confidence_score":                  true,
	"vv_confidence_score_bucket":           true,
	"vv_floor_estimates_total":             true,

	// Listing metrics.
	"vv_listings_fetched_total":                true,
	"vv_listings_dropped_total":                true,
	"vv_listing_source_errors_total":           true,
	"vv_listing_fetch_duration_seconds":        true,
	"vv_listing_fetch_duration_seconds_bucket": true,
	"vv_listing_cache_hits_total":              true,
	"vv_listing_cache_misses_total":            true,

	// Collaborator metrics.
	"vv_remote_calls_total":                   true,
	"vv_remote_fallbacks_total":               true,
	"vv_audit_failures_total":                 true,
	"vv_explain_failures_total":               true,
	"vv_event_publish_failures_total":         true,
	"vv_notifications_sent_total":             true,
	"vv_notification_failures_total":          true,
	"vv_notification_duration_seconds":        true,
	"vv_notification_duration_seconds_bucket": true,

	// Maintenance metrics.
	"vv_cache_pruned_total":           true,
	"vv_audit_pruned_total":           true,
	"vv_scheduler_job_failures_total": true,

	// Recording rules.
	"vv:http_requests:rate5m":           true,
	"vv:http_errors:rate5m":             true,
	"vv:valuations:rate5m":              true,
	"vv:listings_fetched:rate5m":        true,
	"vv:listing_cache_hit_ratio:rate5m": true,
	"vv:remote_fallbacks:rate5m":        true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}

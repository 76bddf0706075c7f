package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CollaboratorFailures charts audit, explanation and event publish
// failures. None of them fail a valuation.
func CollaboratorFailures() *timeseries.PanelBuilder {
	return MultiSeries("Degraded Collaborators", "Failures of optional collaborators that degrade but never fail a valuation").
		WithTarget(PromQuery(Rate("vv_audit_failures_total"), "audit", "A")).
		WithTarget(PromQuery(Rate("vv_explain_failures_total"), "explain", "B")).
		WithTarget(PromQuery(Rate("vv_event_publish_failures_total"), "events", "C"))
}

// RemoteCalls charts remote delegate calls and local fallbacks.
func RemoteCalls() *timeseries.PanelBuilder {
	return Series("Remote Valuations", "Remote delegate calls and local fallbacks per second").
		WithTarget(PromQuery(Rate("vv_remote_calls_total"), "calls", "A")).
		WithTarget(PromQuery(`vv:remote_fallbacks:rate5m`, "fallbacks", "B"))
}

// NotificationFailures shows failed dealer notifications over 24h.
func NotificationFailures() *stat.PanelBuilder {
	return Stat("Notification Failures (24h)", "Failed dealer notifications in the last 24 hours",
		Increase("vv_notification_failures_total", "24h")).
		Height(TSHeight).
		Span(TSWidth).
		Thresholds(Steps(1, 5)).
		GraphMode(common.BigValueGraphModeArea)
}

// MaintenancePruned charts rows removed by scheduled jobs and job failures.
func MaintenancePruned() *timeseries.PanelBuilder {
	return Series("Maintenance", "Rows pruned per hour and scheduler job failures").
		WithTarget(PromQuery(Increase("vv_cache_pruned_total", "1h"), "cache rows", "A")).
		WithTarget(PromQuery(Increase("vv_audit_pruned_total", "1h"), "audit rows", "B")).
		WithTarget(PromQuery(Increase("vv_scheduler_job_failures_total", "1h")+" by (job)", "{{job}} failures", "C"))
}

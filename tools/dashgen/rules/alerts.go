package rules

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}

// AlertRules returns the operational alerts for vehicle-valuator.
func AlertRules() PrometheusRule {
	return newPrometheusRule("vv-alerts", RuleGroup{
		Name: "vv-alerts",
		Rules: []Rule{
			alert("VvDown", `absent(up{job="vehicle-valuator"})`, "2m", "critical",
				"Vehicle Valuator is down",
				"The vehicle-valuator job has been absent for more than 2 minutes."),
			alert("VvReadinessDown", `vv_readyz_up == 0`, "2m", "critical",
				"Vehicle Valuator readiness check is failing",
				"A dependency (database, listing cache or event bus) has been unreachable for more than 2 minutes."),
			alert("VvHighErrorRate", `vv:http_errors:rate5m / vv:http_requests:rate5m > 0.05`, "5m", "warning",
				"High HTTP error rate on Vehicle Valuator",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("VvRemoteFallbacks", `vv:remote_fallbacks:rate5m > 0.1`, "10m", "warning",
				"Remote valuation service is failing",
				"Valuations have been falling back to local computation for more than 10 minutes."),
			alert("VvListingSourceErrors", `sum(rate(vv_listing_source_errors_total[5m])) by (source) > 0`, "10m", "warning",
				"Listing provider errors detected",
				"A listing provider has been failing for more than 10 minutes; valuations degrade to depreciation."),
			alert("VvAuditFailures", `increase(vv_audit_failures_total[5m]) > 0`, "5m", "critical",
				"Audit records are not being written",
				"Valuations are completing without an audit trail."),
			alert("VvSchedulerJobFailures", `increase(vv_scheduler_job_failures_total[1h]) > 0`, "0m", "warning",
				"Scheduled maintenance job failed",
				"A listing cache or audit retention job failed in the last hour."),
			alert("VvNotificationFailures", `increase(vv_notification_failures_total[5m]) > 0`, "1m", "warning",
				"Notification delivery failures detected",
				"One or more valuation notifications (Discord webhooks) have failed to send."),
		},
	})
}

package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat shows the liveness probe gauge.
func HealthzStat() *stat.PanelBuilder {
	return Stat("Healthz", "Health check status (1 = ok, 0 = failing)", `vv_healthz_up`).
		Thresholds(Steps(1)).
		TextMode(common.BigValueTextModeValue)
}

// ReadyzStat shows the readiness probe gauge.
func ReadyzStat() *stat.PanelBuilder {
	return Stat("Readyz", "Readiness check status (1 = ready, 0 = a dependency is down)", `vv_readyz_up`).
		Thresholds(Steps(1)).
		TextMode(common.BigValueTextModeValue)
}

// FallbackShare shows the share of remote attempts in the last hour that
// fell back to the local pipeline.
func FallbackShare() *stat.PanelBuilder {
	return Stat("Remote Fallback %", "Share of remote valuation attempts that fell back to local computation (1h)",
		Increase("vv_remote_fallbacks_total", "1h")+` / clamp_min(`+Increase("vv_remote_calls_total", "1h")+`, 1) * 100`).
		Unit("percent").
		Thresholds(Steps(10, 50))
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return Stat("Uptime", "Time since process start", `time() - `+Sel("process_start_time_seconds")).
		Unit("s").
		Thresholds(Steps(0)).
		ColorMode(common.BigValueColorModeValue)
}

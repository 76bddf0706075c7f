// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/vehicle-valuator/tools/dashgen/panels"
)

// UID is the dashboard UID.
const UID = "vv-overview"

// BuildOverview constructs the Vehicle Valuator overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Vehicle Valuator Overview").
		Uid(UID).
		Tags([]string{"vv", "vehicle-valuator"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.FallbackShare()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Valuations").
		WithPanel(panels.ValuationsByMethod()).
		WithPanel(panels.ValuationLatency()).
		WithPanel(panels.ValidationFailures()).
		WithPanel(panels.FloorEstimates()).
		WithPanel(panels.ConfidenceDistribution()))

	b.WithRow(dashboard.NewRowBuilder("Listings").
		WithPanel(panels.ListingsFlow()).
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.SourceErrors()).
		WithPanel(panels.FetchLatency()))

	b.WithRow(dashboard.NewRowBuilder("Collaborators").
		WithPanel(panels.RemoteCalls()).
		WithPanel(panels.CollaboratorFailures()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.MaintenancePruned()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}

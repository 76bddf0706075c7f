// Package panels provides Grafana panel builders for vehicle-valuator
// metrics. Every query is scoped to the service's scrape job.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus scrape job label of the service.
const Job = "vehicle-valuator"

// Grid sizes on Grafana's 24-column layout.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth  = 12
	TSHeight = 8

	FullWidth = 24
)

// DSRef points a panel at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// Sel scopes metric to the service job: Sel("vv_readyz_up") is
// vv_readyz_up{job="vehicle-valuator"}.
func Sel(metric string) string {
	return metric + `{job="` + Job + `"}`
}

// Rate is the 5m per-second rate of a counter summed over instances,
// optionally split by the given labels.
func Rate(metric string, by ...string) string {
	expr := `sum(rate(` + Sel(metric) + `[5m]))`
	if len(by) > 0 {
		expr += " by (" + joinLabels(by) + ")"
	}
	return expr
}

// Increase is the counter increase over window summed over instances.
func Increase(metric, window string) string {
	return `sum(increase(` + Sel(metric) + `[` + window + `]))`
}

// Quantile is the q-th quantile of a histogram over 5m. metric is the
// histogram name without the _bucket suffix.
func Quantile(q float64, metric string) string {
	return fmt.Sprintf(`histogram_quantile(%.2f, sum(rate(%s[5m])) by (le))`, q, Sel(metric+"_bucket"))
}

func joinLabels(labels []string) string {
	out := labels[0]
	for _, l := range labels[1:] {
		out += ", " + l
	}
	return out
}

// Series returns a half-width line chart with the dashboard's default
// styling. Callers add targets and a unit.
func Series(title, description string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(Steps(0)).
		ColorScheme(paletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MultiSeries is Series with a table legend and a shared tooltip, for
// panels with several lines.
func MultiSeries(title, description string) *timeseries.PanelBuilder {
	return Series(title, description).
		Legend(common.NewVizLegendOptionsBuilder().
			DisplayMode(common.LegendDisplayModeTable).
			Placement(common.LegendPlacementBottom).
			Calcs([]string{"mean", "max"})).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending))
}

// Stat returns a quarter-width single value panel colored by thresholds.
func Stat(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		ColorScheme(byThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// Steps returns absolute thresholds. The first color applies from negative
// infinity; each following color starts at the matching value. With no
// values the panel is green throughout; one value is red below and green
// from it; two values are green, yellow from the first and red from the
// second.
func Steps(values ...float64) cog.Builder[dashboard.ThresholdsConfig] {
	var steps []dashboard.Threshold
	switch len(values) {
	case 0:
		steps = []dashboard.Threshold{{Color: "green"}}
	case 1:
		steps = []dashboard.Threshold{
			{Color: "red"},
			{Value: cog.ToPtr(values[0]), Color: "green"},
		}
	default:
		steps = []dashboard.Threshold{
			{Color: "green"},
			{Value: cog.ToPtr(values[0]), Color: "yellow"},
			{Value: cog.ToPtr(values[1]), Color: "red"},
		}
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(steps)
}

func byThresholds() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)
}

func paletteClassic() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)
}

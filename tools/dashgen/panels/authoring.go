package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LoginsByResult returns a timeseries panel of login attempts by outcome.
func LoginsByResult() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Logins").
		Description("Login attempts by result (success, failure, rate_limited)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			ByJob(`sum(rate(devlog_logins_total{%[1]s}[5m])) by (result)`),
			"{{result}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DraftsPurged returns a timeseries panel of stale drafts removed by the
// scheduler.
func DraftsPurged() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Drafts Purged").
		Description("Stale drafts removed per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			ByJob(`sum(increase(devlog_drafts_purged_total{%[1]s}[1h]))`),
			"drafts", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

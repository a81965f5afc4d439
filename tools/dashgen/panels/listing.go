package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ListingRate returns a timeseries panel of listing requests split by
// whether a category or search filter was applied.
func ListingRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listing Requests").
		Description("Post listing requests per second, filtered vs. unfiltered").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			ByJob(`sum(rate(devlog_listing_requests_total{%[1]s}[5m])) by (filtered)`),
			"filtered={{filtered}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingResults returns a timeseries panel of matching-post counts.
func ListingResults() *timeseries.PanelBuilder {
	quantile := func(q string) string {
		return ByJob(`histogram_quantile(` + q + `, sum(rate(devlog_listing_results_bucket{%[1]s}[5m])) by (le))`)
	}
	return timeseries.NewPanelBuilder().
		Title("Matching Posts").
		Description("Total posts matching each listing request").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile("0.50"), "p50", "A")).
		WithTarget(PromQuery(quantile("0.95"), "p95", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingStoreErrors returns a timeseries panel of failed listing queries.
func ListingStoreErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listing Store Errors").
		Description("Listing queries that failed in the post store").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(`devlog:listing_store_errors:rate5m`, "errors/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleBars)
}

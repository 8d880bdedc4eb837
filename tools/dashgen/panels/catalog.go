package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogPages returns a timeseries panel of listing pages fetched. A rise
// means the tracked product moved further down the catalog.
func CatalogPages() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Pages").
		Description("Listing pages fetched per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`sum(rate(`+WithJob("ot_catalog_pages_total")+`[30m])) * 3600`, "pages/h", "A")).
		Unit("short").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CatalogErrors returns a timeseries panel of catalog failures by kind
// (request, transport, status, malformed).
func CatalogErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Errors").
		Description("Failed page fetches per hour, by kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`sum by (kind) (ot:catalog_errors:rate5m) * 3600`, "{{kind}}", "A")).
		Unit("short").
		FillOpacity(20).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 4)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// CatalogLatency returns a timeseries panel of page request latency.
func CatalogLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Latency").
		Description("Listing request duration, p95").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(`+WithJob("ot_catalog_request_duration_seconds_bucket")+`[30m])) by (le))`,
			"p95", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

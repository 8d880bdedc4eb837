package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the control API request rate.
func RequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Request Rate").
		Description("Control API requests per second, probes and scrapes excluded").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`ot:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LatencyPercentiles returns a timeseries panel showing p50, p95 and p99
// control API latency. POST /api/v1/check runs a full tick, so this is
// dominated by catalog fetch time.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().
		Title("API Latency").
		Description("Control API request duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth)

	for i, q := range []float64{0.50, 0.95, 0.99} {
		expr := fmt.Sprintf(
			`histogram_quantile(%.2f, sum(rate(%s[5m])) by (le))`,
			q, WithJob("ot_http_request_duration_seconds_bucket"),
		)
		b = b.WithTarget(PromQuery(expr, fmt.Sprintf("p%d", int(q*100)), string(rune('A'+i))))
	}

	return b.
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ErrorRate returns a timeseries panel showing the control API 5xx rate as
// a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Error Rate %").
		Description("Control API 5xx responses as percentage of requests").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`ot:http_errors:rate5m / ot:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// TicksByOutcome returns a timeseries panel of tick outcomes (idle,
// notified, suppressed, reset, notify_failed, error).
func TicksByOutcome() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Ticks by Outcome").
		Description("Completed ticks per hour, split by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum by (outcome) (ot:ticks:rate5m) * 3600`, "{{outcome}}", "A")).
		Unit("short").
		FillOpacity(30).
		LineWidth(1).
		Stacking(common.NewStackingConfigBuilder().Mode(common.StackingModeNormal)).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// TickDuration returns a timeseries panel of tick duration percentiles.
func TickDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Tick Duration").
		Description("Wall time of one full scan, p50 and p95").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(`+WithJob("ot_tick_duration_seconds_bucket")+`[30m])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(`+WithJob("ot_tick_duration_seconds_bucket")+`[30m])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LastTickAge returns a stat panel showing time since the last tick. It turns
// yellow after two missed intervals and red after four.
func LastTickAge() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Tick").
		Description("Time since the last tick started").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - `+WithJob("ot_last_tick_timestamp_seconds"), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(2*DefaultIntervalSeconds, 4*DefaultIntervalSeconds)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// NextTickIn returns a stat panel showing time until the next scheduled tick.
func NextTickIn() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Tick").
		Description("Time until the next scheduled tick").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(WithJob("ot_scheduler_next_tick_timestamp_seconds")+` - time()`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

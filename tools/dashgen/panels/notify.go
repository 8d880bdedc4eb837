package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Notifications returns a timeseries panel of sent and failed notifications.
func Notifications() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications").
		Description("Offer messages delivered and failed").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(`+WithJob("ot_notifications_sent_total")+`[1h])`, "sent", "A")).
		WithTarget(PromQuery(`increase(`+WithJob("ot_notification_failures_total")+`[1h])`, "failed", "B")).
		Unit("short").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationLatency returns a timeseries panel of delivery duration.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Latency").
		Description("Time to deliver one message, p95").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(`+WithJob("ot_notification_duration_seconds_bucket")+`[6h])) by (le))`,
			"p95", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StateChanges returns a timeseries panel of record resets and store errors.
func StateChanges() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Record").
		Description("Record resets (offer ended or manual) and store errors").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(`+WithJob("ot_state_resets_total")+`[1h])`, "resets", "A")).
		WithTarget(PromQuery(`increase(`+WithJob("ot_state_errors_total")+`[1h])`, "errors", "B")).
		Unit("short").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

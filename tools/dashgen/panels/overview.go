package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upDownStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat returns a stat panel showing the liveness probe status.
func HealthzStat() *stat.PanelBuilder {
	return upDownStat("Healthz", "Liveness probe status (1 = ok, 0 = failing)", `ot_healthz_up`)
}

// ReadyzStat returns a stat panel showing whether the state store answers.
func ReadyzStat() *stat.PanelBuilder {
	return upDownStat("Readyz", "State store reachable (1 = ready, 0 = not ready)", `ot_readyz_up`)
}

// OfferActiveStat returns a stat panel showing whether the tracked product
// qualified as an offer on the last tick.
func OfferActiveStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Offer Active").
		Description("1 while the tracked product has a promotion in a tracked size").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`ot_offer_active`, "", "A")).
		Thresholds(ThresholdsGreyGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea).
		TextMode(common.BigValueTextModeValue)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - `+WithJob("process_start_time_seconds"), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

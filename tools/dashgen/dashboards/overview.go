// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/offer-tracker/tools/dashgen/panels"
)

// UID is the stable dashboard identifier.
const UID = "ot-overview"

// BuildOverview constructs the offer-tracker overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Offer Tracker").
		Uid(UID).
		Tags([]string{"ot", "offer-tracker"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.OfferActiveStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Ticks").
		WithPanel(panels.LastTickAge()).
		WithPanel(panels.NextTickIn()).
		WithPanel(panels.TicksByOutcome()).
		WithPanel(panels.TickDuration()))

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogPages()).
		WithPanel(panels.CatalogErrors()).
		WithPanel(panels.CatalogLatency()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.Notifications()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.StateChanges()))

	b.WithRow(dashboard.NewRowBuilder("Control API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}

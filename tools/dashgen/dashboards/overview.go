// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/devlog/tools/dashgen/panels"
)

// UID is the stable dashboard identifier.
const UID = "devlog-overview"

// BuildOverview constructs the DevLog Overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("DevLog Overview").
		Uid(UID).
		Tags([]string{"devlog"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.PublishedStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RequestsByPath()))

	b.WithRow(dashboard.NewRowBuilder("Listing").
		WithPanel(panels.ListingRate()).
		WithPanel(panels.ListingResults()).
		WithPanel(panels.ListingStoreErrors()))

	b.WithRow(dashboard.NewRowBuilder("Authoring").
		WithPanel(panels.LoginsByResult()).
		WithPanel(panels.DraftsPurged()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
)

func testPresentation() config.Presentation {
	p := config.DefaultPresentation()
	p.ServerName = "CelestiaMC"
	p.ServerAddress = "play.example.net"
	p.Icons.Brand = "B"
	p.Icons.Online = "ON"
	p.Icons.Offline = "OFF"
	p.Icons.Total = "TOT"
	p.ThumbnailURL = "https://cdn.example.net/thumb.gif"
	return p
}

func TestRenderStatus_Online(t *testing.T) {
	p := testPresentation()
	e := RenderStatus(onlineStatus("alex", "steve"), p)

	assert.Equal(t,
		"# B CelestiaMC\n"+
			"-# Play now on `play.example.net`\n"+
			"ON Online: ` 2 ` OFF Offline: ` 1 ` TOT Total Players: ` 5 `\n"+
			"-# Players on the server: alex, steve",
		e.Description)
	assert.Equal(t, p.Colors.Normal, e.Color)
	assert.Equal(t, p.ThumbnailURL, e.Thumbnail)
	assert.Empty(t, e.Fields)
}

func TestRenderStatus_OnlineEmptyHasNoPlayerLine(t *testing.T) {
	e := RenderStatus(onlineStatus(), testPresentation())
	assert.NotContains(t, e.Description, "Players on the server")
	assert.Contains(t, e.Description, "Online: ` 0 `")
}

func TestRenderStatus_Offline(t *testing.T) {
	e := RenderStatus(domain.Offline{PlayerStats: domain.Counters{UniquePlayers: 7, OfflinePlayers: 7}}, testPresentation())

	assert.Contains(t, e.Description, "OFF Server is offline")
	assert.NotContains(t, e.Description, "Play now")
	assert.Contains(t, e.Description, "Online: ` 0 ` OFF Offline: ` 7 ` TOT Total Players: ` 7 `")
}

func TestRenderStatus_NilRendersOffline(t *testing.T) {
	e := RenderStatus(nil, testPresentation())
	assert.Contains(t, e.Description, "Server is offline")
}

func TestRenderStatus_MaintenanceFields(t *testing.T) {
	p := testPresentation()
	tests := []struct {
		name      string
		maint     domain.MaintenanceInfo
		wantColor int
		wantName  string
		wantValue string
	}{
		{
			name:      "enabled with end",
			maint:     domain.MaintenanceInfo{Enabled: true, StartCron: "2025-06-01T03:00:00Z", EndCron: "2025-06-01T04:00:00Z"},
			wantColor: p.Colors.Maintenance,
			wantName:  fieldMaintenanceEnd,
			wantValue: "<t:1748750400:R>",
		},
		{
			name:      "enabled without end",
			maint:     domain.MaintenanceInfo{Enabled: true, StartCron: "2025-06-01T03:00:00Z"},
			wantColor: p.Colors.Maintenance,
		},
		{
			name:      "disabled with next start",
			maint:     domain.MaintenanceInfo{StartCron: "2025-06-01T03:00:00Z", EndCron: "2025-06-01T04:00:00Z"},
			wantColor: p.Colors.Normal,
			wantName:  fieldNextMaintenance,
			wantValue: "<t:1748746800:R>",
		},
		{
			name:      "unparseable passes through",
			maint:     domain.MaintenanceInfo{StartCron: "every full moon"},
			wantColor: p.Colors.Normal,
			wantName:  fieldNextMaintenance,
			wantValue: "every full moon",
		},
		{
			name:      "nothing scheduled",
			wantColor: p.Colors.Normal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := onlineStatus()
			st.Maint = tt.maint
			e := RenderStatus(st, p)

			assert.Equal(t, tt.wantColor, e.Color)
			if tt.wantName == "" {
				assert.Empty(t, e.Fields)
				return
			}
			require.Len(t, e.Fields, 1)
			assert.Equal(t, tt.wantName, e.Fields[0].Name)
			assert.Equal(t, tt.wantValue, e.Fields[0].Value)
			assert.True(t, e.Fields[0].Inline)
		})
	}
}

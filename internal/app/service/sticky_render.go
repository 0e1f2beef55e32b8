package service

import (
	"fmt"
	"strings"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
)

const (
	fieldMaintenanceEnd  = "📌 Maintenance End:"
	fieldNextMaintenance = "📌 Next Scheduled Maintenance"
)

// RenderStatus builds the sticky embed for status. A nil status renders as
// offline with zero counters.
func RenderStatus(status domain.ServerStatus, p config.Presentation) domain.Embed {
	if status == nil {
		status = domain.Offline{}
	}
	stats := status.Counters()
	players := status.OnlinePlayers()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n", p.Icons.Brand, p.ServerName)
	if status.IsOnline() {
		fmt.Fprintf(&b, "-# Play now on `%s`\n", p.ServerAddress)
	} else {
		fmt.Fprintf(&b, "%s Server is offline\n", p.Icons.Offline)
	}
	fmt.Fprintf(&b, "%s Online: ` %d ` %s Offline: ` %d ` %s Total Players: ` %d `",
		p.Icons.Online, len(players),
		p.Icons.Offline, stats.OfflinePlayers,
		p.Icons.Total, stats.UniquePlayers,
	)
	if status.IsOnline() && len(players) > 0 {
		fmt.Fprintf(&b, "\n-# Players on the server: %s", strings.Join(players, ", "))
	}

	embed := domain.Embed{
		Description: b.String(),
		Thumbnail:   p.ThumbnailURL,
		Color:       p.Colors.Normal,
	}

	m := status.Maintenance()
	if m.Enabled {
		embed.Color = p.Colors.Maintenance
	}
	if f, ok := maintenanceField(m); ok {
		embed.Fields = append(embed.Fields, f)
	}
	return embed
}

// maintenanceField picks at most one schedule field: the end time while
// maintenance is on, otherwise the next scheduled start.
func maintenanceField(m domain.MaintenanceInfo) (domain.EmbedField, bool) {
	if m.Enabled {
		if m.EndCron == "" {
			return domain.EmbedField{}, false
		}
		return domain.EmbedField{Name: fieldMaintenanceEnd, Value: relativeTimestamp(m.EndCron), Inline: true}, true
	}
	if m.StartCron == "" {
		return domain.EmbedField{}, false
	}
	return domain.EmbedField{Name: fieldNextMaintenance, Value: relativeTimestamp(m.StartCron), Inline: true}, true
}

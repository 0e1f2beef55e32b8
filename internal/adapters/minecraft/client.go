package minecraft

import (
	"context"
	"net/http"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

func (c *Client) FetchStatus(ctx context.Context) (domain.StatusReading, error) {
	var dto statusDTO
	if err := c.doJSON(ctx, http.MethodGet, "status", nil, &dto); err != nil {
		return domain.StatusReading{}, err
	}
	online := dto.Online == nil || *dto.Online
	r := domain.StatusReading{
		Online:         online,
		UniquePlayers:  dto.UniquePlayers,
		OfflinePlayers: dto.OfflinePlayers,
	}
	if online {
		r.Players = dto.Players
		if r.Players == nil {
			r.Players = []string{}
		}
		r.MaxPlayers = dto.MaxPlayers
	}
	return r, nil
}

func (c *Client) FetchMaintenance(ctx context.Context) (domain.MaintenanceInfo, error) {
	var dto maintenanceDTO
	if err := c.doJSON(ctx, http.MethodGet, "maintenance", nil, &dto); err != nil {
		return domain.MaintenanceInfo{}, err
	}
	return domain.MaintenanceInfo{
		Enabled:   dto.Enabled,
		StartCron: dto.Schedule.StartTime,
		EndCron:   dto.Schedule.EndTime,
	}, nil
}

// SendChat relays one Discord message into the game chat.
func (c *Client) SendChat(ctx context.Context, author, message string) error {
	return c.doJSON(ctx, http.MethodPost, "chat", chatRequest{DiscordUserName: author, Message: message}, nil)
}

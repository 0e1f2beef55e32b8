package minecraft

// statusDTO is GET /status. The game server spells the flag with a capital O;
// when it is missing a 2xx answer means the server is up.
type statusDTO struct {
	Online         *bool    `json:"Online"`
	Players        []string `json:"players"`
	MaxPlayers     uint     `json:"maxPlayers"`
	UniquePlayers  uint     `json:"uniquePlayers"`
	OfflinePlayers uint     `json:"offlinePlayers"`
}

// maintenanceDTO is GET /maintenance; only the fields the bridge reads.
type maintenanceDTO struct {
	Enabled  bool `json:"enabled"`
	Schedule struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	} `json:"schedule"`
}

type chatRequest struct {
	DiscordUserName string `json:"discordUserName"`
	Message         string `json:"message"`
}

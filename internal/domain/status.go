package domain

// MaintenanceInfo mirrors the game server's maintenance plugin state.
// An empty StartCron/EndCron means no schedule is known.
type MaintenanceInfo struct {
	Enabled   bool
	StartCron string
	EndCron   string
}

// Counters are carried by both status variants.
type Counters struct {
	UniquePlayers  uint
	OfflinePlayers uint
}

// ServerStatus is either Online or Offline. Use a type switch to read
// variant-only fields.
type ServerStatus interface {
	IsOnline() bool
	Maintenance() MaintenanceInfo
	Counters() Counters
	// OnlinePlayers returns the live player list; always empty when offline.
	OnlinePlayers() []string

	sealed()
}

type Online struct {
	Players     []string
	MaxPlayers  uint
	Maint       MaintenanceInfo
	PlayerStats Counters
}

func (Online) IsOnline() bool                 { return true }
func (o Online) Maintenance() MaintenanceInfo { return o.Maint }
func (o Online) Counters() Counters           { return o.PlayerStats }
func (o Online) OnlinePlayers() []string      { return o.Players }
func (Online) sealed()                        {}

// Offline has no player list and a max of zero; counters and maintenance are
// whatever was last known.
type Offline struct {
	Maint       MaintenanceInfo
	PlayerStats Counters
}

func (Offline) IsOnline() bool                 { return false }
func (o Offline) Maintenance() MaintenanceInfo { return o.Maint }
func (o Offline) Counters() Counters           { return o.PlayerStats }
func (Offline) OnlinePlayers() []string        { return nil }
func (Offline) sealed()                        {}

// OfflineFrom builds the fallback reading used when the live status can't be
// fetched. Nothing is reset: maintenance and counters come from prev, or the
// zero values when there is no previous reading.
func OfflineFrom(prev ServerStatus) Offline {
	if prev == nil {
		return Offline{}
	}
	return Offline{Maint: prev.Maintenance(), PlayerStats: prev.Counters()}
}

// Clone returns a copy that shares no slices with s.
func Clone(s ServerStatus) ServerStatus {
	switch v := s.(type) {
	case Online:
		v.Players = append([]string(nil), v.Players...)
		return v
	case Offline:
		return v
	default:
		return nil
	}
}

// StatusReading is one raw /status answer from the game server, before it is
// merged with maintenance state.
type StatusReading struct {
	Online         bool
	Players        []string
	MaxPlayers     uint
	UniquePlayers  uint
	OfflinePlayers uint
}

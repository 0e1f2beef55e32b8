package domain

const (
	EventAchievementUnlocked = "ACHIEVEMENT_UNLOCKED"
	EventChatMessage         = "CHAT_MESSAGE"
	EventTPSDropWarning      = "TPS_DROP_WARNING"
)

type PresenceType string

const (
	PresenceJoin  PresenceType = "join"
	PresenceLeave PresenceType = "leave"
)

type AchievementEvent struct {
	PlayerName       string
	AdvancementID    string
	AdvancementTitle string
	UUID             string
}

type ChatEvent struct {
	PlayerName string
	Message    string
	UUID       string
}

type PresenceEvent struct {
	PlayerName string
	PlayerUUID string
	Type       PresenceType
}

type TPSWarning struct {
	CurrentTPS float64
	Threshold  float64
}

// WebhookMessage is one outbound webhook execution.
type WebhookMessage struct {
	Content   string
	Username  string
	AvatarURL string
	Embed     *Embed
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title       string
	Description string
	Color       int
	Thumbnail   string
	Fields      []EmbedField
	Timestamp   string
}

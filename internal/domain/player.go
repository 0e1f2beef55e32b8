package domain

import "time"

// LinkedPlayer is a registry record. The game server creates it with a
// verification code; linking attaches a Discord id and flips Verified.
type LinkedPlayer struct {
	PlayerName       string
	UUID             string
	VerificationCode string
	Verified         bool
	DiscordID        *string
	CreatedAt        time.Time
}

// Linked reports the attached Discord id, if any.
func (p LinkedPlayer) Linked() (string, bool) {
	if p.DiscordID == nil || *p.DiscordID == "" {
		return "", false
	}
	return *p.DiscordID, true
}

// MemberProfile is the display identity of a guild member, as cached.
type MemberProfile struct {
	UserID      string
	DisplayName string
	AvatarURL   string
}

// Identity is what an outbound relay is rendered with.
type Identity struct {
	DisplayName string
	AvatarURL   string
	Player      *LinkedPlayer
	Member      *MemberProfile
}

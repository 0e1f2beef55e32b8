package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

// MemberFetcher reads guild member profiles over REST, bypassing the state
// cache so nicknames and avatars are current.
type MemberFetcher struct {
	s       *discordgo.Session
	guildID string
}

func NewMemberFetcher(s *discordgo.Session, guildID string) *MemberFetcher {
	return &MemberFetcher{s: s, guildID: guildID}
}

func (f *MemberFetcher) FetchMember(ctx context.Context, userID string) (domain.MemberProfile, error) {
	m, err := f.s.GuildMember(f.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return domain.MemberProfile{}, fmt.Errorf("member %s: %w", userID, notFoundOr(err))
	}
	return profileOf(m), nil
}

func profileOf(m *discordgo.Member) domain.MemberProfile {
	p := domain.MemberProfile{DisplayName: memberDisplayName(m, m.User)}
	if m.User != nil {
		p.UserID = m.User.ID
		p.AvatarURL = m.AvatarURL("")
	}
	return p
}

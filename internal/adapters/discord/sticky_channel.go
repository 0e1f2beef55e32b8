package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

// StickyChannel performs the status-message REST calls on one channel.
type StickyChannel struct {
	s         *discordgo.Session
	channelID string
}

func NewStickyChannel(s *discordgo.Session, channelID string) *StickyChannel {
	return &StickyChannel{s: s, channelID: channelID}
}

// Validate checks that the guild is reachable and that the channel belongs to
// it and takes text. Any failure here means the bridge cannot run.
func (c *StickyChannel) Validate(ctx context.Context, guildID string) error {
	if _, err := c.s.Guild(guildID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("main guild %s: %w", guildID, notFoundOr(err))
	}
	ch, err := c.s.Channel(c.channelID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("subscribed channel %s: %w", c.channelID, notFoundOr(err))
	}
	if ch.GuildID != guildID {
		return fmt.Errorf("subscribed channel %s is not in guild %s: %w", c.channelID, guildID, domain.ErrNotFound)
	}
	if !isTextChannel(ch.Type) {
		return fmt.Errorf("subscribed channel %s is not text based", c.channelID)
	}
	return nil
}

func (c *StickyChannel) Send(ctx context.Context, e domain.Embed) (string, error) {
	m, err := c.s.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{toMessageEmbed(e)},
		Flags:  discordgo.MessageFlagsSuppressNotifications,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (c *StickyChannel) Edit(ctx context.Context, messageID string, e domain.Embed) error {
	embeds := []*discordgo.MessageEmbed{toMessageEmbed(e)}
	_, err := c.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: c.channelID,
		ID:      messageID,
		Embeds:  &embeds,
	}, discordgo.WithContext(ctx))
	return notFoundOr(err)
}

func (c *StickyChannel) Delete(ctx context.Context, messageID string) error {
	return notFoundOr(c.s.ChannelMessageDelete(c.channelID, messageID, discordgo.WithContext(ctx)))
}

func isTextChannel(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice:
		return true
	}
	return false
}

// notFoundOr maps Discord's "unknown ..." answers onto domain.ErrNotFound.
func notFoundOr(err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownMessage,
				discordgo.ErrCodeUnknownMember,
				discordgo.ErrCodeUnknownUser,
				discordgo.ErrCodeUnknownChannel,
				discordgo.ErrCodeUnknownGuild:
				return fmt.Errorf("%w: %s", domain.ErrNotFound, restErr.Message.Message)
			}
		}
		if restErr.Response != nil && restErr.Response.StatusCode == 404 {
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
	}
	return err
}

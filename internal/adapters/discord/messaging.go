package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

// SendEphemeral answers the interaction directly with a private message.
func SendEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, msg string, log logger.Logger) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn("send ephemeral failed", logger.Error(err))
	}
	return err
}

// DeferEphemeral acknowledges a command that may take longer than 3s.
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, log logger.Logger) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn("defer ephemeral failed", logger.Error(err))
	}
	return err
}

// ReplyEphemeral posts a follow-up to a deferred interaction, or answers it
// directly when nothing was deferred yet.
func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, log logger.Logger) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err == nil {
		return
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
		_ = SendEphemeral(s, ic, content, log)
		return
	}
	log.Warn("reply ephemeral failed", logger.Error(err))
}

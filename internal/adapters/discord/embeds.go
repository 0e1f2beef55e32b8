package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

func toMessageEmbed(e domain.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}
	if e.Thumbnail != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.Thumbnail}
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return me
}

func toWebhookParams(msg domain.WebhookMessage) *discordgo.WebhookParams {
	p := &discordgo.WebhookParams{
		Content:   msg.Content,
		Username:  msg.Username,
		AvatarURL: msg.AvatarURL,
		// relayed game text must not ping anyone
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if msg.Embed != nil {
		p.Embeds = []*discordgo.MessageEmbed{toMessageEmbed(*msg.Embed)}
	}
	return p
}

package discord

import "github.com/bwmarrin/discordgo"

const (
	cmdLink     = "link"
	optCode     = "code"
	linkCodeLen = 6
)

var linkCodeMin = linkCodeLen

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdLink,
		Description: "Link your minecraft account to your discord account",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optCode,
			Description: "The verification code you received in the minecraft server",
			Required:    true,
			MinLength:   &linkCodeMin,
			MaxLength:   linkCodeLen,
		}},
	},
}

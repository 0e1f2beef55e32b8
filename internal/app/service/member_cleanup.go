package service

import (
	"context"
	"fmt"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

// MemberCleanup reacts to members leaving the guild.
type MemberCleanup struct {
	players PlayerRegistry
	forget  func(discordID string)
	log     logger.Logger
}

// forget may be nil; it is called with the member id after a record is removed.
func NewMemberCleanup(players PlayerRegistry, forget func(string), log logger.Logger) *MemberCleanup {
	return &MemberCleanup{players: players, forget: forget, log: log}
}

// OnMemberRemoved deletes the record linked to discordID, but only when it is
// verified; unverified records stay so the player can link again.
func (c *MemberCleanup) OnMemberRemoved(ctx context.Context, discordID string) (bool, error) {
	p, found, err := c.players.FindByDiscordID(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("find by discord id: %w", err)
	}
	if !found {
		c.log.Debug("member left without a linked player", logger.String("discord_id", discordID))
		return false, nil
	}
	if !p.Verified {
		c.log.Info("member left, keeping unverified record",
			logger.String("discord_id", discordID), logger.String("uuid", p.UUID))
		return false, nil
	}

	removed, err := c.players.DeleteByUUID(ctx, p.UUID)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", p.UUID, err)
	}
	if c.forget != nil {
		c.forget(discordID)
	}
	c.log.Info("member left, removed verified record",
		logger.String("discord_id", discordID),
		logger.String("uuid", p.UUID),
		logger.String("player", p.PlayerName),
	)
	return removed, nil
}

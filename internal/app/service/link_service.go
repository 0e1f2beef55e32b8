package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

type LinkService struct {
	players PlayerRegistry
	log     logger.Logger
}

func NewLinkService(players PlayerRegistry, log logger.Logger) *LinkService {
	return &LinkService{players: players, log: log}
}

// Link binds discordID to the unlinked profile holding code.
//
// Errors: *domain.AlreadyLinkedError when discordID already owns a profile,
// domain.ErrInvalidCode when no unlinked profile has the code, and
// domain.ErrLinkRace when the profile changed between lookup and update.
func (s *LinkService) Link(ctx context.Context, code, discordID string) (domain.LinkedPlayer, error) {
	existing, found, err := s.players.FindByDiscordID(ctx, discordID)
	if err != nil {
		return domain.LinkedPlayer{}, fmt.Errorf("find by discord id: %w", err)
	}
	if found {
		return domain.LinkedPlayer{}, &domain.AlreadyLinkedError{PlayerName: existing.PlayerName}
	}

	p, found, err := s.players.FindByCode(ctx, code)
	if err != nil {
		return domain.LinkedPlayer{}, fmt.Errorf("find by code: %w", err)
	}
	if !found {
		return domain.LinkedPlayer{}, domain.ErrInvalidCode
	}

	linked, found, err := s.players.LinkDiscord(ctx, p.UUID, discordID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// discordID got linked elsewhere after the first check
			return domain.LinkedPlayer{}, &domain.AlreadyLinkedError{PlayerName: p.PlayerName}
		}
		return domain.LinkedPlayer{}, fmt.Errorf("link discord: %w", err)
	}
	if !found {
		return domain.LinkedPlayer{}, fmt.Errorf("uuid %s: %w", p.UUID, domain.ErrLinkRace)
	}

	s.log.Info("account linked",
		logger.String("discord_id", discordID),
		logger.String("uuid", linked.UUID),
		logger.String("player", linked.PlayerName),
	)
	return linked, nil
}

// LinkReply runs Link and turns the outcome into the private reply shown to
// the user. The error is only set for failures the user can't act on.
func (s *LinkService) LinkReply(ctx context.Context, code, discordID string) (string, error) {
	p, err := s.Link(ctx, code, discordID)
	var already *domain.AlreadyLinkedError
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Your Minecraft account (%s) has been successfully linked to your Discord account!", p.PlayerName), nil
	case errors.As(err, &already):
		return "❌ Your Discord account is already linked to Minecraft account: " + already.PlayerName, nil
	case errors.Is(err, domain.ErrInvalidCode):
		return "❌ Invalid verification code. Please make sure you entered the code correctly.", nil
	case errors.Is(err, domain.ErrLinkRace):
		return "❌ An error occurred while linking your account. Please try again later.", err
	default:
		return "❌ An unexpected error occurred while trying to link your account. Please try again later.", err
	}
}

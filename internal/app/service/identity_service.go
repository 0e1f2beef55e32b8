package service

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/celestiamc/discord-bridge/internal/cache"
	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

// IdentityService resolves game UUIDs to the Discord identity used on relays.
// Member profiles are memoised in a TTL cache; concurrent misses for the same
// user share one fetch.
type IdentityService struct {
	players PlayerRegistry
	members MemberDirectory
	cache   *cache.TTL[string, domain.MemberProfile]
	group   singleflight.Group
	log     logger.Logger
}

func NewIdentityService(players PlayerRegistry, members MemberDirectory, c *cache.TTL[string, domain.MemberProfile], log logger.Logger) *IdentityService {
	return &IdentityService{players: players, members: members, cache: c, log: log}
}

// Member returns the guild profile for discordID. found is false when the
// user is not in the guild.
func (s *IdentityService) Member(ctx context.Context, discordID string) (domain.MemberProfile, bool, error) {
	if m, ok := s.cache.Get(discordID); ok {
		return m, true, nil
	}

	v, err, _ := s.group.Do(discordID, func() (any, error) {
		m, err := s.members.FetchMember(ctx, discordID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(discordID, m)
		return m, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.MemberProfile{}, false, nil
	}
	if err != nil {
		return domain.MemberProfile{}, false, err
	}
	return v.(domain.MemberProfile), true, nil
}

// Resolve looks up the registry record for uuid and, when it is linked, the
// member profile. A member fetch failure is logged and treated as no member;
// only registry errors are returned.
func (s *IdentityService) Resolve(ctx context.Context, uuid string) (domain.Identity, error) {
	p, found, err := s.players.FindByUUID(ctx, uuid)
	if err != nil {
		return domain.Identity{}, err
	}
	var id domain.Identity
	if !found {
		return id, nil
	}
	id.Player = &p

	discordID, linked := p.Linked()
	if !linked {
		return id, nil
	}
	m, ok, err := s.Member(ctx, discordID)
	if err != nil {
		s.log.Warn("member fetch failed", logger.String("discord_id", discordID), logger.Error(err))
		return id, nil
	}
	if ok {
		id.Member = &m
		id.DisplayName = m.DisplayName
		id.AvatarURL = m.AvatarURL
	}
	return id, nil
}

// Forget drops the cached profile of discordID.
func (s *IdentityService) Forget(discordID string) { s.cache.Delete(discordID) }

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

const mcHeadsAvatar = "https://mc-heads.net/avatar/%s"

// IdentityResolver is satisfied by *IdentityService.
type IdentityResolver interface {
	Resolve(ctx context.Context, uuid string) (domain.Identity, error)
}

// RelayService formats game events into webhook messages, and Discord chat
// into game chat.
type RelayService struct {
	identities IdentityResolver
	webhook    WebhookPoster
	game       GameChat
	pres       config.Presentation
	timeout    time.Duration
	now        func() time.Time
	log        logger.Logger
}

// NewRelayService accepts a nil webhook (every relay then fails with
// domain.ErrWebhookNotConfigured) and a nil game (ToGame is a no-op).
func NewRelayService(identities IdentityResolver, webhook WebhookPoster, game GameChat, pres config.Presentation, timeout time.Duration, log logger.Logger) *RelayService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RelayService{
		identities: identities,
		webhook:    webhook,
		game:       game,
		pres:       pres,
		timeout:    timeout,
		now:        time.Now,
		log:        log,
	}
}

func (s *RelayService) Achievement(ctx context.Context, ev domain.AchievementEvent) error {
	if s.webhook == nil {
		return domain.ErrWebhookNotConfigured
	}
	id, err := s.identities.Resolve(ctx, ev.UUID)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", ev.UUID, err)
	}
	if id.Player == nil {
		return domain.ErrNotLinked
	}
	if _, linked := id.Player.Linked(); !linked {
		return domain.ErrNotLinked
	}

	name := firstNonEmpty(id.DisplayName, ev.PlayerName)
	return s.post(ctx, domain.WebhookMessage{
		Content:   fmt.Sprintf("%s %s has earned the achievement **%s**!", s.pres.Icons.Achievement, name, ev.AdvancementTitle),
		Username:  name,
		AvatarURL: firstNonEmpty(id.AvatarURL, fmt.Sprintf(mcHeadsAvatar, ev.UUID)),
	})
}

// Chat relays a game chat line. Unlinked players are shown with their game
// name and head.
func (s *RelayService) Chat(ctx context.Context, ev domain.ChatEvent) error {
	if s.webhook == nil {
		return domain.ErrWebhookNotConfigured
	}
	id, err := s.identities.Resolve(ctx, ev.UUID)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", ev.UUID, err)
	}
	return s.post(ctx, domain.WebhookMessage{
		Content:   ev.Message,
		Username:  firstNonEmpty(id.DisplayName, ev.PlayerName),
		AvatarURL: firstNonEmpty(id.AvatarURL, fmt.Sprintf(mcHeadsAvatar, ev.UUID)),
	})
}

func (s *RelayService) Presence(ctx context.Context, ev domain.PresenceEvent) error {
	if s.webhook == nil {
		return domain.ErrWebhookNotConfigured
	}
	id, err := s.identities.Resolve(ctx, ev.PlayerUUID)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", ev.PlayerUUID, err)
	}

	avatar := id.AvatarURL
	if avatar == "" {
		if id.Player != nil && id.Player.Verified {
			avatar = fmt.Sprintf(mcHeadsAvatar, ev.PlayerUUID)
		} else {
			avatar = s.pres.Webhook.AvatarURL
		}
	}

	content := s.pres.Icons.Join + "  Joined the game"
	if ev.Type == domain.PresenceLeave {
		content = s.pres.Icons.Leave + " Left the game"
	}
	return s.post(ctx, domain.WebhookMessage{
		Content:   content,
		Username:  firstNonEmpty(id.DisplayName, ev.PlayerName),
		AvatarURL: avatar,
	})
}

func (s *RelayService) TPSWarning(ctx context.Context, w domain.TPSWarning) error {
	if s.webhook == nil {
		return domain.ErrWebhookNotConfigured
	}
	return s.post(ctx, domain.WebhookMessage{
		Username:  s.pres.Webhook.Username,
		AvatarURL: s.pres.Webhook.AvatarURL,
		Embed: &domain.Embed{
			Title:       s.pres.Icons.Warning + " Server Performance Warning",
			Description: "The server's TPS has dropped below the threshold!",
			Color:       s.pres.Colors.Warning,
			Fields: []domain.EmbedField{
				{Name: "Current TPS", Value: fmt.Sprintf("%.1f", w.CurrentTPS), Inline: true},
				{Name: "Threshold", Value: fmt.Sprintf("%.1f", w.Threshold), Inline: true},
			},
			Timestamp: s.now().UTC().Format(time.RFC3339),
		},
	})
}

// ToGame forwards one Discord chat message to the game server. Failures are
// logged and otherwise dropped.
func (s *RelayService) ToGame(ctx context.Context, author, message string) {
	if s.game == nil || strings.TrimSpace(message) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.game.SendChat(ctx, author, message); err != nil {
		s.log.Warn("relay to game failed", logger.String("author", author), logger.Error(err))
	}
}

func (s *RelayService) post(ctx context.Context, msg domain.WebhookMessage) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.webhook.Post(ctx, msg); err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

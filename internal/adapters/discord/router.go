package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

// Implemented by service.LinkService
type Linker interface {
	LinkReply(ctx context.Context, code, discordID string) (string, error)
}

// Implemented by service.StickyService
type StickyCounter interface {
	OnChannelMessage(ctx context.Context, messageID string)
}

// Implemented by service.RelayService
type GameRelay interface {
	ToGame(ctx context.Context, author, message string)
}

// Implemented by service.MemberCleanup
type MemberRemover interface {
	OnMemberRemoved(ctx context.Context, discordID string) (bool, error)
}

const (
	msgLinkCooldown = "⏳ Please wait a few seconds before trying again."
	msgLinkBadCode  = "❌ The verification code must be exactly 6 characters."
	msgUnexpected   = "❌ An unexpected error occurred. Please try again later."
)

type Router struct {
	s         *discordgo.Session
	guildID   string
	channelID string
	log       logger.Logger

	link    Linker
	sticky  StickyCounter
	relay   GameRelay
	cleanup MemberRemover

	limiter *userLimiter
	timeout time.Duration
}

func NewRouter(
	s *discordgo.Session,
	guildID, channelID string,
	link Linker,
	sticky StickyCounter,
	relay GameRelay,
	cleanup MemberRemover,
	linkCooldown, timeout time.Duration,
	log logger.Logger,
) *Router {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Router{
		s:         s,
		guildID:   guildID,
		channelID: channelID,
		log:       log,
		link:      link,
		sticky:    sticky,
		relay:     relay,
		cleanup:   cleanup,
		limiter:   newUserLimiter(linkCooldown),
		timeout:   timeout,
	}
}

// Register creates the guild slash commands.
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		data := ic.ApplicationCommandData()
		userID := interactionUserID(ic)
		log := r.log.With(logger.String("command", data.Name), logger.String("user_id", userID))
		log.Info("slash command")

		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic in slash command", logger.Any("panic", rec))
				ReplyEphemeral(s, ic, msgUnexpected, log)
			}
		}()

		switch data.Name {
		case cmdLink:
			code, _ := optStr(data.Options, optCode)
			_ = DeferEphemeral(s, ic, log)
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			ReplyEphemeral(s, ic, r.linkReply(ctx, userID, code), log)
		}
	})

	r.s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.onMessage(ctx, m.Message)
	})

	r.s.AddHandler(func(_ *discordgo.Session, ev *discordgo.GuildMemberRemove) {
		if ev.Member == nil || ev.User == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.onMemberRemove(ctx, ev.GuildID, ev.User.ID)
	})
}

// linkReply is the /link body: cooldown, code shape, then the link flow.
func (r *Router) linkReply(ctx context.Context, userID, code string) string {
	if !r.limiter.Allow(userID) {
		return msgLinkCooldown
	}
	if len([]rune(code)) != linkCodeLen {
		return msgLinkBadCode
	}
	defer step(r.log, "link")()

	msg, err := r.link.LinkReply(ctx, code, userID)
	if err != nil {
		r.log.Error("link failed", logger.String("user_id", userID), logger.Error(err))
	}
	return msg
}

func (r *Router) onMessage(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.ChannelID != r.channelID {
		return
	}
	r.sticky.OnChannelMessage(ctx, m.ID)

	if m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}
	r.relay.ToGame(ctx, authorName(m), m.Content)
}

func (r *Router) onMemberRemove(ctx context.Context, guildID, userID string) {
	if guildID != r.guildID {
		return
	}
	removed, err := r.cleanup.OnMemberRemoved(ctx, userID)
	if err != nil {
		r.log.Error("member removal cleanup failed", logger.String("user_id", userID), logger.Error(err))
		return
	}
	if removed {
		r.log.Info("linked record removed for departed member", logger.String("user_id", userID))
	}
}

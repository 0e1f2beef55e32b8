package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/celestiamc/discord-bridge/internal/adapters/discord"
	"github.com/celestiamc/discord-bridge/internal/adapters/httpbridge"
	"github.com/celestiamc/discord-bridge/internal/adapters/minecraft"
	"github.com/celestiamc/discord-bridge/internal/app/service"
	"github.com/celestiamc/discord-bridge/internal/cache"
	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
	"github.com/celestiamc/discord-bridge/internal/infra/storage"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

func main() {
	_ = godotenv.Load()
	startedAt := time.Now()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()
	log.Debug("config loaded", logger.Any("config", cfg.Redacted()))

	pres, err := config.LoadPresentation(cfg.PresentationFilePath)
	if err != nil {
		log.Fatal("presentation", logger.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open", logger.Error(err))
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate", logger.Error(err))
	}
	log.Info("db ready")

	players := storage.NewPlayerRepo(db)
	mc := minecraft.New(cfg.MCAPIURL)

	// Discord session
	s, err := discordgo.New(botAuth(cfg.DiscordToken))
	if err != nil {
		log.Fatal("discord session", logger.Error(err))
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent
	if err := s.Open(); err != nil {
		log.Fatal("discord open", logger.Error(err))
	}
	defer s.Close()
	log.Info("connected", logger.String("user", s.State.User.Username), logger.String("id", s.State.User.ID))

	channel := discordrouter.NewStickyChannel(s, cfg.SubscribedChannelID)
	if err := channel.Validate(ctx, cfg.DiscordGuild); err != nil {
		log.Fatal("subscribed channel", logger.String("channel_id", cfg.SubscribedChannelID), logger.Error(err))
	}

	// Member cache
	members := cache.NewTTL[string, domain.MemberProfile](cfg.MemberCacheTTL)
	janitor := cache.NewJanitor(members, cfg.MemberCacheCleanup, log.With(logger.String("component", "member_cache")))
	janitor.Start(ctx)
	defer janitor.Stop()

	// Services
	identities := service.NewIdentityService(players, discordrouter.NewMemberFetcher(s, cfg.DiscordGuild), members, log)

	var webhook service.WebhookPoster
	if cfg.WebhookURL != "" {
		ws, err := discordrouter.NewWebhookSender(s, cfg.WebhookURL)
		if err != nil {
			log.Fatal("webhook url", logger.Error(err))
		}
		webhook = ws
	} else {
		log.Warn("DISCORD_WEBHOOK_URL not set; inbound relays will answer 500")
	}
	relaySvc := service.NewRelayService(identities, webhook, mc, pres, cfg.OutboundTimeout, log)
	linkSvc := service.NewLinkService(players, log)
	cleanup := service.NewMemberCleanup(players, identities.Forget, log)

	poller := service.NewStatusPoller(mc, nil, cfg.StatusPollInterval, cfg.OutboundTimeout,
		log.With(logger.String("component", "status_poller")))
	sticky := service.NewStickyService(channel, poller, pres, cfg.StickyThreshold, cfg.OutboundTimeout,
		log.With(logger.String("component", "sticky")))
	poller.SetReconciler(sticky)

	// First reading and sticky before handlers start counting messages.
	poller.Poll(ctx)
	if _, err := sticky.Reconcile(ctx); err != nil {
		log.Warn("initial sticky reconcile", logger.Error(err))
	}
	poller.Start(ctx)
	defer poller.Stop()

	// Router
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, cfg.SubscribedChannelID,
		linkSvc, sticky, relaySvc, cleanup, cfg.LinkCooldown, 0, log)
	if err := r.Register(); err != nil {
		log.Fatal("register commands", logger.Error(err))
	}
	r.Handlers()
	log.Info("commands registered", logger.String("guild_id", cfg.DiscordGuild))

	// Inbound HTTP
	web := httpbridge.New(cfg.HTTPAddr, httpbridge.Deps{
		Relay:     relaySvc,
		Logger:    log.With(logger.String("component", "http")),
		Secret:    cfg.SharedSecret,
		StartTime: startedAt,
	})
	go func() {
		if err := web.Start(); err != nil {
			log.Fatal("http server", logger.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("shutting down", logger.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := web.Stop(shutdownCtx); err != nil {
		log.Warn("http shutdown", logger.Error(err))
	}
	cancel()
}

func botAuth(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(token), "bot ") {
		return token
	}
	return "Bot " + token
}

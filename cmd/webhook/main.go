package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	discordrouter "github.com/celestiamc/discord-bridge/internal/adapters/discord"
	"github.com/celestiamc/discord-bridge/internal/adapters/httpbridge"
	"github.com/celestiamc/discord-bridge/internal/app/service"
	"github.com/celestiamc/discord-bridge/internal/cache"
	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
	"github.com/celestiamc/discord-bridge/internal/infra/storage"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

// Serverless variant of the inbound relay: same routes and validation as the
// bot's HTTP server, REST-only Discord session, no poller or sticky message.
func main() {
	cfg := config.LoadWebhook()
	log := logger.New(cfg.LogLevel, false)

	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("pgx parse config", logger.Error(err))
	}
	pcfg.MaxConns = 4
	pcfg.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	cancel()
	if err != nil {
		log.Fatal("pgxpool", logger.Error(err))
	}
	players := storage.NewPlayerRepo(stdlib.OpenDBFromPool(pool))

	pres, err := config.LoadPresentation(cfg.PresentationFilePath)
	if err != nil {
		log.Fatal("presentation", logger.Error(err))
	}

	// No gateway connection: the session only backs REST calls.
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal("discord session", logger.Error(err))
	}

	// The cache lives as long as the warm container.
	members := cache.NewTTL[string, domain.MemberProfile](cfg.MemberCacheTTL)
	identities := service.NewIdentityService(players, discordrouter.NewMemberFetcher(s, cfg.DiscordGuild), members, log)

	var webhook service.WebhookPoster
	if cfg.WebhookURL != "" {
		ws, err := discordrouter.NewWebhookSender(s, cfg.WebhookURL)
		if err != nil {
			log.Fatal("webhook url", logger.Error(err))
		}
		webhook = ws
	}
	relaySvc := service.NewRelayService(identities, webhook, nil, pres, cfg.OutboundTimeout, log)

	router := httpbridge.NewRouter(httpbridge.Deps{
		Relay:     relaySvc,
		Logger:    log,
		Secret:    cfg.SharedSecret,
		StartTime: time.Now(),
	})
	lambda.Start(httpbridge.LambdaHandler(router))
}

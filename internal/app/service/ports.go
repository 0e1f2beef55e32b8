package service

import (
	"context"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

// Implemented by internal/adapters/minecraft.Client
type GameServerAPI interface {
	FetchStatus(ctx context.Context) (domain.StatusReading, error)
	FetchMaintenance(ctx context.Context) (domain.MaintenanceInfo, error)
}

// Implemented by internal/adapters/minecraft.Client
type GameChat interface {
	SendChat(ctx context.Context, author, message string) error
}

// Implemented by internal/infra/storage.PlayerRepo. Every lookup reports
// presence explicitly through the bool.
type PlayerRegistry interface {
	FindByCode(ctx context.Context, code string) (domain.LinkedPlayer, bool, error)
	FindByDiscordID(ctx context.Context, discordID string) (domain.LinkedPlayer, bool, error)
	FindByUUID(ctx context.Context, uuid string) (domain.LinkedPlayer, bool, error)
	LinkDiscord(ctx context.Context, uuid, discordID string) (domain.LinkedPlayer, bool, error)
	DeleteByUUID(ctx context.Context, uuid string) (bool, error)
}

// Implemented by internal/adapters/discord.StickyChannel
type StatusChannel interface {
	Send(ctx context.Context, embed domain.Embed) (string, error)
	Edit(ctx context.Context, messageID string, embed domain.Embed) error
	Delete(ctx context.Context, messageID string) error
}

// Implemented by internal/adapters/discord.MemberFetcher. A user who is not
// in the guild yields an error wrapping domain.ErrNotFound.
type MemberDirectory interface {
	FetchMember(ctx context.Context, userID string) (domain.MemberProfile, error)
}

// Implemented by internal/adapters/discord.WebhookSender
type WebhookPoster interface {
	Post(ctx context.Context, msg domain.WebhookMessage) error
}

// StatusSource is the latest reading the sticky message renders.
type StatusSource interface {
	Current() domain.ServerStatus
}

// Reconciler is what the poller calls when the status changed.
type Reconciler interface {
	Reconcile(ctx context.Context) (bool, error)
}

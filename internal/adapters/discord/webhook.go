package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

// WebhookSender executes one incoming webhook. It needs no gateway
// connection, so it also serves the serverless entry point.
type WebhookSender struct {
	s     *discordgo.Session
	id    string
	token string
}

// NewWebhookSender parses a https://discord.com/api/webhooks/{id}/{token} URL.
func NewWebhookSender(s *discordgo.Session, webhookURL string) (*WebhookSender, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return &WebhookSender{s: s, id: id, token: token}, nil
}

func (w *WebhookSender) Post(ctx context.Context, msg domain.WebhookMessage) error {
	_, err := w.s.WebhookExecute(w.id, w.token, false, toWebhookParams(msg), discordgo.WithContext(ctx))
	return err
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", fmt.Errorf("webhook url on %s: expected /api/webhooks/{id}/{token}", u.Host)
	}
	return id, token, nil
}

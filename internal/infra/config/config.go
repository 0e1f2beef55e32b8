package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DiscordToken        string
	DiscordGuild        string // MAIN_GUILD_ID
	SubscribedChannelID string // channel holding the sticky status and relayed chat
	WebhookURL          string // optional; relays answer 500 when empty

	MCAPIURL    string // game-server API base, always ends with "/"
	DatabaseURL string

	HTTPAddr     string // default :8080
	SharedSecret string // optional X-Bridge-Secret for inbound routes

	LogLevel  string
	PrettyLog bool

	StatusPollInterval   time.Duration
	MemberCacheTTL       time.Duration
	MemberCacheCleanup   time.Duration
	StickyThreshold      int
	OutboundTimeout      time.Duration
	ShutdownTimeout      time.Duration
	LinkCooldown         time.Duration
	PresentationFilePath string
}

func Load() Config {
	cfg := Config{
		DiscordToken:        requireEnv("DISCORD_BOT_TOKEN"),
		DiscordGuild:        requireEnv("MAIN_GUILD_ID"),
		SubscribedChannelID: requireEnv("SUBSCRIBED_CHANNEL_ID"),
		WebhookURL:          getenv("DISCORD_WEBHOOK_URL", ""),
		MCAPIURL:            withTrailingSlash(requireEnv("MCAPI_URL")),
		DatabaseURL:         requireEnv("DATABASE_URL"),

		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		SharedSecret: getenv("BRIDGE_SHARED_SECRET", ""),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),

		StatusPollInterval:   mustDuration("STATUS_POLL_INTERVAL", 30*time.Second),
		MemberCacheTTL:       mustDuration("MEMBER_CACHE_TTL", 5*time.Minute),
		MemberCacheCleanup:   mustDuration("MEMBER_CACHE_CLEANUP_INTERVAL", time.Minute),
		StickyThreshold:      getenvInt("STICKY_THRESHOLD", 10),
		OutboundTimeout:      mustDuration("OUTBOUND_TIMEOUT", 5*time.Second),
		ShutdownTimeout:      mustDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		LinkCooldown:         mustDuration("LINK_COOLDOWN", 3*time.Second),
		PresentationFilePath: getenv("BRIDGE_PRESENTATION_FILE", ""),
	}
	if cfg.StickyThreshold < 1 {
		cfg.StickyThreshold = 10
	}
	return cfg
}

// LoadWebhook reads only what the serverless relay needs: no gateway channel,
// no poller.
func LoadWebhook() Config {
	return Config{
		DiscordToken:         requireEnv("DISCORD_BOT_TOKEN"),
		DiscordGuild:         requireEnv("MAIN_GUILD_ID"),
		WebhookURL:           getenv("DISCORD_WEBHOOK_URL", ""),
		DatabaseURL:          requireEnv("DATABASE_URL"),
		SharedSecret:         getenv("BRIDGE_SHARED_SECRET", ""),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		MemberCacheTTL:       mustDuration("MEMBER_CACHE_TTL", 5*time.Minute),
		OutboundTimeout:      mustDuration("OUTBOUND_TIMEOUT", 5*time.Second),
		PresentationFilePath: getenv("BRIDGE_PRESENTATION_FILE", ""),
	}
}

// Redacted is safe to print at debug level.
func (c Config) Redacted() Config {
	cp := c
	cp.DiscordToken = "***REDACTED***"
	if cp.WebhookURL != "" {
		cp.WebhookURL = "***REDACTED***"
	}
	if cp.SharedSecret != "" {
		cp.SharedSecret = "***REDACTED***"
	}
	cp.DatabaseURL = "***REDACTED***"
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic(fmt.Sprintf("missing required env %s", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

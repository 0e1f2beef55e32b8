package discord

import (
	"time"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

func step(log logger.Logger, label string) func() {
	start := time.Now()
	return func() { log.Debug("trace", logger.String("step", label), logger.Duration("took", time.Since(start))) }
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

func TestOnMemberRemoved(t *testing.T) {
	ctx := context.Background()

	t.Run("verified record is deleted", func(t *testing.T) {
		p := unlinked
		p.DiscordID = strPtr("D")
		p.Verified = true
		reg := &registryMock{}
		reg.On("FindByDiscordID", mock.Anything, "D").Return(p, true, nil)
		reg.On("DeleteByUUID", mock.Anything, "u-1").Return(true, nil)

		var forgotten string
		c := NewMemberCleanup(reg, func(id string) { forgotten = id }, logger.Nop())

		removed, err := c.OnMemberRemoved(ctx, "D")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, "D", forgotten)
		reg.AssertExpectations(t)
	})

	t.Run("unverified record is kept", func(t *testing.T) {
		p := unlinked
		p.DiscordID = strPtr("D")
		reg := &registryMock{}
		reg.On("FindByDiscordID", mock.Anything, "D").Return(p, true, nil)

		removed, err := NewMemberCleanup(reg, nil, logger.Nop()).OnMemberRemoved(ctx, "D")
		require.NoError(t, err)
		assert.False(t, removed)
		reg.AssertNotCalled(t, "DeleteByUUID", mock.Anything, mock.Anything)
	})

	t.Run("no record", func(t *testing.T) {
		reg := &registryMock{}
		reg.On("FindByDiscordID", mock.Anything, "D").Return(domain.LinkedPlayer{}, false, nil)

		removed, err := NewMemberCleanup(reg, nil, logger.Nop()).OnMemberRemoved(ctx, "D")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("store error", func(t *testing.T) {
		reg := &registryMock{}
		reg.On("FindByDiscordID", mock.Anything, "D").Return(domain.LinkedPlayer{}, false, errors.New("db down"))

		_, err := NewMemberCleanup(reg, nil, logger.Nop()).OnMemberRemoved(ctx, "D")
		assert.Error(t, err)
	})
}

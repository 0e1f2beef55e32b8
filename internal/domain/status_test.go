package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineFrom(t *testing.T) {
	t.Run("nil previous gives zero values", func(t *testing.T) {
		off := OfflineFrom(nil)
		assert.False(t, off.IsOnline())
		assert.Equal(t, MaintenanceInfo{}, off.Maintenance())
		assert.Equal(t, Counters{}, off.Counters())
	})

	t.Run("carries maintenance and counters", func(t *testing.T) {
		prev := Online{
			Players:     []string{"Steve"},
			MaxPlayers:  20,
			Maint:       MaintenanceInfo{Enabled: true, EndCron: "2025-06-01T13:00:00Z"},
			PlayerStats: Counters{UniquePlayers: 42, OfflinePlayers: 41},
		}
		off := OfflineFrom(prev)
		assert.Equal(t, prev.Maint, off.Maintenance())
		assert.Equal(t, prev.PlayerStats, off.Counters())
		assert.Empty(t, off.OnlinePlayers())
	})
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	orig := Online{Players: []string{"Steve", "Alex"}, MaxPlayers: 20}
	cp := Clone(orig)

	require.IsType(t, Online{}, cp)
	on := cp.(Online)
	on.Players[0] = "Herobrine"
	assert.Equal(t, "Steve", orig.Players[0])

	assert.Nil(t, Clone(nil))
	assert.Equal(t, Offline{PlayerStats: Counters{UniquePlayers: 1}}, Clone(Offline{PlayerStats: Counters{UniquePlayers: 1}}))
}

func TestLinkedPlayer_Linked(t *testing.T) {
	empty := ""
	id := "1234"

	_, ok := LinkedPlayer{}.Linked()
	assert.False(t, ok)

	_, ok = LinkedPlayer{DiscordID: &empty}.Linked()
	assert.False(t, ok)

	got, ok := LinkedPlayer{DiscordID: &id}.Linked()
	assert.True(t, ok)
	assert.Equal(t, "1234", got)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidCode, ErrNotFound)
	assert.ErrorIs(t, ErrNotLinked, ErrNotFound)

	var err error = &AlreadyLinkedError{PlayerName: "Steve"}
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Steve")

	verr := &ValidationError{Fields: []string{"a: required", "b: required"}}
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Equal(t, "invalid payload: a: required, b: required", verr.Error())

	var target *AlreadyLinkedError
	assert.True(t, errors.As(err, &target))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

var pollNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestPoller(api GameServerAPI, r Reconciler) *StatusPoller {
	return NewStatusPoller(api, r, time.Hour, time.Second, logger.Nop(),
		WithPollerClock(func() time.Time { return pollNow }))
}

func TestShouldReconcile(t *testing.T) {
	base := onlineStatus("a", "b")

	fewer := onlineStatus("a")
	swapped := onlineStatus("a", "c")
	bigger := onlineStatus("a", "b")
	bigger.MaxPlayers = 40
	maint := onlineStatus("a", "b")
	maint.Maint.Enabled = true
	sched := onlineStatus("a", "b")
	sched.Maint.StartCron = "2025-06-02T03:00:00Z"
	counters := onlineStatus("a", "b")
	counters.PlayerStats.UniquePlayers = 6

	offline := domain.OfflineFrom(base)
	offlineCounters := offline
	offlineCounters.PlayerStats.OfflinePlayers = 2

	tests := []struct {
		name      string
		old, next domain.ServerStatus
		want      bool
	}{
		{"no previous reading", nil, base, true},
		{"identical", base, onlineStatus("a", "b"), false},
		{"player count differs", base, fewer, true},
		{"same count different names", base, swapped, false},
		{"max players differs", base, bigger, true},
		{"maintenance toggled", base, maint, true},
		{"schedule changed", base, sched, true},
		{"unique players changed", base, counters, true},
		{"went offline", base, offline, true},
		{"came online", offline, base, true},
		{"offline unchanged", offline, domain.OfflineFrom(base), false},
		{"offline counters changed", offline, offlineCounters, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldReconcile(tt.old, tt.next))
		})
	}
}

func TestPoll_OnlineReading(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{
		Online: true, Players: []string{"a", "b"}, MaxPlayers: 20, UniquePlayers: 5, OfflinePlayers: 1,
	}, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{
		Enabled: false, StartCron: "0 3 * * *",
	}, nil)

	p := newTestPoller(api, nil)
	got, changed := p.Poll(context.Background())

	assert.True(t, changed)
	on, ok := got.(domain.Online)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, on.Players)
	assert.Equal(t, uint(20), on.MaxPlayers)
	assert.Equal(t, domain.Counters{UniquePlayers: 5, OfflinePlayers: 1}, on.PlayerStats)
	assert.Equal(t, "2025-06-02T03:00:00Z", on.Maint.StartCron, "cron resolved to next occurrence")
	assert.Empty(t, on.Maint.EndCron)
	api.AssertExpectations(t)
}

func TestPoll_FailurePreservesCounters(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{
		Online: true, Players: []string{"a", "b"}, MaxPlayers: 20, UniquePlayers: 5, OfflinePlayers: 1,
	}, nil).Once()
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{
		Enabled: true, EndCron: "2025-06-01T14:00:00Z",
	}, nil)
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{}, errors.New("connection refused"))

	p := newTestPoller(api, nil)
	ctx := context.Background()
	_, _ = p.Poll(ctx)

	got, changed := p.Poll(ctx)
	assert.True(t, changed)
	off, ok := got.(domain.Offline)
	require.True(t, ok)
	assert.False(t, off.IsOnline())
	assert.Empty(t, off.OnlinePlayers())
	assert.Equal(t, domain.Counters{UniquePlayers: 5, OfflinePlayers: 1}, off.PlayerStats)
	assert.Equal(t, domain.MaintenanceInfo{Enabled: true, EndCron: "2025-06-01T14:00:00Z"}, off.Maint)

	// a second failure is not a change
	_, changed = p.Poll(ctx)
	assert.False(t, changed)
}

func TestPoll_FailureWithoutHistory(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{}, errors.New("timeout"))
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, errors.New("timeout"))

	got, changed := newTestPoller(api, nil).Poll(context.Background())
	assert.True(t, changed)
	assert.Equal(t, domain.Offline{}, got)
}

func TestPoll_MaintenanceFailureKeepsPrevious(t *testing.T) {
	api := &gameAPIMock{}
	reading := domain.StatusReading{Online: true, Players: []string{"a"}, MaxPlayers: 20}
	api.On("FetchStatus", mock.Anything).Return(reading, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{Enabled: true}, nil).Once()
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, errors.New("plugin missing"))

	p := newTestPoller(api, nil)
	ctx := context.Background()
	_, _ = p.Poll(ctx)

	got, changed := p.Poll(ctx)
	assert.False(t, changed)
	assert.True(t, got.IsOnline())
	assert.True(t, got.Maintenance().Enabled)
}

func TestPoll_ExplicitOfflineUsesFreshCounters(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{Online: false, UniquePlayers: 9, OfflinePlayers: 9}, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, nil)

	got, _ := newTestPoller(api, nil).Poll(context.Background())
	assert.Equal(t, domain.Offline{PlayerStats: domain.Counters{UniquePlayers: 9, OfflinePlayers: 9}}, got)
}

func TestTick_ReconcilesOnlyOnChange(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{Online: true, Players: []string{"a"}, MaxPlayers: 20}, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, nil)

	spy := &reconcilerSpy{}
	p := newTestPoller(api, spy)
	ctx := context.Background()

	p.Tick(ctx)
	p.Tick(ctx)
	p.Tick(ctx)
	assert.Equal(t, 1, spy.count())
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{Online: true, Players: []string{"a"}}, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, nil)

	p := newTestPoller(api, nil)
	assert.Nil(t, p.Current())

	p.Poll(context.Background())
	cur := p.Current().(domain.Online)
	cur.Players[0] = "changed"
	assert.Equal(t, []string{"a"}, p.Current().OnlinePlayers())
}

func TestStartStop(t *testing.T) {
	api := &gameAPIMock{}
	api.On("FetchStatus", mock.Anything).Return(domain.StatusReading{Online: true}, nil)
	api.On("FetchMaintenance", mock.Anything).Return(domain.MaintenanceInfo{}, nil)

	spy := &reconcilerSpy{}
	p := NewStatusPoller(api, spy, 5*time.Millisecond, time.Second, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return p.Current() != nil }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return spy.count() == 1 }, time.Second, 5*time.Millisecond)
	p.Stop()
	p.Stop()
}

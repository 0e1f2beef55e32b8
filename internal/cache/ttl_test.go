package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(clock *fakeClock, ttl time.Duration) *TTL[string, string] {
	return NewTTL[string, string](ttl, WithClock[string, string](clock.Now))
}

func TestTTL_GetBeforeAndAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, 30*time.Second)

	c.Set("k", "v")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// exactly at expiry is still a hit
	clock.Advance(30 * time.Second)
	v, ok = c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.Advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
	assert.Equal(t, 0, c.Cleanup())
}

func TestTTL_OverwriteRestartsWindow(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, 10*time.Second)

	c.Set("k", "v1")
	clock.Advance(8 * time.Second)
	c.Set("k", "v2")
	clock.Advance(8 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok, "second set should start a fresh window")
	assert.Equal(t, "v2", v)

	clock.Advance(3 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTL_ReadDoesNotSlide(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, 10*time.Second)
	c.Set("k", "v")

	for i := 0; i < 3; i++ {
		clock.Advance(3 * time.Second)
		_, ok := c.Get("k")
		require.True(t, ok)
	}
	clock.Advance(2 * time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTL_MissDoesNotRepopulate(t *testing.T) {
	c := newTestCache(newFakeClock(), time.Minute)
	_, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTL_DeleteAndClear(t *testing.T) {
	c := newTestCache(newFakeClock(), time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestTTL_CleanupSweepsOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, 10*time.Second)

	c.Set("old1", "x")
	c.Set("old2", "x")
	clock.Advance(6 * time.Second)
	c.Set("fresh", "y")
	clock.Advance(5 * time.Second)

	assert.Equal(t, 2, c.Cleanup())
	assert.Equal(t, 1, c.Len())
	v, ok := c.Get("fresh")
	require.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestJanitor_SweepsOnInterval(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock, time.Second)
	c.Set("k", "v")
	clock.Advance(2 * time.Second)

	j := NewJanitor(c, 5*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	j.Start(ctx)
	defer j.Stop()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestJanitor_StopIsIdempotent(t *testing.T) {
	j := NewJanitor(newTestCache(newFakeClock(), time.Second), time.Hour, logger.Nop())
	j.Start(context.Background())
	j.Stop()
	j.Stop()
}

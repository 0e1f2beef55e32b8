package cache

import (
	"context"
	"sync"
	"time"

	"github.com/celestiamc/discord-bridge/internal/logger"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a map whose entries expire a fixed duration after they were set.
// Expiry is absolute: reading an entry does not extend it.
type TTL[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[K]entry[V]
	now     func() time.Time
}

type Option[K comparable, V any] func(*TTL[K, V])

// WithClock replaces time.Now, mostly for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *TTL[K, V]) { c.now = now }
}

func NewTTL[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) *TTL[K, V] {
	c := &TTL[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Set overwrites any existing entry and starts a fresh expiry window.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Get returns the value while now <= expiresAt. An expired entry is evicted
// and reported as a miss; a miss never repopulates.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Cleanup sweeps every expired entry and returns how many were removed.
func (c *TTL[K, V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len counts entries still held, expired or not.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Janitor runs Cleanup on its own ticker so expired keys that are never read
// again don't pile up.
type Janitor struct {
	sweep    func() int
	interval time.Duration
	logger   logger.Logger
	stopCh   chan struct{}
	once     sync.Once
}

func NewJanitor[K comparable, V any](c *TTL[K, V], interval time.Duration, log logger.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		sweep:    c.Cleanup,
		interval: interval,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Start returns immediately; sweeping happens in a goroutine until Stop or ctx is done.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := j.sweep(); n > 0 {
					j.logger.Debug("cache sweep", logger.Int("removed", n))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (j *Janitor) Stop() {
	j.once.Do(func() { close(j.stopCh) })
}

package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

// StatusPoller keeps the latest ServerStatus and asks the Reconciler to
// refresh the sticky message whenever a reading differs meaningfully from
// the previous one.
type StatusPoller struct {
	api        GameServerAPI
	reconciler Reconciler
	interval   time.Duration
	timeout    time.Duration
	now        func() time.Time
	log        logger.Logger

	mu      sync.RWMutex
	current domain.ServerStatus

	stopCh chan struct{}
	once   sync.Once
}

type PollerOption func(*StatusPoller)

func WithPollerClock(now func() time.Time) PollerOption {
	return func(p *StatusPoller) { p.now = now }
}

func NewStatusPoller(api GameServerAPI, reconciler Reconciler, interval, timeout time.Duration, log logger.Logger, opts ...PollerOption) *StatusPoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &StatusPoller{
		api:        api,
		reconciler: reconciler,
		interval:   interval,
		timeout:    timeout,
		now:        time.Now,
		log:        log,
		stopCh:     make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// SetReconciler wires the reconciler after construction; the sticky service
// reads Current from the poller, so one of them has to be set late.
func (p *StatusPoller) SetReconciler(r Reconciler) { p.reconciler = r }

// Current returns a copy of the latest reading, or nil before the first poll.
func (p *StatusPoller) Current() domain.ServerStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	return domain.Clone(p.current)
}

// Poll fetches a fresh reading, stores it and reports whether it differs
// from the previous one.
func (p *StatusPoller) Poll(ctx context.Context) (domain.ServerStatus, bool) {
	p.mu.RLock()
	prev := p.current
	p.mu.RUnlock()

	next := p.fetch(ctx, prev)

	p.mu.Lock()
	old := p.current
	p.current = next
	p.mu.Unlock()

	return domain.Clone(next), ShouldReconcile(old, next)
}

// Tick is one poll cycle: Poll, then Reconcile on change.
func (p *StatusPoller) Tick(ctx context.Context) {
	status, changed := p.Poll(ctx)
	if !changed {
		return
	}
	p.log.Debug("server status changed",
		logger.Bool("online", status.IsOnline()),
		logger.Int("players", len(status.OnlinePlayers())),
		logger.Bool("maintenance", status.Maintenance().Enabled),
	)
	if p.reconciler == nil {
		return
	}
	if _, err := p.reconciler.Reconcile(ctx); err != nil {
		p.log.Warn("sticky reconcile after status change failed", logger.Error(err))
	}
}

// Start returns immediately; polling runs in its own goroutine until Stop or
// ctx is done. The first poll happens after one interval.
func (p *StatusPoller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Tick(ctx)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (p *StatusPoller) Stop() {
	p.once.Do(func() { close(p.stopCh) })
}

// fetch queries /status and /maintenance concurrently. A failed status call
// yields the Offline fallback built from prev. A failed maintenance call
// only keeps prev's maintenance.
func (p *StatusPoller) fetch(ctx context.Context, prev domain.ServerStatus) domain.ServerStatus {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var (
		reading  domain.StatusReading
		maint    domain.MaintenanceInfo
		maintErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := p.api.FetchStatus(gctx)
		if err != nil {
			return err
		}
		reading = r
		return nil
	})
	g.Go(func() error {
		maint, maintErr = p.api.FetchMaintenance(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		p.log.Warn("status fetch failed, reporting offline", logger.Error(err))
		return domain.OfflineFrom(prev)
	}

	if maintErr != nil {
		p.log.Warn("maintenance fetch failed, keeping previous state", logger.Error(maintErr))
		if prev != nil {
			maint = prev.Maintenance()
		} else {
			maint = domain.MaintenanceInfo{}
		}
	} else {
		now := p.now()
		maint.StartCron = ResolveSchedule(maint.StartCron, now)
		maint.EndCron = ResolveSchedule(maint.EndCron, now)
	}

	stats := domain.Counters{UniquePlayers: reading.UniquePlayers, OfflinePlayers: reading.OfflinePlayers}
	if !reading.Online {
		return domain.Offline{Maint: maint, PlayerStats: stats}
	}
	players := reading.Players
	if players == nil {
		players = []string{}
	}
	return domain.Online{
		Players:     players,
		MaxPlayers:  reading.MaxPlayers,
		Maint:       maint,
		PlayerStats: stats,
	}
}

// ShouldReconcile reports whether next differs from old in any way the
// sticky message shows. A nil old always reconciles.
func ShouldReconcile(old, next domain.ServerStatus) bool {
	if old == nil {
		return true
	}
	if old.IsOnline() != next.IsOnline() {
		return true
	}
	if old.Maintenance() != next.Maintenance() {
		return true
	}
	if old.Counters() != next.Counters() {
		return true
	}
	o, oldOnline := old.(domain.Online)
	n, nextOnline := next.(domain.Online)
	if oldOnline && nextOnline {
		return len(o.Players) != len(n.Players) || o.MaxPlayers != n.MaxPlayers
	}
	return false
}

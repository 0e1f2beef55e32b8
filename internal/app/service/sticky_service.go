package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/infra/config"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

// StickyPointer is a snapshot of the tracked status message.
type StickyPointer struct {
	MessageID    string
	MessageCount int
	LastStatus   domain.ServerStatus
	Updating     bool
}

// StickyService keeps one status message as the latest message of a channel.
// It edits the message in place while few messages have been posted after it,
// and deletes and re-sends it once the channel has scrolled past.
//
// Only one reconcile runs at a time: a trigger that arrives while another is
// in flight returns without doing anything.
type StickyService struct {
	channel   StatusChannel
	status    StatusSource
	pres      config.Presentation
	threshold int
	timeout   time.Duration
	log       logger.Logger

	updating atomic.Bool

	mu         sync.Mutex
	messageID  string
	count      int
	lastStatus domain.ServerStatus
}

func NewStickyService(channel StatusChannel, status StatusSource, pres config.Presentation, threshold int, timeout time.Duration, log logger.Logger) *StickyService {
	if threshold < 1 {
		threshold = 10
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &StickyService{
		channel:   channel,
		status:    status,
		pres:      pres,
		threshold: threshold,
		timeout:   timeout,
		log:       log,
	}
}

func (s *StickyService) Pointer() StickyPointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StickyPointer{
		MessageID:    s.messageID,
		MessageCount: s.count,
		LastStatus:   s.lastStatus,
		Updating:     s.updating.Load(),
	}
}

// Reconcile brings the status message up to date. It reports false without
// error when another reconcile is already running.
func (s *StickyService) Reconcile(ctx context.Context) (bool, error) {
	if !s.updating.CompareAndSwap(false, true) {
		return false, nil
	}
	defer s.updating.Store(false)
	return true, s.reconcile(ctx)
}

func (s *StickyService) reconcile(ctx context.Context) error {
	status := s.status.Current()
	embed := RenderStatus(status, s.pres)

	s.mu.Lock()
	id, count := s.messageID, s.count
	s.mu.Unlock()

	if id != "" && count < s.threshold {
		err := s.withTimeout(ctx, func(ctx context.Context) error {
			return s.channel.Edit(ctx, id, embed)
		})
		if err == nil {
			s.mu.Lock()
			s.lastStatus = cloneOrNil(status)
			s.mu.Unlock()
			s.log.Debug("sticky edited", logger.String("message_id", id))
			return nil
		}
		s.log.Info("could not edit sticky message, sending a new one",
			logger.String("message_id", id), logger.Error(err))
	}

	if id != "" {
		err := s.withTimeout(ctx, func(ctx context.Context) error {
			return s.channel.Delete(ctx, id)
		})
		if err != nil {
			s.log.Debug("sticky delete ignored", logger.String("message_id", id), logger.Error(err))
		}
	}

	var newID string
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		newID, err = s.channel.Send(ctx, embed)
		return err
	})
	if err != nil {
		return fmt.Errorf("send sticky message: %w", errors.Join(domain.ErrTransient, err))
	}

	s.mu.Lock()
	s.messageID = newID
	s.count = 0
	s.lastStatus = cloneOrNil(status)
	s.mu.Unlock()

	s.log.Info("sticky placed", logger.String("message_id", newID), logger.String("previous_id", id))
	return nil
}

// OnChannelMessage counts one message posted in the sticky channel and
// reconciles once the threshold is reached. The tracked message itself and
// messages seen while a reconcile is running are not counted.
func (s *StickyService) OnChannelMessage(ctx context.Context, messageID string) {
	if s.updating.Load() {
		return
	}

	s.mu.Lock()
	if s.messageID == "" || messageID == s.messageID {
		s.mu.Unlock()
		return
	}
	s.count++
	due := s.count >= s.threshold
	s.mu.Unlock()

	if !due {
		return
	}
	if _, err := s.Reconcile(ctx); err != nil {
		s.log.Warn("sticky reconcile after channel activity failed", logger.Error(err))
	}
}

func (s *StickyService) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}

func cloneOrNil(s domain.ServerStatus) domain.ServerStatus {
	if s == nil {
		return nil
	}
	return domain.Clone(s)
}

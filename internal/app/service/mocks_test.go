package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

type registryMock struct{ mock.Mock }

func (m *registryMock) FindByCode(ctx context.Context, code string) (domain.LinkedPlayer, bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.LinkedPlayer), args.Bool(1), args.Error(2)
}

func (m *registryMock) FindByDiscordID(ctx context.Context, discordID string) (domain.LinkedPlayer, bool, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(domain.LinkedPlayer), args.Bool(1), args.Error(2)
}

func (m *registryMock) FindByUUID(ctx context.Context, uuid string) (domain.LinkedPlayer, bool, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(domain.LinkedPlayer), args.Bool(1), args.Error(2)
}

func (m *registryMock) LinkDiscord(ctx context.Context, uuid, discordID string) (domain.LinkedPlayer, bool, error) {
	args := m.Called(ctx, uuid, discordID)
	return args.Get(0).(domain.LinkedPlayer), args.Bool(1), args.Error(2)
}

func (m *registryMock) DeleteByUUID(ctx context.Context, uuid string) (bool, error) {
	args := m.Called(ctx, uuid)
	return args.Bool(0), args.Error(1)
}

type membersMock struct{ mock.Mock }

func (m *membersMock) FetchMember(ctx context.Context, userID string) (domain.MemberProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.MemberProfile), args.Error(1)
}

type webhookMock struct{ mock.Mock }

func (m *webhookMock) Post(ctx context.Context, msg domain.WebhookMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type gameAPIMock struct{ mock.Mock }

func (m *gameAPIMock) FetchStatus(ctx context.Context) (domain.StatusReading, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StatusReading), args.Error(1)
}

func (m *gameAPIMock) FetchMaintenance(ctx context.Context) (domain.MaintenanceInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.MaintenanceInfo), args.Error(1)
}

func (m *gameAPIMock) SendChat(ctx context.Context, author, message string) error {
	return m.Called(ctx, author, message).Error(0)
}

// fakeChannel records sticky operations. editErr/sendErr make the next calls
// fail; block, when set, holds Send until it is closed.
type fakeChannel struct {
	mu      sync.Mutex
	nextID  int
	sent    []domain.Embed
	edits   []string
	deletes []string
	editErr error
	delErr  error
	sendErr error

	entered chan struct{}
	block   chan struct{}
}

func (c *fakeChannel) Send(_ context.Context, e domain.Embed) (string, error) {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return "", c.sendErr
	}
	c.nextID++
	c.sent = append(c.sent, e)
	return "msg-" + strconv.Itoa(c.nextID), nil
}

func (c *fakeChannel) Edit(_ context.Context, id string, _ domain.Embed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editErr != nil {
		return c.editErr
	}
	c.edits = append(c.edits, id)
	return nil
}

func (c *fakeChannel) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, id)
	return c.delErr
}

func (c *fakeChannel) counts() (sent, edits, deletes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent), len(c.edits), len(c.deletes)
}

type staticStatus struct {
	mu sync.Mutex
	s  domain.ServerStatus
}

func (s *staticStatus) Current() domain.ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

func (s *staticStatus) set(st domain.ServerStatus) {
	s.mu.Lock()
	s.s = st
	s.mu.Unlock()
}

type reconcilerSpy struct {
	mu    sync.Mutex
	calls int
}

func (r *reconcilerSpy) Reconcile(context.Context) (bool, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return true, nil
}

func (r *reconcilerSpy) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func strPtr(s string) *string { return &s }

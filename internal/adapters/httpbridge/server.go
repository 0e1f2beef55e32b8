package httpbridge

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

// Implemented by service.RelayService
type Relay interface {
	Achievement(ctx context.Context, ev domain.AchievementEvent) error
	Chat(ctx context.Context, ev domain.ChatEvent) error
	Presence(ctx context.Context, ev domain.PresenceEvent) error
	TPSWarning(ctx context.Context, w domain.TPSWarning) error
}

type Deps struct {
	Relay          Relay
	Logger         logger.Logger
	Secret         string // optional X-Bridge-Secret
	StartTime      time.Time
	RequestTimeout time.Duration
}

// Server wraps the inbound HTTP server for game-server events.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// NewRouter builds the chi router shared by the long-running server and the
// lambda entry point.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 10 * time.Second
	}
	if d.StartTime.IsZero() {
		d.StartTime = time.Now()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(accessLog(d.Logger))

	r.Get("/healthz", healthz(d.StartTime))

	h := &handlers{relay: d.Relay, log: d.Logger}
	r.Group(func(r chi.Router) {
		r.Use(requireSecret(d.Secret, d.Logger))
		r.Post("/achievement", h.achievement)
		r.Post("/chat", h.chat)
		r.Post("/presence", h.presence)
		r.Post("/broadcast", h.broadcast)
	})
	return r
}

func New(addr string, d Deps) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{http: s, logger: d.Logger}
}

// Start blocks until the server fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logger.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}

package httpbridge

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/celestiamc/discord-bridge/internal/domain"
	"github.com/celestiamc/discord-bridge/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type handlers struct {
	relay Relay
	log   logger.Logger
}

func (h *handlers) achievement(w http.ResponseWriter, r *http.Request) {
	ev, err := parseAchievement(w, r)
	if err != nil {
		h.fail(w, r, "achievement", err)
		return
	}
	h.log.Info("achievement received", logger.String("player", ev.PlayerName), logger.String("uuid", ev.UUID))
	if err := h.relay.Achievement(r.Context(), ev); err != nil {
		h.fail(w, r, "achievement", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	ev, err := parseChat(w, r)
	if err != nil {
		h.fail(w, r, "chat", err)
		return
	}
	h.log.Debug("chat received", logger.String("player", ev.PlayerName), logger.String("uuid", ev.UUID))
	if err := h.relay.Chat(r.Context(), ev); err != nil {
		h.fail(w, r, "chat", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handlers) presence(w http.ResponseWriter, r *http.Request) {
	ev, err := parsePresence(w, r)
	if err != nil {
		h.fail(w, r, "presence", err)
		return
	}
	h.log.Info("presence received",
		logger.String("player", ev.PlayerName),
		logger.String("uuid", ev.PlayerUUID),
		logger.String("type", string(ev.Type)),
	)
	if err := h.relay.Presence(r.Context(), ev); err != nil {
		h.fail(w, r, "presence", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handlers) broadcast(w http.ResponseWriter, r *http.Request) {
	tw, err := parseBroadcast(w, r)
	if err != nil {
		h.fail(w, r, "broadcast", err)
		return
	}
	h.log.Info("tps warning received",
		logger.Float64("current_tps", tw.CurrentTPS), logger.Float64("threshold", tw.Threshold))
	if err := h.relay.TPSWarning(r.Context(), tw); err != nil {
		h.fail(w, r, "broadcast", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// fail maps err onto the response status and logs it with the route and
// request id.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, route string, err error) {
	log := h.log.With(
		logger.String("route", route),
		logger.String("request_id", middleware.GetReqID(r.Context())),
	)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("invalid payload", logger.String("fields", strings.Join(verr.Fields, ", ")))
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid payload format",
			Details: strings.Join(verr.Fields, ", "),
		})
	case errors.Is(err, domain.ErrNotFound):
		log.Info("player not linked", logger.Error(err))
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Player not found"})
	case errors.Is(err, domain.ErrWebhookNotConfigured):
		log.Error("webhook not configured")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Discord webhook not configured"})
	default:
		log.Error("relay failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func healthz(start time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

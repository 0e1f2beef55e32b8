package httpbridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/celestiamc/discord-bridge/internal/domain"
)

const maxBody = 1 << 20

type achievementBody struct {
	Payload *struct {
		EventType        *string `json:"eventType"`
		PlayerName       *string `json:"playerName"`
		AdvancementID    *string `json:"advancementId"`
		AdvancementTitle *string `json:"advancementTitle"`
		UUID             *string `json:"uuid"`
	} `json:"payload"`
}

type chatBody struct {
	Payload *struct {
		EventType  *string `json:"eventType"`
		PlayerName *string `json:"playerName"`
		Message    *string `json:"message"`
		UUID       *string `json:"uuid"`
	} `json:"payload"`
}

type presenceBody struct {
	PlayerName *string `json:"playerName"`
	PlayerUUID *string `json:"playerUuid"`
	Type       *string `json:"type"`
}

type broadcastBody struct {
	EventType  *string  `json:"eventType"`
	CurrentTPS *float64 `json:"currentTPS"`
	Threshold  *float64 `json:"threshold"`
}

// fieldErrors keeps one message per field path, in first-seen order.
type fieldErrors struct {
	seen map[string]bool
	msgs []string
}

func (f *fieldErrors) add(path, msg string) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[path] {
		return
	}
	f.seen[path] = true
	f.msgs = append(f.msgs, path+": "+msg)
}

func (f *fieldErrors) err() error {
	if len(f.msgs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: f.msgs}
}

func (f *fieldErrors) str(path string, v *string) string {
	if v == nil {
		f.add(path, "required")
		return ""
	}
	return *v
}

func (f *fieldErrors) nonEmpty(path string, v *string) string {
	s := f.str(path, v)
	if v != nil && strings.TrimSpace(s) == "" {
		f.add(path, "must not be empty")
	}
	return s
}

func (f *fieldErrors) literal(path string, v *string, want string) {
	s := f.str(path, v)
	if v != nil && s != want {
		f.add(path, fmt.Sprintf("must be %q", want))
	}
}

func (f *fieldErrors) uuid(path string, v *string) string {
	s := f.str(path, v)
	if v != nil {
		if _, err := uuid.Parse(s); err != nil {
			f.add(path, "must be a UUID")
		}
	}
	return s
}

func (f *fieldErrors) number(path string, v *float64) float64 {
	if v == nil {
		f.add(path, "required")
		return 0
	}
	return *v
}

// decode reads the body into dst. Type mismatches are recorded on errs and
// decoding continues; unreadable or non-JSON bodies fail outright.
func decode(w http.ResponseWriter, r *http.Request, dst any, errs *fieldErrors) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return &domain.ValidationError{Fields: []string{"body: " + err.Error()}}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &domain.ValidationError{Fields: []string{"body: required"}}
	}
	err = json.Unmarshal(raw, dst)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &typeErr):
		path := typeErr.Field
		if path == "" {
			path = "body"
		}
		errs.add(path, "expected "+jsonKind(typeErr.Type.Kind().String()))
		return nil
	default:
		return &domain.ValidationError{Fields: []string{"body: invalid JSON"}}
	}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "float64":
		return "number"
	case "struct", "ptr":
		return "object"
	default:
		return goKind
	}
}

func parseAchievement(w http.ResponseWriter, r *http.Request) (domain.AchievementEvent, error) {
	var (
		b    achievementBody
		errs fieldErrors
	)
	if err := decode(w, r, &b, &errs); err != nil {
		return domain.AchievementEvent{}, err
	}
	if b.Payload == nil {
		errs.add("payload", "required")
		return domain.AchievementEvent{}, errs.err()
	}
	p := b.Payload
	errs.literal("payload.eventType", p.EventType, domain.EventAchievementUnlocked)
	ev := domain.AchievementEvent{
		PlayerName:       errs.nonEmpty("payload.playerName", p.PlayerName),
		AdvancementID:    errs.str("payload.advancementId", p.AdvancementID),
		AdvancementTitle: errs.nonEmpty("payload.advancementTitle", p.AdvancementTitle),
		UUID:             errs.uuid("payload.uuid", p.UUID),
	}
	return ev, errs.err()
}

func parseChat(w http.ResponseWriter, r *http.Request) (domain.ChatEvent, error) {
	var (
		b    chatBody
		errs fieldErrors
	)
	if err := decode(w, r, &b, &errs); err != nil {
		return domain.ChatEvent{}, err
	}
	if b.Payload == nil {
		errs.add("payload", "required")
		return domain.ChatEvent{}, errs.err()
	}
	p := b.Payload
	errs.literal("payload.eventType", p.EventType, domain.EventChatMessage)
	ev := domain.ChatEvent{
		PlayerName: errs.nonEmpty("payload.playerName", p.PlayerName),
		Message:    errs.nonEmpty("payload.message", p.Message),
		UUID:       errs.uuid("payload.uuid", p.UUID),
	}
	return ev, errs.err()
}

func parsePresence(w http.ResponseWriter, r *http.Request) (domain.PresenceEvent, error) {
	var (
		b    presenceBody
		errs fieldErrors
	)
	if err := decode(w, r, &b, &errs); err != nil {
		return domain.PresenceEvent{}, err
	}
	ev := domain.PresenceEvent{
		PlayerName: errs.nonEmpty("playerName", b.PlayerName),
		PlayerUUID: errs.uuid("playerUuid", b.PlayerUUID),
	}
	switch t := errs.str("type", b.Type); domain.PresenceType(t) {
	case domain.PresenceJoin, domain.PresenceLeave:
		ev.Type = domain.PresenceType(t)
	default:
		if b.Type != nil {
			errs.add("type", `must be "join" or "leave"`)
		}
	}
	return ev, errs.err()
}

func parseBroadcast(w http.ResponseWriter, r *http.Request) (domain.TPSWarning, error) {
	var (
		b    broadcastBody
		errs fieldErrors
	)
	if err := decode(w, r, &b, &errs); err != nil {
		return domain.TPSWarning{}, err
	}
	errs.literal("eventType", b.EventType, domain.EventTPSDropWarning)
	tw := domain.TPSWarning{
		CurrentTPS: errs.number("currentTPS", b.CurrentTPS),
		Threshold:  errs.number("threshold", b.Threshold),
	}
	return tw, errs.err()
}

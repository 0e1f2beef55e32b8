package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ResolveSchedule turns a maintenance schedule into an RFC 3339 timestamp.
// Timestamps are normalised to UTC, cron expressions become their next
// occurrence after now, and anything unparseable is returned unchanged.
func ResolveSchedule(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, ok := parseTimestamp(s); ok {
		return t.UTC().Format(time.RFC3339)
	}
	sched, err := scheduleParser.Parse(s)
	if err != nil {
		return raw
	}
	next := sched.Next(now)
	if next.IsZero() {
		return raw
	}
	return next.UTC().Format(time.RFC3339)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeTimestamp renders s as a Discord relative time tag when it is a
// timestamp, or returns it unchanged.
func relativeTimestamp(s string) string {
	t, ok := parseTimestamp(strings.TrimSpace(s))
	if !ok {
		return s
	}
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":R>"
}

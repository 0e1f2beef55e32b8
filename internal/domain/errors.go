package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete errors wrap one of these so callers can branch with
// errors.Is without knowing the concrete type.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTransient  = errors.New("transient external failure")
)

var (
	ErrInvalidCode          = fmt.Errorf("%w: invalid verification code", ErrNotFound)
	ErrNotLinked            = fmt.Errorf("%w: player not linked", ErrNotFound)
	ErrLinkRace             = errors.New("link update matched no record")
	ErrWebhookNotConfigured = errors.New("discord webhook not configured")
)

// AlreadyLinkedError is returned when a Discord account already owns a record.
type AlreadyLinkedError struct {
	PlayerName string
}

func (e *AlreadyLinkedError) Error() string {
	return "discord account already linked to " + e.PlayerName
}

func (e *AlreadyLinkedError) Unwrap() error { return ErrConflict }

// ValidationError lists every offending field of an inbound payload.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

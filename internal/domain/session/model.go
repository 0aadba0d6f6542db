package session

import (
	"strings"
	"time"
)

// Canonical session status categories.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
	StatusUnknown   = "unknown"
)

// Session holds the canonical shape of one training-session row.
type Session struct {
	ID          string
	ClientID    string
	ClientName  string
	TrainerID   string
	TrainerName string
	RawStatus   string
	Price       *float64
	StartsAt    *time.Time
	CompletedAt *time.Time
	CreatedAt   *time.Time
}

var statusAliases = map[string]string{
	"scheduled": StatusScheduled,
	"agendada":  StatusScheduled,
	"booked":    StatusScheduled,
	"confirmed": StatusScheduled,
	"completed": StatusCompleted,
	"concluida": StatusCompleted,
	"done":      StatusCompleted,
	"attended":  StatusCompleted,
	"cancelled": StatusCancelled,
	"cancelada": StatusCancelled,
	"canceled":  StatusCancelled,
	"no_show":   StatusNoShow,
	"no-show":   StatusNoShow,
	"falta":     StatusNoShow,
	"missed":    StatusNoShow,
}

// ClassifyStatus maps a free-form session status onto a canonical
// category, defaulting to StatusUnknown.
func ClassifyStatus(raw string) string {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// Status returns the canonical status category for the session.
func (s Session) Status() string {
	return ClassifyStatus(s.RawStatus)
}

// OccurredAt returns the best available timestamp for feed ordering:
// completion time when present, otherwise the scheduled start.
func (s Session) OccurredAt() *time.Time {
	if s.CompletedAt != nil {
		return s.CompletedAt
	}
	return s.StartsAt
}

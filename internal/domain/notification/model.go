package notification

import (
	"strings"
	"time"

	"traindesk/internal/domain/dashboard"
)

// Notification holds the canonical shape of one notification row.
// Body is markdown as authored; rendering happens downstream.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Category  string
	Audience  string // role tag the notification targets, empty for everyone
	CreatedAt *time.Time
}

// categoryTones maps notification categories onto feed tones. Unlisted
// categories read as informational.
var categoryTones = map[string]dashboard.Tone{
	"payment": dashboard.TonePositive,
	"billing": dashboard.ToneWarning,
	"alert":   dashboard.ToneDanger,
	"system":  dashboard.ToneNeutral,
}

// Tone returns the feed tone for the notification's category.
func (n Notification) Tone() dashboard.Tone {
	if t, ok := categoryTones[strings.ToLower(strings.TrimSpace(n.Category))]; ok {
		return t
	}
	return dashboard.ToneInfo
}

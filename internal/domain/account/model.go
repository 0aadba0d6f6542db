package account

import (
	"strings"
	"time"
)

// Canonical account status categories.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusSuspended = "suspended"
	StatusInactive  = "inactive"
	StatusUnknown   = "unknown"
)

// Canonical roles recognised by the navigation summary.
const (
	RoleAdmin   = "ADMIN"
	RoleTrainer = "TRAINER"
	RoleClient  = "CLIENT"
)

// Account holds the canonical shape of one user account row.
type Account struct {
	ID           string
	Name         string
	Email        string
	RawStatus    string // free-form source value, pre-classification
	Role         string
	Active       *bool
	CreatedAt    *time.Time
	LastActiveAt *time.Time
}

// statusAliases maps the free-form status strings seen across the source
// tables onto the canonical categories. Lookup is case-insensitive.
var statusAliases = map[string]string{
	"active":    StatusActive,
	"ativo":     StatusActive,
	"enabled":   StatusActive,
	"pending":   StatusPending,
	"pendente":  StatusPending,
	"invited":   StatusPending,
	"trial":     StatusPending,
	"suspended": StatusSuspended,
	"suspenso":  StatusSuspended,
	"blocked":   StatusSuspended,
	"inactive":  StatusInactive,
	"inativo":   StatusInactive,
	"archived":  StatusInactive,
	"cancelled": StatusInactive,
}

// ClassifyStatus maps a free-form status string plus an optional active
// flag onto a canonical category. An explicit status string wins over the
// flag; with neither present the result is StatusUnknown.
// PRE: none — every input is accepted
// POST: Returns one of the five canonical status categories
func ClassifyStatus(raw string, active *bool) string {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	if active != nil {
		if *active {
			return StatusActive
		}
		return StatusInactive
	}
	return StatusUnknown
}

// ClassifyRole maps a free-form role string onto a canonical role tag.
// Unrecognised values default to RoleClient, the least-privileged view.
func ClassifyRole(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADMIN", "ADMINISTRATOR", "OWNER":
		return RoleAdmin
	case "TRAINER", "COACH", "PT", "STAFF":
		return RoleTrainer
	default:
		return RoleClient
	}
}

// Status returns the canonical status category for the account.
// INVARIANT: the receiver is not mutated
func (a Account) Status() string {
	return ClassifyStatus(a.RawStatus, a.Active)
}

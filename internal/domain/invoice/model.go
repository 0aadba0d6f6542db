package invoice

import (
	"strings"
	"time"
)

// Canonical invoice status categories.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
	StatusVoid    = "void"
	StatusUnknown = "unknown"
)

// Invoice holds the canonical shape of one invoice row.
type Invoice struct {
	ID         string
	ClientID   string
	ClientName string
	RawStatus  string
	Amount     *float64
	IssuedAt   *time.Time
	DueAt      *time.Time
	PaidAt     *time.Time
}

var statusAliases = map[string]string{
	"paid":      StatusPaid,
	"paga":      StatusPaid,
	"settled":   StatusPaid,
	"pending":   StatusPending,
	"pendente":  StatusPending,
	"open":      StatusPending,
	"issued":    StatusPending,
	"overdue":   StatusOverdue,
	"vencida":   StatusOverdue,
	"late":      StatusOverdue,
	"void":      StatusVoid,
	"anulada":   StatusVoid,
	"cancelled": StatusVoid,
}

// ClassifyStatus maps a free-form invoice status onto a canonical
// category, defaulting to StatusUnknown.
func ClassifyStatus(raw string) string {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// Status returns the canonical status category for the invoice.
func (i Invoice) Status() string {
	return ClassifyStatus(i.RawStatus)
}

// IsPaid reports whether the invoice counts toward realised revenue.
func (i Invoice) IsPaid() bool {
	return i.Status() == StatusPaid
}

// OccurredAt returns the best available timestamp for feed ordering and
// timeline placement: payment time when present, otherwise issue time.
func (i Invoice) OccurredAt() *time.Time {
	if i.PaidAt != nil {
		return i.PaidAt
	}
	return i.IssuedAt
}

package projections

import (
	"sort"
	"time"

	"traindesk/internal/domain/dashboard"
	"traindesk/internal/domain/invoice"
	"traindesk/internal/domain/notification"
	"traindesk/internal/domain/session"

	"traindesk/internal/application/aggregate"
)

// feedEvent is one candidate entry for the recent-activity feed.
type feedEvent struct {
	id     string
	title  string
	detail string
	at     time.Time
	tone   dashboard.Tone
}

// buildFeed sorts candidates newest-first and bounds the feed.
// POST: result length <= dashboard.MaxActivity, sorted newest-first
func buildFeed(events []feedEvent) []dashboard.ActivityItem {
	sorted := make([]feedEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].at.After(sorted[b].at)
	})
	if len(sorted) > dashboard.MaxActivity {
		sorted = sorted[:dashboard.MaxActivity]
	}
	items := make([]dashboard.ActivityItem, 0, len(sorted))
	for _, e := range sorted {
		items = append(items, dashboard.ActivityItem{
			ID:         e.id,
			Title:      e.title,
			Detail:     e.detail,
			OccurredAt: e.at.Format(time.RFC3339),
			Tone:       e.tone,
		})
	}
	return items
}

// sessionEvents turns sessions with usable timestamps into feed candidates.
func sessionEvents(sessions []session.Session) []feedEvent {
	events := make([]feedEvent, 0, len(sessions))
	for _, s := range sessions {
		at := s.OccurredAt()
		if at == nil {
			continue
		}
		title := "Sessão agendada"
		tone := dashboard.ToneInfo
		switch s.Status() {
		case session.StatusCompleted:
			title = "Sessão concluída"
			tone = dashboard.TonePositive
		case session.StatusCancelled:
			title = "Sessão cancelada"
			tone = dashboard.ToneWarning
		case session.StatusNoShow:
			title = "Falta à sessão"
			tone = dashboard.ToneDanger
		}
		detail := s.ClientName
		if s.TrainerName != "" {
			if detail != "" {
				detail += " • "
			}
			detail += s.TrainerName
		}
		events = append(events, feedEvent{id: s.ID, title: title, detail: detail, at: *at, tone: tone})
	}
	return events
}

// invoiceEvents turns invoices with usable timestamps into feed candidates.
func invoiceEvents(invoices []invoice.Invoice) []feedEvent {
	events := make([]feedEvent, 0, len(invoices))
	for _, inv := range invoices {
		at := inv.OccurredAt()
		if at == nil {
			continue
		}
		title := "Fatura emitida"
		tone := dashboard.ToneInfo
		switch inv.Status() {
		case invoice.StatusPaid:
			title = "Fatura paga"
			tone = dashboard.TonePositive
		case invoice.StatusOverdue:
			title = "Fatura vencida"
			tone = dashboard.ToneDanger
		}
		detail := inv.ClientName
		if inv.Amount != nil {
			if detail != "" {
				detail += " • "
			}
			detail += aggregate.FormatEuro(*inv.Amount)
		}
		events = append(events, feedEvent{id: inv.ID, title: title, detail: detail, at: *at, tone: tone})
	}
	return events
}

// notificationEvents turns notifications into feed candidates.
func notificationEvents(notifications []notification.Notification) []feedEvent {
	events := make([]feedEvent, 0, len(notifications))
	for _, n := range notifications {
		if n.CreatedAt == nil {
			continue
		}
		title := n.Title
		if title == "" {
			title = "Notificação"
		}
		events = append(events, feedEvent{id: n.ID, title: title, detail: n.Body, at: *n.CreatedAt, tone: n.Tone()})
	}
	return events
}

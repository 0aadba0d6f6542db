package projections

import (
	"fmt"
	"time"

	"traindesk/internal/application/aggregate"
	"traindesk/internal/application/normalize"
	"traindesk/internal/domain/account"
	"traindesk/internal/domain/dashboard"
	"traindesk/internal/domain/invoice"
	"traindesk/internal/domain/session"
	"traindesk/internal/domain/wallet"
)

// Week-count options for the system overview timeline.
const (
	DefaultOverviewWeeks = 12
	MaxOverviewWeeks     = 36
)

// AllowedOverviewWeeks are the enumerated range selections.
var AllowedOverviewWeeks = []int{12, 24, 36}

// GetSystemOverviewQuery carries input for the system-wide dashboard.
type GetSystemOverviewQuery struct {
	Now        time.Time
	RangeWeeks int // 12, 24 or 36; anything else falls back to 12
}

// GetSystemOverviewData carries the raw rows the dashboard aggregates.
type GetSystemOverviewData struct {
	Accounts      []normalize.RawRecord
	Sessions      []normalize.RawRecord
	Invoices      []normalize.RawRecord
	Notifications []normalize.RawRecord
	WalletEntries []normalize.RawRecord
}

// QueryGetSystemOverview assembles the system-wide operational snapshot.
// Pure: the same query and data always produce the same snapshot.
// POST: Returns a snapshot satisfying dashboard.ValidateSnapshot
func QueryGetSystemOverview(q GetSystemOverviewQuery, data GetSystemOverviewData) dashboard.Snapshot {
	weeks := DefaultOverviewWeeks
	for _, allowed := range AllowedOverviewWeeks {
		if q.RangeWeeks == allowed {
			weeks = q.RangeWeeks
		}
	}

	accounts := normalize.Accounts(data.Accounts)
	sessions := normalize.Sessions(data.Sessions)
	invoices := normalize.Invoices(data.Invoices)
	notifications := normalize.Notifications(data.Notifications)
	entries := normalize.WalletEntries(data.WalletEntries)

	statusKeys := make([]string, 0, len(accounts))
	activeCount := 0
	for _, a := range accounts {
		status := a.Status()
		statusKeys = append(statusKeys, status)
		if status == account.StatusActive {
			activeCount++
		}
	}

	sessionKeys := make([]string, 0, len(sessions))
	completedSessions := 0
	for _, s := range sessions {
		status := s.Status()
		sessionKeys = append(sessionKeys, status)
		if status == session.StatusCompleted {
			completedSessions++
		}
	}

	invoiceKeys := make([]string, 0, len(invoices))
	paidRevenue := 0.0
	overdueCount := 0
	for _, inv := range invoices {
		status := inv.Status()
		invoiceKeys = append(invoiceKeys, status)
		if status == invoice.StatusPaid && inv.Amount != nil {
			paidRevenue += *inv.Amount
		}
		if status == invoice.StatusOverdue {
			overdueCount++
		}
	}

	balances := latestBalances(entries)
	bandKeys := make([]string, 0, len(balances))
	negativeWallets := 0
	for _, b := range balances {
		bandKeys = append(bandKeys, wallet.ClassifyBand(b.balance))
		if b.balance != nil && *b.balance < 0 {
			negativeWallets++
		}
	}

	timeline := aggregate.NewTimeline(q.Now, aggregate.UnitWeek, weeks, "newAccounts", "sessions", "revenue")
	for _, a := range accounts {
		timeline.Increment("newAccounts", a.CreatedAt)
	}
	for _, s := range sessions {
		timeline.Increment("sessions", s.OccurredAt())
	}
	for _, inv := range invoices {
		if inv.IsPaid() && inv.Amount != nil {
			timeline.Add("revenue", inv.OccurredAt(), *inv.Amount)
		}
	}

	return dashboard.Snapshot{
		GeneratedAt: q.Now.Format(time.RFC3339),
		Source:      dashboard.SourceLive,
		Hero:        overviewHero(len(accounts), activeCount, completedSessions, weeks, paidRevenue, negativeWallets),
		Timeline:    timeline.Buckets(),
		Distributions: map[string][]dashboard.Segment{
			"accountStatus": aggregate.Distribution(statusKeys, statusCategories),
			"sessionStatus": aggregate.Distribution(sessionKeys, sessionCategories),
			"invoiceStatus": aggregate.Distribution(invoiceKeys, invoiceCategories),
			"walletBand":    aggregate.Distribution(bandKeys, walletCategories()),
		},
		Highlights: map[string][]dashboard.HighlightCard{
			"topInvoices":    overviewTopInvoices(invoices),
			"topDebtors":     overviewTopDebtors(balances),
			"newestAccounts": overviewNewestAccounts(accounts),
		},
		Activity: buildFeed(append(notificationEvents(notifications), invoiceEvents(invoices)...)),
	}
}

// clientBalance is the latest known running balance for one client.
type clientBalance struct {
	clientID string
	name     string
	balance  *float64
	at       *time.Time
}

// latestBalances reduces the wallet ledger to one balance per client,
// keeping the newest entry. Entries without a client id are skipped —
// a balance that cannot be attributed is useless to every consumer.
// Output order follows first appearance in the ledger, so the reduction
// is deterministic.
func latestBalances(entries []wallet.Entry) []clientBalance {
	index := make(map[string]int)
	out := make([]clientBalance, 0, len(entries))
	for _, e := range entries {
		if e.ClientID == "" {
			continue
		}
		i, seen := index[e.ClientID]
		if !seen {
			index[e.ClientID] = len(out)
			out = append(out, clientBalance{clientID: e.ClientID, name: e.ClientName, balance: e.Balance, at: e.CreatedAt})
			continue
		}
		if newerThan(e.CreatedAt, out[i].at) {
			out[i].balance = e.Balance
			out[i].at = e.CreatedAt
			if e.ClientName != "" {
				out[i].name = e.ClientName
			}
		}
	}
	return out
}

// newerThan treats a nil timestamp as older than any known one.
func newerThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

func overviewHero(total, active, completedSessions, weeks int, revenue float64, negativeWallets int) []dashboard.HeroMetric {
	totalTone := dashboard.TonePrimary
	if total == 0 {
		totalTone = dashboard.ToneNeutral
	}

	sessionsTone := dashboard.TonePositive
	if completedSessions == 0 {
		sessionsTone = dashboard.ToneNeutral
	}

	revenueTone := dashboard.ToneNeutral
	if revenue > 0 {
		revenueTone = dashboard.TonePositive
	}

	walletTone := dashboard.TonePositive
	switch {
	case total == 0 && negativeWallets == 0:
		walletTone = dashboard.ToneNeutral
	case negativeWallets > 0:
		walletTone = dashboard.ToneDanger
	}

	return []dashboard.HeroMetric{
		{
			ID:     "totalAccounts",
			Label:  "Contas",
			Value:  aggregate.FormatCount(total),
			Helper: fmt.Sprintf("%s ativas", aggregate.FormatPercent(aggregate.Percent(float64(active), float64(total)))),
			Tone:   totalTone,
		},
		{
			ID:     "sessionsRange",
			Label:  "Sessões concluídas",
			Value:  aggregate.FormatCount(completedSessions),
			Helper: fmt.Sprintf("média %.1f por semana", aggregate.PerCapita(float64(completedSessions), weeks)),
			Tone:   sessionsTone,
		},
		{
			ID:     "revenueRange",
			Label:  "Receita do período",
			Value:  aggregate.FormatEuro(revenue),
			Helper: fmt.Sprintf("faturas pagas em %d semanas", weeks),
			Tone:   revenueTone,
		},
		{
			ID:     "negativeWallets",
			Label:  "Carteiras negativas",
			Value:  aggregate.FormatCount(negativeWallets),
			Helper: "clientes com saldo em dívida",
			Tone:   walletTone,
		},
	}
}

func overviewTopInvoices(invoices []invoice.Invoice) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Amount == nil {
			continue
		}
		title := inv.ClientName
		if title == "" {
			title = "Fatura " + inv.ID
		}
		when := ""
		if at := inv.OccurredAt(); at != nil {
			when = " • " + at.Format("2 Jan")
		}
		entries = append(entries, aggregate.Ranked{
			Score: *inv.Amount,
			Card: dashboard.HighlightCard{
				ID:          inv.ID,
				Title:       title,
				Description: fmt.Sprintf("%s%s", aggregate.FormatEuro(*inv.Amount), when),
				Amount:      inv.Amount,
				Tone:        invoiceHighlightTone(inv),
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

func invoiceHighlightTone(inv invoice.Invoice) dashboard.Tone {
	switch inv.Status() {
	case invoice.StatusPaid:
		return dashboard.TonePositive
	case invoice.StatusOverdue:
		return dashboard.ToneDanger
	default:
		return dashboard.ToneInfo
	}
}

func overviewTopDebtors(balances []clientBalance) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(balances))
	for _, b := range balances {
		if b.balance == nil || *b.balance >= 0 {
			continue
		}
		title := b.name
		if title == "" {
			title = "Cliente " + b.clientID
		}
		owed := -*b.balance
		entries = append(entries, aggregate.Ranked{
			Score: owed, // deepest debt first
			Card: dashboard.HighlightCard{
				ID:          b.clientID,
				Title:       title,
				Description: fmt.Sprintf("saldo %s", aggregate.FormatEuro(*b.balance)),
				Amount:      b.balance,
				Tone:        wallet.BandOf(b.balance).Tone,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

func overviewNewestAccounts(accounts []account.Account) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(accounts))
	for _, a := range accounts {
		if a.CreatedAt == nil {
			continue
		}
		title := a.Name
		if title == "" {
			title = a.Email
		}
		if title == "" {
			title = "Conta " + a.ID
		}
		entries = append(entries, aggregate.Ranked{
			Score: float64(a.CreatedAt.UnixMilli()),
			Card: dashboard.HighlightCard{
				ID:          a.ID,
				Title:       title,
				Description: fmt.Sprintf("%s • desde %s", account.ClassifyRole(a.Role), a.CreatedAt.Format("2 Jan 2006")),
				Tone:        dashboard.ToneInfo,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

package projections

import (
	"fmt"
	"time"

	"traindesk/internal/application/aggregate"
	"traindesk/internal/application/normalize"
	"traindesk/internal/domain/account"
	"traindesk/internal/domain/client"
	"traindesk/internal/domain/dashboard"
	"traindesk/internal/domain/invoice"
	"traindesk/internal/domain/notification"
	"traindesk/internal/domain/session"
	"traindesk/internal/domain/wallet"
)

// NavTimelineDays is the fixed daily timeline length of the navigation
// summary.
const NavTimelineDays = 7

// GetNavSummaryQuery carries input for the role-aware navigation summary.
// Role and SubjectID only select which KPI set to compute over the
// supplied rows — they never trigger fetching.
type GetNavSummaryQuery struct {
	Role      string // classified via account.ClassifyRole
	SubjectID string // trainer id or client id depending on role; optional
	Now       time.Time
}

// GetNavSummaryData carries the raw rows the summary aggregates.
type GetNavSummaryData struct {
	Accounts      []normalize.RawRecord
	Clients       []normalize.RawRecord
	Sessions      []normalize.RawRecord
	Invoices      []normalize.RawRecord
	Notifications []normalize.RawRecord
	WalletEntries []normalize.RawRecord
}

// QueryGetNavSummary assembles the navigation chrome snapshot for one
// role. Pure: the same query and data always produce the same snapshot.
// POST: Returns a snapshot satisfying dashboard.ValidateSnapshot
func QueryGetNavSummary(q GetNavSummaryQuery, data GetNavSummaryData) dashboard.Snapshot {
	role := account.ClassifyRole(q.Role)

	clients := normalize.Clients(data.Clients)
	sessions := normalize.Sessions(data.Sessions)
	invoices := normalize.Invoices(data.Invoices)
	notifications := roleNotifications(normalize.Notifications(data.Notifications), role)

	var hero []dashboard.HeroMetric
	var distributions map[string][]dashboard.Segment

	switch role {
	case account.RoleAdmin:
		accounts := normalize.Accounts(data.Accounts)
		hero = navAdminHero(accounts, clients, invoices)
		distributions = map[string][]dashboard.Segment{
			"accountStatus": aggregate.Distribution(accountStatusKeys(accounts), statusCategories),
		}

	case account.RoleTrainer:
		clients = trainerClients(clients, q.SubjectID)
		sessions = trainerSessions(sessions, q.SubjectID)
		hero = navTrainerHero(clients, sessions, q.Now)
		distributions = map[string][]dashboard.Segment{
			"risk": aggregate.Distribution(riskKeysOf(clients), riskCategories),
		}

	default: // account.RoleClient
		sessions = clientSessions(sessions, q.SubjectID)
		invoices = clientInvoices(invoices, q.SubjectID)
		balance := clientWalletBalance(normalize.WalletEntries(data.WalletEntries), q.SubjectID)
		hero = navClientHero(sessions, invoices, balance, q.Now)
		distributions = map[string][]dashboard.Segment{
			"sessionStatus": aggregate.Distribution(sessionStatusKeys(sessions), sessionCategories),
		}
	}

	timeline := aggregate.NewTimeline(q.Now, aggregate.UnitDay, NavTimelineDays, "sessions")
	for _, s := range sessions {
		timeline.Increment("sessions", s.OccurredAt())
	}

	return dashboard.Snapshot{
		GeneratedAt:   q.Now.Format(time.RFC3339),
		Source:        dashboard.SourceLive,
		Hero:          hero,
		Timeline:      timeline.Buckets(),
		Distributions: distributions,
		Highlights: map[string][]dashboard.HighlightCard{
			"upcoming": upcomingSessions(sessions, q.Now),
		},
		Activity: buildFeed(append(notificationEvents(notifications), invoiceEvents(invoices)...)),
	}
}

// roleNotifications keeps notifications addressed to everyone or to the
// given role.
func roleNotifications(all []notification.Notification, role string) []notification.Notification {
	out := make([]notification.Notification, 0, len(all))
	for _, n := range all {
		if n.Audience == "" || account.ClassifyRole(n.Audience) == role {
			out = append(out, n)
		}
	}
	return out
}

func accountStatusKeys(accounts []account.Account) []string {
	keys := make([]string, 0, len(accounts))
	for _, a := range accounts {
		keys = append(keys, a.Status())
	}
	return keys
}

func riskKeysOf(clients []client.Client) []string {
	keys := make([]string, 0, len(clients))
	for _, c := range clients {
		keys = append(keys, c.RiskLevel())
	}
	return keys
}

func sessionStatusKeys(sessions []session.Session) []string {
	keys := make([]string, 0, len(sessions))
	for _, s := range sessions {
		keys = append(keys, s.Status())
	}
	return keys
}

// trainerClients keeps clients assigned to the trainer. An empty subject
// keeps everything — the caller scoped the fetch instead.
func trainerClients(clients []client.Client, trainerID string) []client.Client {
	if trainerID == "" {
		return clients
	}
	out := make([]client.Client, 0, len(clients))
	for _, c := range clients {
		if c.TrainerID == trainerID || c.TrainerName == trainerID {
			out = append(out, c)
		}
	}
	return out
}

func trainerSessions(sessions []session.Session, trainerID string) []session.Session {
	if trainerID == "" {
		return sessions
	}
	out := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.TrainerID == trainerID || s.TrainerName == trainerID {
			out = append(out, s)
		}
	}
	return out
}

func clientSessions(sessions []session.Session, clientID string) []session.Session {
	if clientID == "" {
		return sessions
	}
	out := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out
}

func clientInvoices(invoices []invoice.Invoice, clientID string) []invoice.Invoice {
	if clientID == "" {
		return invoices
	}
	out := make([]invoice.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out
}

func clientWalletBalance(entries []wallet.Entry, clientID string) *float64 {
	var balance *float64
	var at *time.Time
	for _, e := range entries {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		if balance == nil || newerThan(e.CreatedAt, at) {
			balance = e.Balance
			at = e.CreatedAt
		}
	}
	return balance
}

func navAdminHero(accounts []account.Account, clients []client.Client, invoices []invoice.Invoice) []dashboard.HeroMetric {
	critical := 0
	for _, c := range clients {
		if c.RiskLevel() == client.RiskCritical {
			critical++
		}
	}
	overdue := 0
	for _, inv := range invoices {
		if inv.Status() == invoice.StatusOverdue {
			overdue++
		}
	}

	totalTone := dashboard.TonePrimary
	if len(accounts) == 0 {
		totalTone = dashboard.ToneNeutral
	}
	riskTone := dashboard.TonePositive
	if critical > 0 {
		riskTone = dashboard.ToneWarning
	}
	overdueTone := dashboard.TonePositive
	if overdue > 0 {
		overdueTone = dashboard.ToneDanger
	}

	return []dashboard.HeroMetric{
		{ID: "totalAccounts", Label: "Contas", Value: aggregate.FormatCount(len(accounts)), Helper: fmt.Sprintf("%d clientes", len(clients)), Tone: totalTone},
		{ID: "atRisk", Label: "Clientes em risco", Value: aggregate.FormatCount(critical), Helper: "risco crítico", Tone: riskTone},
		{ID: "overdueInvoices", Label: "Faturas vencidas", Value: aggregate.FormatCount(overdue), Helper: "a exigir cobrança", Tone: overdueTone},
	}
}

func navTrainerHero(clients []client.Client, sessions []session.Session, now time.Time) []dashboard.HeroMetric {
	upcoming := 0
	for _, s := range sessions {
		if s.Status() == session.StatusScheduled && s.StartsAt != nil && s.StartsAt.After(now) {
			upcoming++
		}
	}
	critical := 0
	for _, c := range clients {
		if c.RiskLevel() == client.RiskCritical {
			critical++
		}
	}

	clientsTone := dashboard.TonePrimary
	if len(clients) == 0 {
		clientsTone = dashboard.ToneNeutral
	}
	upcomingTone := dashboard.TonePositive
	if upcoming == 0 {
		upcomingTone = dashboard.ToneNeutral
	}
	riskTone := dashboard.TonePositive
	if critical > 0 {
		riskTone = dashboard.ToneWarning
	}

	return []dashboard.HeroMetric{
		{ID: "myClients", Label: "Os meus clientes", Value: aggregate.FormatCount(len(clients)), Helper: "atribuídos", Tone: clientsTone},
		{ID: "upcomingSessions", Label: "Sessões agendadas", Value: aggregate.FormatCount(upcoming), Helper: "por realizar", Tone: upcomingTone},
		{ID: "atRisk", Label: "Clientes em risco", Value: aggregate.FormatCount(critical), Helper: "risco crítico", Tone: riskTone},
	}
}

func navClientHero(sessions []session.Session, invoices []invoice.Invoice, balance *float64, now time.Time) []dashboard.HeroMetric {
	upcoming := 0
	var next *time.Time
	for _, s := range sessions {
		if s.Status() != session.StatusScheduled || s.StartsAt == nil || !s.StartsAt.After(now) {
			continue
		}
		upcoming++
		if next == nil || s.StartsAt.Before(*next) {
			next = s.StartsAt
		}
	}
	pending := 0
	for _, inv := range invoices {
		status := inv.Status()
		if status == invoice.StatusPending || status == invoice.StatusOverdue {
			pending++
		}
	}

	nextHelper := "nada agendado"
	if next != nil {
		nextHelper = "próxima a " + next.Format("2 Jan 15:04")
	}
	upcomingTone := dashboard.TonePositive
	if upcoming == 0 {
		upcomingTone = dashboard.ToneNeutral
	}

	balanceValue := 0.0
	if balance != nil {
		balanceValue = *balance
	}
	pendingTone := dashboard.TonePositive
	if pending > 0 {
		pendingTone = dashboard.ToneWarning
	}

	return []dashboard.HeroMetric{
		{ID: "upcomingSessions", Label: "Sessões agendadas", Value: aggregate.FormatCount(upcoming), Helper: nextHelper, Tone: upcomingTone},
		{ID: "walletBalance", Label: "Saldo da carteira", Value: aggregate.FormatEuro(balanceValue), Helper: wallet.BandOf(balance).Label, Tone: wallet.BandOf(balance).Tone},
		{ID: "pendingInvoices", Label: "Faturas por pagar", Value: aggregate.FormatCount(pending), Helper: "pendentes ou vencidas", Tone: pendingTone},
	}
}

// upcomingSessions ranks the next scheduled sessions, soonest first.
func upcomingSessions(sessions []session.Session, now time.Time) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(sessions))
	for _, s := range sessions {
		if s.Status() != session.StatusScheduled || s.StartsAt == nil || !s.StartsAt.After(now) {
			continue
		}
		title := s.ClientName
		if title == "" {
			title = "Sessão " + s.ID
		}
		desc := s.StartsAt.Format("2 Jan 15:04")
		if s.TrainerName != "" {
			desc += " • PT " + s.TrainerName
		}
		entries = append(entries, aggregate.Ranked{
			// Negated epoch: TopCards ranks descending, we want soonest first.
			Score: -float64(s.StartsAt.UnixMilli()),
			Card: dashboard.HighlightCard{
				ID:          s.ID,
				Title:       title,
				Description: desc,
				Tone:        dashboard.TonePrimary,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

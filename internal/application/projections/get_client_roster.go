package projections

import (
	"fmt"
	"time"

	"traindesk/internal/application/aggregate"
	"traindesk/internal/application/normalize"
	"traindesk/internal/domain/account"
	"traindesk/internal/domain/client"
	"traindesk/internal/domain/dashboard"
)

// DefaultRosterRangeDays is the daily timeline length when the caller
// does not pick one.
const DefaultRosterRangeDays = 30

// Hero tone thresholds for the roster dashboard, declared per metric.
const rosterActiveShareWarnBelow = 50.0 // percent

// GetClientRosterQuery carries input for the client-roster dashboard.
type GetClientRosterQuery struct {
	Now       time.Time
	RangeDays int // daily buckets; DefaultRosterRangeDays when <= 0
}

// GetClientRosterData carries the raw rows the dashboard aggregates,
// already fetched by the storage collaborator.
type GetClientRosterData struct {
	Clients  []normalize.RawRecord
	Sessions []normalize.RawRecord
	Invoices []normalize.RawRecord
}

// QueryGetClientRoster assembles the client-roster dashboard snapshot.
// Pure: the same query and data always produce the same snapshot.
// PRE: none — malformed optional fields degrade per the normalizer
// POST: Returns a snapshot satisfying dashboard.ValidateSnapshot
func QueryGetClientRoster(q GetClientRosterQuery, data GetClientRosterData) dashboard.Snapshot {
	rangeDays := q.RangeDays
	if rangeDays <= 0 {
		rangeDays = DefaultRosterRangeDays
	}

	clients := normalize.Clients(data.Clients)
	sessions := normalize.Sessions(data.Sessions)
	invoices := normalize.Invoices(data.Invoices)

	statusKeys := make([]string, 0, len(clients))
	riskKeys := make([]string, 0, len(clients))
	engagementKeys := make([]string, 0, len(clients))
	activeCount := 0
	criticalCount := 0
	watchCount := 0
	totalSpend30 := 0.0
	totalSessions30 := 0.0
	for _, c := range clients {
		status := c.Status()
		statusKeys = append(statusKeys, status)
		if status == account.StatusActive {
			activeCount++
		}
		switch c.RiskLevel() {
		case client.RiskCritical:
			criticalCount++
		case client.RiskWatch:
			watchCount++
		}
		engagementKeys = append(engagementKeys, c.EngagementTier())
		riskKeys = append(riskKeys, c.RiskLevel())
		if c.SpendLast30Days != nil {
			totalSpend30 += *c.SpendLast30Days
		}
		if c.SessionsLast30Days != nil {
			totalSessions30 += *c.SessionsLast30Days
		}
	}

	timeline := aggregate.NewTimeline(q.Now, aggregate.UnitDay, rangeDays, "newClients", "sessions", "revenue")
	for _, c := range clients {
		timeline.Increment("newClients", c.CreatedAt)
	}
	if len(sessions) > 0 {
		for _, s := range sessions {
			timeline.Increment("sessions", s.OccurredAt())
		}
	} else {
		// Only the per-client 30-day aggregate is known; spread it evenly
		// rather than attributing it all to one day. An approximation, not
		// a reconstruction of the true series.
		timeline.Spread("sessions", totalSessions30)
	}
	timeline.Spread("revenue", totalSpend30)

	return dashboard.Snapshot{
		GeneratedAt: q.Now.Format(time.RFC3339),
		Source:      dashboard.SourceLive,
		Hero:        rosterHero(clients, activeCount, criticalCount, watchCount, totalSpend30),
		Timeline:    timeline.Buckets(),
		Distributions: map[string][]dashboard.Segment{
			"status":     aggregate.Distribution(statusKeys, statusCategories),
			"risk":       aggregate.Distribution(riskKeys, riskCategories),
			"engagement": aggregate.Distribution(engagementKeys, engagementCategories),
		},
		Highlights: map[string][]dashboard.HighlightCard{
			"topSpenders": rosterTopSpenders(clients),
			"atRisk":      rosterAtRisk(clients),
			"newest":      rosterNewest(clients),
		},
		Activity: buildFeed(append(sessionEvents(sessions), invoiceEvents(invoices)...)),
	}
}

func rosterHero(clients []client.Client, active, critical, watch int, spend30 float64) []dashboard.HeroMetric {
	total := len(clients)

	totalTone := dashboard.TonePrimary
	if total == 0 {
		totalTone = dashboard.ToneNeutral
	}

	activePct := aggregate.Percent(float64(active), float64(total))
	activeTone := dashboard.TonePositive
	switch {
	case total == 0:
		activeTone = dashboard.ToneNeutral
	case activePct < rosterActiveShareWarnBelow:
		activeTone = dashboard.ToneWarning
	}

	riskTone := dashboard.TonePositive
	switch {
	case total == 0:
		riskTone = dashboard.ToneNeutral
	case critical > 0:
		riskTone = dashboard.ToneWarning
	}

	revenueTone := dashboard.ToneNeutral
	if spend30 > 0 {
		revenueTone = dashboard.TonePositive
	}

	return []dashboard.HeroMetric{
		{
			ID:     "totalClients",
			Label:  "Clientes",
			Value:  aggregate.FormatCount(total),
			Helper: fmt.Sprintf("%d ativos", active),
			Tone:   totalTone,
		},
		{
			ID:     "activeShare",
			Label:  "Taxa de ativos",
			Value:  aggregate.FormatPercent(activePct),
			Helper: fmt.Sprintf("%d de %d clientes", active, total),
			Tone:   activeTone,
		},
		{
			ID:     "atRisk",
			Label:  "Clientes em risco",
			Value:  aggregate.FormatCount(critical),
			Helper: fmt.Sprintf("%d em observação", watch),
			Tone:   riskTone,
		},
		{
			ID:     "revenue30d",
			Label:  "Receita 30 dias",
			Value:  aggregate.FormatEuro(spend30),
			Helper: fmt.Sprintf("média %s por cliente", aggregate.FormatEuro(aggregate.PerCapita(spend30, total))),
			Tone:   revenueTone,
		},
	}
}

func rosterTopSpenders(clients []client.Client) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(clients))
	for _, c := range clients {
		if c.SpendLast30Days == nil {
			continue
		}
		spend := *c.SpendLast30Days
		entries = append(entries, aggregate.Ranked{
			Score: spend,
			Card: dashboard.HighlightCard{
				ID:          c.ID,
				Title:       displayName(c),
				Description: fmt.Sprintf("%s sessões / %s agendadas • %s", countOrDash(c.SessionsLast30Days), countOrDash(c.SessionsScheduled), aggregate.FormatEuro(spend)),
				Amount:      c.SpendLast30Days,
				Tone:        dashboard.TonePositive,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

func rosterAtRisk(clients []client.Client) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(clients))
	for _, c := range clients {
		level := c.RiskLevel()
		if level == client.RiskHealthy || c.RiskScore == nil {
			continue
		}
		tone := dashboard.ToneWarning
		if level == client.RiskCritical {
			tone = dashboard.ToneDanger
		}
		lastActive := "sem atividade registada"
		if c.LastActiveAt != nil {
			lastActive = "última atividade " + c.LastActiveAt.Format("2 Jan")
		}
		entries = append(entries, aggregate.Ranked{
			Score: *c.RiskScore,
			Card: dashboard.HighlightCard{
				ID:          c.ID,
				Title:       displayName(c),
				Description: fmt.Sprintf("risco %.0f%% • %s", *c.RiskScore*100, lastActive),
				Tone:        tone,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

func rosterNewest(clients []client.Client) []dashboard.HighlightCard {
	entries := make([]aggregate.Ranked, 0, len(clients))
	for _, c := range clients {
		if c.CreatedAt == nil {
			continue
		}
		desc := "desde " + c.CreatedAt.Format("2 Jan 2006")
		if c.TrainerName != "" {
			desc += " • PT " + c.TrainerName
		}
		entries = append(entries, aggregate.Ranked{
			Score: float64(c.CreatedAt.UnixMilli()),
			Card: dashboard.HighlightCard{
				ID:          c.ID,
				Title:       displayName(c),
				Description: desc,
				Tone:        dashboard.ToneInfo,
			},
		})
	}
	return aggregate.TopCards(entries, dashboard.MaxHighlights)
}

func displayName(c client.Client) string {
	if c.Name != "" {
		return c.Name
	}
	return "Cliente " + c.ID
}

func countOrDash(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.0f", *v)
}

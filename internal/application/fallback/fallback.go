// Package fallback produces deterministic synthetic snapshots for when
// the live backing store is unavailable. The synthetic rows are fed
// through the same assemblers as live data, so every snapshot invariant
// holds by construction. Nothing here touches the wall clock: the caller
// supplies now, and generation is a pure function of it.
package fallback

import (
	"fmt"
	"math/rand"
	"time"

	"traindesk/internal/application/normalize"
	"traindesk/internal/application/projections"
	"traindesk/internal/domain/dashboard"
)

// clientCount is the size of the synthetic roster.
const clientCount = 18

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diogo", "Eva", "Filipe", "Gabriela", "Hugo",
	"Inês", "João", "Leonor", "Miguel", "Nádia", "Octávio", "Patrícia",
	"Rui", "Sofia", "Tiago",
}

var lastNames = []string{
	"Almeida", "Barbosa", "Costa", "Duarte", "Esteves", "Ferreira",
	"Gomes", "Henriques", "Igreja", "Jesus", "Lopes", "Martins",
	"Neves", "Oliveira", "Pereira", "Ramos", "Silva", "Teixeira",
}

var trainers = []string{"Rui Tavares", "Marta Cunha", "Pedro Faria"}

var statuses = []string{"active", "active", "active", "pending", "suspended", "inactive"}

// dataset is one coherent set of synthetic raw rows.
type dataset struct {
	clients       []normalize.RawRecord
	sessions      []normalize.RawRecord
	invoices      []normalize.RawRecord
	notifications []normalize.RawRecord
	walletEntries []normalize.RawRecord
}

// generate builds the synthetic rows for a given now. The seed is
// derived from the calendar day of now, so repeated calls within a day
// are identical and the structural round-trip property is testable.
func generate(now time.Time) dataset {
	day := now.UTC().Truncate(24 * time.Hour)
	rng := rand.New(rand.NewSource(day.Unix()))

	var d dataset
	for i := 0; i < clientCount; i++ {
		id := fmt.Sprintf("fb-client-%02d", i+1)
		name := firstNames[i%len(firstNames)] + " " + lastNames[(i*7)%len(lastNames)]
		trainer := trainers[i%len(trainers)]
		created := now.AddDate(0, 0, -rng.Intn(180)-1)
		lastActive := now.AddDate(0, 0, -rng.Intn(21))
		risk := rng.Float64()
		engagement := rng.Float64()
		balance := float64(rng.Intn(240) - 60)
		spend30 := float64(rng.Intn(400))
		sessions30 := float64(rng.Intn(12))

		row := normalize.RawRecord{
			"id":               id,
			"name":             name,
			"email":            fmt.Sprintf("%s@example.pt", id),
			"status":           statuses[i%len(statuses)],
			"assigned_trainer": trainer,
			"trainer_id":       fmt.Sprintf("fb-trainer-%d", i%len(trainers)+1),
			"churn_risk":       risk,
			"engagement_score": engagement,
			"wallet_balance":   balance,
			"spend_30d":        spend30,
			"sessions_30d":     sessions30,
			"created_at":       created.Format(time.RFC3339),
		}
		// Alternate the last-active column name so the field-fallback
		// chains stay exercised even on synthetic data.
		if i%2 == 0 {
			row["last_seen_at"] = lastActive.Format(time.RFC3339)
		} else {
			row["last_sign_in_at"] = lastActive.Format(time.RFC3339)
		}
		d.clients = append(d.clients, row)

		sessionCount := rng.Intn(4)
		for j := 0; j < sessionCount; j++ {
			at := now.AddDate(0, 0, -rng.Intn(84)).Add(-time.Duration(rng.Intn(10)) * time.Hour)
			status := "completed"
			if rng.Intn(6) == 0 {
				status = "cancelled"
			}
			d.sessions = append(d.sessions, normalize.RawRecord{
				"id":           fmt.Sprintf("fb-session-%02d-%d", i+1, j+1),
				"client_id":    id,
				"client_name":  name,
				"trainer_name": trainer,
				"status":       status,
				"price":        25 + float64(rng.Intn(20)),
				"starts_at":    at.Format(time.RFC3339),
				"completed_at": at.Add(time.Hour).Format(time.RFC3339),
			})
		}
		if rng.Intn(2) == 0 {
			at := now.AddDate(0, 0, rng.Intn(7)+1)
			d.sessions = append(d.sessions, normalize.RawRecord{
				"id":          fmt.Sprintf("fb-session-%02d-next", i+1),
				"client_id":   id,
				"client_name": name,
				"status":      "scheduled",
				"starts_at":   at.Format(time.RFC3339),
			})
		}

		if spend30 > 0 {
			issued := now.AddDate(0, 0, -rng.Intn(60)-1)
			status := "paid"
			row := normalize.RawRecord{
				"id":          fmt.Sprintf("fb-invoice-%02d", i+1),
				"client_id":   id,
				"client_name": name,
				"amount":      spend30,
				"issued_at":   issued.Format(time.RFC3339),
			}
			if rng.Intn(5) == 0 {
				status = "overdue"
			} else {
				row["paid_at"] = issued.AddDate(0, 0, 2).Format(time.RFC3339)
			}
			row["status"] = status
			d.invoices = append(d.invoices, row)
		}

		d.walletEntries = append(d.walletEntries, normalize.RawRecord{
			"id":            fmt.Sprintf("fb-wallet-%02d", i+1),
			"client_id":     id,
			"client_name":   name,
			"kind":          "topup",
			"amount":        balance,
			"balance_after": balance,
			"created_at":    now.AddDate(0, 0, -rng.Intn(14)).Format(time.RFC3339),
		})
	}

	d.notifications = []normalize.RawRecord{
		{
			"id":         "fb-notice-1",
			"title":      "Dados em modo de contingência",
			"message":    "A fonte de dados está indisponível; os valores apresentados são sintéticos.",
			"category":   "system",
			"created_at": now.Add(-1 * time.Hour).Format(time.RFC3339),
		},
		{
			"id":         "fb-notice-2",
			"title":      "Fecho de faturação",
			"message":    "O fecho mensal de faturação decorre na próxima segunda-feira.",
			"category":   "billing",
			"created_at": now.Add(-26 * time.Hour).Format(time.RFC3339),
		},
	}

	return d
}

// ClientRoster builds a synthetic client-roster snapshot.
// POST: structurally identical to a live snapshot, Source tagged fallback
func ClientRoster(now time.Time, rangeDays int) dashboard.Snapshot {
	d := generate(now)
	s := projections.QueryGetClientRoster(
		projections.GetClientRosterQuery{Now: now, RangeDays: rangeDays},
		projections.GetClientRosterData{Clients: d.clients, Sessions: d.sessions, Invoices: d.invoices},
	)
	s.Source = dashboard.SourceFallback
	return s
}

// SystemOverview builds a synthetic system-wide snapshot.
// POST: structurally identical to a live snapshot, Source tagged fallback
func SystemOverview(now time.Time, rangeWeeks int) dashboard.Snapshot {
	d := generate(now)
	s := projections.QueryGetSystemOverview(
		projections.GetSystemOverviewQuery{Now: now, RangeWeeks: rangeWeeks},
		projections.GetSystemOverviewData{
			Accounts:      accountRows(d),
			Sessions:      d.sessions,
			Invoices:      d.invoices,
			Notifications: d.notifications,
			WalletEntries: d.walletEntries,
		},
	)
	s.Source = dashboard.SourceFallback
	return s
}

// NavSummary builds a synthetic navigation snapshot for one role.
// POST: structurally identical to a live snapshot, Source tagged fallback
func NavSummary(role, subjectID string, now time.Time) dashboard.Snapshot {
	d := generate(now)
	s := projections.QueryGetNavSummary(
		projections.GetNavSummaryQuery{Role: role, SubjectID: subjectID, Now: now},
		projections.GetNavSummaryData{
			Accounts:      accountRows(d),
			Clients:       d.clients,
			Sessions:      d.sessions,
			Invoices:      d.invoices,
			Notifications: d.notifications,
			WalletEntries: d.walletEntries,
		},
	)
	s.Source = dashboard.SourceFallback
	return s
}

// accountRows derives synthetic account rows from the synthetic roster:
// every client has an account, plus the trainers and one admin.
func accountRows(d dataset) []normalize.RawRecord {
	rows := make([]normalize.RawRecord, 0, len(d.clients)+len(trainers)+1)
	rows = append(rows, normalize.RawRecord{
		"id": "fb-account-admin", "name": "Direção", "role": "admin", "status": "active",
	})
	for i, t := range trainers {
		rows = append(rows, normalize.RawRecord{
			"id":   fmt.Sprintf("fb-trainer-%d", i+1),
			"name": t, "role": "trainer", "status": "active",
		})
	}
	for _, c := range d.clients {
		rows = append(rows, normalize.RawRecord{
			"id":         fmt.Sprintf("acct-%v", c["id"]),
			"name":       c["name"],
			"role":       "client",
			"status":     c["status"],
			"created_at": c["created_at"],
		})
	}
	return rows
}

package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SeedDB is the narrow write surface the seeder needs.
// Both *sql.DB and *storage.TimedDB satisfy it.
type SeedDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const seedTimeLayout = "2006-01-02T15:04:05Z07:00"

type clientSeed struct {
	Name       string
	Email      string
	Status     string
	Risk       float64
	Engagement float64
	Wallet     float64
	Spend30    float64
	Sessions30 float64
	Scheduled  float64
	SignupDays int // days before now
	Trainer    int // index into trainer list
}

type trainerSeed struct {
	Name  string
	Email string
}

// ExecuteSeedSynthetic populates the database with a realistic personal
// training studio data set for development. It is idempotent: if clients
// already exist, nothing is written.
// PRE: schema has been initialized
// POST: clients, accounts, sessions, invoices, notifications and wallet
// entries exist, or the seed was skipped
func ExecuteSeedSynthetic(ctx context.Context, db SeedDB) error {
	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client`).Scan(&existing); err != nil {
		return fmt.Errorf("seed_synthetic: count clients: %w", err)
	}
	if existing > 0 {
		slog.Info("seed_event", "event", "synthetic_skip", "reason", "already_seeded")
		return nil
	}

	now := time.Now().UTC()

	trainers := []trainerSeed{
		{"Rui Carvalho", "rui.carvalho@traindesk.pt"},
		{"Mariana Pinto", "mariana.pinto@traindesk.pt"},
	}
	trainerIDs := make([]string, len(trainers))
	for i, t := range trainers {
		trainerIDs[i] = uuid.New().String()
		if _, err := db.ExecContext(ctx,
			`INSERT INTO account (id, name, email, role, status, is_active, created_at, last_seen_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			trainerIDs[i], t.Name, t.Email, "trainer", "active", 1,
			now.AddDate(0, -8, 0).Format(seedTimeLayout),
			now.AddDate(0, 0, -1).Format(seedTimeLayout)); err != nil {
			return fmt.Errorf("seed trainer account %s: %w", t.Name, err)
		}
	}

	adminID := uuid.New().String()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO account (id, name, email, role, status, is_active, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		adminID, "Helena Duarte", "helena@traindesk.pt", "ADMIN", "active", 1,
		now.AddDate(-1, 0, 0).Format(seedTimeLayout),
		now.Format(seedTimeLayout)); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	roster := []clientSeed{
		{"Marta Lopes", "marta.lopes@email.pt", "active", 0.12, 0.88, 140, 320, 9, 2, 400, 0},
		{"Pedro Santos", "pedro.santos@email.pt", "active", 0.25, 0.74, 60, 210, 7, 1, 300, 0},
		{"Ana Ferreira", "ana.ferreira@email.pt", "active", 0.48, 0.55, 30, 140, 4, 1, 250, 1},
		{"Joao Ribeiro", "joao.ribeiro@email.pt", "active", 0.82, 0.21, -40, 35, 1, 0, 200, 1},
		{"Sofia Almeida", "sofia.almeida@email.pt", "pending", 0.35, 0.6, 0, 0, 0, 1, 5, 0},
		{"Carlos Mendes", "carlos.mendes@email.pt", "active", 0.66, 0.43, 12, 105, 3, 1, 150, 1},
		{"Ines Rocha", "ines.rocha@email.pt", "suspended", 0.91, 0.1, -60, 0, 0, 0, 320, 0},
		{"Tiago Nunes", "tiago.nunes@email.pt", "active", 0.18, 0.8, 200, 280, 8, 2, 90, 0},
		{"Beatriz Costa", "beatriz.costa@email.pt", "active", 0.52, 0.5, 45, 175, 5, 1, 60, 1},
		{"Miguel Teixeira", "miguel.teixeira@email.pt", "inactive", 0.77, 0.15, 0, 0, 0, 0, 500, 1},
		{"Rita Fonseca", "rita.fonseca@email.pt", "active", 0.3, 0.68, 85, 245, 6, 2, 30, 0},
		{"Bruno Martins", "bruno.martins@email.pt", "active", 0.44, 0.58, 20, 120, 3, 1, 14, 1},
	}

	clientIDs := make([]string, len(roster))
	for i, c := range roster {
		clientIDs[i] = uuid.New().String()
		trainerID := trainerIDs[c.Trainer]
		trainerName := trainers[c.Trainer].Name
		signup := now.AddDate(0, 0, -c.SignupDays)
		if _, err := db.ExecContext(ctx,
			`INSERT INTO client (id, name, email, status, trainer_id, trainer_name,
			   churn_risk, engagement_score, wallet_balance, spend_30d, sessions_30d,
			   sessions_scheduled, signup_date, last_sign_in_at, next_session_at, tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			clientIDs[i], c.Name, c.Email, c.Status, trainerID, trainerName,
			c.Risk, c.Engagement, c.Wallet, c.Spend30, c.Sessions30,
			c.Scheduled, signup.Format("2006-01-02"),
			now.AddDate(0, 0, -(i%14)).Format(seedTimeLayout),
			now.AddDate(0, 0, 2+i%5).Format(seedTimeLayout),
			"pt,studio"); err != nil {
			return fmt.Errorf("seed client %s: %w", c.Name, err)
		}
		// Client portal account
		if _, err := db.ExecContext(ctx,
			`INSERT INTO account (id, name, email, role, status, is_active, created_at, last_seen_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), c.Name, c.Email, "client", c.Status, 1,
			signup.Format(seedTimeLayout),
			now.AddDate(0, 0, -(i%10)).Format(seedTimeLayout)); err != nil {
			return fmt.Errorf("seed client account %s: %w", c.Name, err)
		}
	}

	if err := seedSessions(ctx, db, now, roster, clientIDs, trainerIDs, trainers); err != nil {
		return err
	}
	if err := seedInvoices(ctx, db, now, roster, clientIDs); err != nil {
		return err
	}
	if err := seedWalletEntries(ctx, db, now, roster, clientIDs); err != nil {
		return err
	}
	if err := seedNotifications(ctx, db, now); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "synthetic_seeded",
		"clients", len(roster), "trainers", len(trainers))
	return nil
}

// seedSessions writes past and upcoming training sessions spanning the
// full weekly dashboard range.
func seedSessions(ctx context.Context, db SeedDB, now time.Time, roster []clientSeed, clientIDs, trainerIDs []string, trainers []trainerSeed) error {
	statuses := []string{"completed", "completed", "completed", "cancelled", "no_show"}
	for week := 1; week <= 13; week++ {
		for i, c := range roster {
			if c.Status != "active" || (i+week)%3 == 0 {
				continue
			}
			status := statuses[(i+week)%len(statuses)]
			starts := now.AddDate(0, 0, -7*week).Add(time.Duration(9+i%9) * time.Hour)
			var completed any
			if status == "completed" {
				completed = starts.Add(time.Hour).Format(seedTimeLayout)
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO training_session (id, client_id, client_name, trainer_id, trainer_name,
				   status, price, starts_at, completed_at, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), clientIDs[i], c.Name,
				trainerIDs[c.Trainer], trainers[c.Trainer].Name,
				status, 35.0, starts.Format(seedTimeLayout), completed,
				starts.AddDate(0, 0, -3).Format(seedTimeLayout)); err != nil {
				return fmt.Errorf("seed session week %d: %w", week, err)
			}
		}
	}

	// Upcoming scheduled sessions for the nav summary.
	for i, c := range roster {
		if c.Scheduled == 0 {
			continue
		}
		starts := now.AddDate(0, 0, 1+i%6).Add(time.Duration(10+i%8) * time.Hour)
		if _, err := db.ExecContext(ctx,
			`INSERT INTO training_session (id, client_id, client_name, trainer_id, trainer_name,
			   status, price, starts_at, completed_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
			uuid.New().String(), clientIDs[i], c.Name,
			trainerIDs[c.Trainer], trainers[c.Trainer].Name,
			"scheduled", 35.0, starts.Format(seedTimeLayout),
			now.Format(seedTimeLayout)); err != nil {
			return fmt.Errorf("seed upcoming session: %w", err)
		}
	}
	return nil
}

// seedInvoices writes a monthly invoice per active client plus a few
// overdue ones for the debtor highlights.
func seedInvoices(ctx context.Context, db SeedDB, now time.Time, roster []clientSeed, clientIDs []string) error {
	for month := 1; month <= 3; month++ {
		for i, c := range roster {
			if c.Status == "pending" {
				continue
			}
			issued := now.AddDate(0, -month, 0)
			status := "paid"
			var paidAt any = issued.AddDate(0, 0, 3).Format(seedTimeLayout)
			if c.Risk > 0.6 && month == 1 {
				status = "overdue"
				paidAt = nil
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO invoice (id, client_id, client_name, status, amount,
				   invoice_date, due_date, paid_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), clientIDs[i], c.Name, status,
				60.0+float64(i%4)*25.0,
				issued.Format(seedTimeLayout),
				issued.AddDate(0, 0, 14).Format(seedTimeLayout),
				paidAt); err != nil {
				return fmt.Errorf("seed invoice month %d: %w", month, err)
			}
		}
	}
	return nil
}

// seedWalletEntries writes a small ledger per client ending at the
// client's wallet balance.
func seedWalletEntries(ctx context.Context, db SeedDB, now time.Time, roster []clientSeed, clientIDs []string) error {
	for i, c := range roster {
		topUp := c.Wallet + 35
		entries := []struct {
			Type    string
			Amount  float64
			Balance float64
			DaysAgo int
		}{
			{"top_up", topUp, topUp, 20},
			{"session_charge", -35, c.Wallet, 6},
		}
		for _, e := range entries {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO wallet_entry (id, client_id, client_name, entry_type,
				   amount, balance_after, posted_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), clientIDs[i], c.Name, e.Type,
				e.Amount, e.Balance,
				now.AddDate(0, 0, -e.DaysAgo).Format(seedTimeLayout)); err != nil {
				return fmt.Errorf("seed wallet entry %s: %w", c.Name, err)
			}
		}
	}
	return nil
}

// seedNotifications writes recent operational notifications across the
// tone categories.
func seedNotifications(ctx context.Context, db SeedDB, now time.Time) error {
	notices := []struct {
		Title    string
		Body     string
		Category string
		Audience string
		DaysAgo  int
	}{
		{"Pagamento recebido", "Marta Lopes pagou a fatura de Fevereiro.", "payment", "admin", 1},
		{"Fatura em atraso", "Joao Ribeiro tem uma fatura vencida ha 9 dias.", "billing", "admin", 2},
		{"Risco de abandono", "Ines Rocha sem atividade ha mais de 30 dias.", "alert", "trainer", 3},
		{"Backup concluido", "Copia de seguranca diaria terminou sem erros.", "system", "admin", 1},
		{"Nova mensagem", "A equipa publicou o plano semanal de treinos.", "info", "client", 4},
	}
	for _, n := range notices {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO notification (id, title, message, category, target_role, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), n.Title, n.Body, n.Category, n.Audience,
			now.AddDate(0, 0, -n.DaysAgo).Format(seedTimeLayout)); err != nil {
			return fmt.Errorf("seed notification %s: %w", n.Title, err)
		}
	}
	return nil
}

package normalize

import (
	"traindesk/internal/domain/account"
	"traindesk/internal/domain/client"
	"traindesk/internal/domain/invoice"
	"traindesk/internal/domain/notification"
	"traindesk/internal/domain/session"
	"traindesk/internal/domain/wallet"
)

// Candidate field names per canonical attribute, in priority order. The
// chains absorb the naming drift across the source tables: the same
// concept shows up under two or three names depending on which table or
// export produced the row.
var (
	idKeys           = []string{"id", "uuid", "external_id"}
	nameKeys         = []string{"name", "full_name", "display_name"}
	emailKeys        = []string{"email", "email_address"}
	statusKeys       = []string{"status", "state", "account_status"}
	activeKeys       = []string{"active", "is_active", "enabled"}
	roleKeys         = []string{"role", "account_role", "user_role"}
	createdKeys      = []string{"created_at", "signup_date", "inserted_at"}
	lastActiveKeys   = []string{"last_seen_at", "last_sign_in_at", "updated_at"}
	nextSessionKeys  = []string{"next_session_at", "next_booking_at", "next_event_at"}
	trainerIDKeys    = []string{"trainer_id", "coach_id", "assigned_trainer_id"}
	trainerNameKeys  = []string{"trainer_name", "assigned_trainer", "coach"}
	riskKeys         = []string{"churn_risk", "risk_score"}
	engagementKeys   = []string{"engagement_score", "engagement"}
	balanceKeys      = []string{"wallet_balance", "balance", "credit"}
	spend30Keys      = []string{"spend_30d", "amount_spent_30d", "monthly_spend"}
	sessions30Keys   = []string{"sessions_30d", "sessions_last_30_days", "completed_sessions_30d"}
	scheduledKeys    = []string{"sessions_scheduled", "upcoming_sessions", "booked_sessions"}
	tagsKeys         = []string{"tags", "labels"}
	clientIDKeys     = []string{"client_id", "member_id", "customer_id"}
	clientNameKeys   = []string{"client_name", "member_name", "customer_name"}
	startsAtKeys     = []string{"starts_at", "scheduled_at", "start_time"}
	completedAtKeys  = []string{"completed_at", "finished_at", "checked_in_at"}
	priceKeys        = []string{"price", "session_price", "rate"}
	amountKeys       = []string{"amount", "total", "value"}
	issuedAtKeys     = []string{"issued_at", "invoice_date", "created_at"}
	dueAtKeys        = []string{"due_at", "due_date"}
	paidAtKeys       = []string{"paid_at", "settled_at"}
	titleKeys        = []string{"title", "subject", "heading"}
	bodyKeys         = []string{"body", "message", "content"}
	categoryKeys     = []string{"category", "kind", "type"}
	audienceKeys     = []string{"audience", "target_role"}
	entryKindKeys    = []string{"kind", "entry_type", "type"}
	runningBalKeys   = []string{"balance_after", "running_balance", "balance"}
	entryCreatedKeys = []string{"created_at", "posted_at", "entry_date"}
)

// Account normalizes one raw account row.
// POST: ok is false when the row has no usable identifier
func Account(r RawRecord) (account.Account, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return account.Account{}, false
	}
	return account.Account{
		ID:           id,
		Name:         String(r, nameKeys...),
		Email:        String(r, emailKeys...),
		RawStatus:    String(r, statusKeys...),
		Role:         String(r, roleKeys...),
		Active:       Bool(r, activeKeys...),
		CreatedAt:    Time(r, createdKeys...),
		LastActiveAt: Time(r, lastActiveKeys...),
	}, true
}

// Accounts normalizes a batch, skipping rows without identifiers.
func Accounts(rows []RawRecord) []account.Account {
	out := make([]account.Account, 0, len(rows))
	for _, r := range rows {
		if a, ok := Account(r); ok {
			out = append(out, a)
		}
	}
	return out
}

// Client normalizes one raw client-roster row.
// POST: ok is false when the row has no usable identifier
func Client(r RawRecord) (client.Client, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return client.Client{}, false
	}
	return client.Client{
		ID:                 id,
		Name:               String(r, nameKeys...),
		Email:              String(r, emailKeys...),
		RawStatus:          String(r, statusKeys...),
		Active:             Bool(r, activeKeys...),
		TrainerID:          String(r, trainerIDKeys...),
		TrainerName:        String(r, trainerNameKeys...),
		RiskScore:          Number(r, riskKeys...),
		EngagementScore:    Number(r, engagementKeys...),
		WalletBalance:      Number(r, balanceKeys...),
		SpendLast30Days:    Number(r, spend30Keys...),
		SessionsLast30Days: Number(r, sessions30Keys...),
		SessionsScheduled:  Number(r, scheduledKeys...),
		CreatedAt:          Time(r, createdKeys...),
		LastActiveAt:       Time(r, lastActiveKeys...),
		NextSessionAt:      Time(r, nextSessionKeys...),
		Tags:               List(r, tagsKeys...),
	}, true
}

// Clients normalizes a batch, skipping rows without identifiers.
func Clients(rows []RawRecord) []client.Client {
	out := make([]client.Client, 0, len(rows))
	for _, r := range rows {
		if c, ok := Client(r); ok {
			out = append(out, c)
		}
	}
	return out
}

// Session normalizes one raw training-session row.
func Session(r RawRecord) (session.Session, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return session.Session{}, false
	}
	return session.Session{
		ID:          id,
		ClientID:    String(r, clientIDKeys...),
		ClientName:  String(r, clientNameKeys...),
		TrainerID:   String(r, trainerIDKeys...),
		TrainerName: String(r, trainerNameKeys...),
		RawStatus:   String(r, statusKeys...),
		Price:       Number(r, priceKeys...),
		StartsAt:    Time(r, startsAtKeys...),
		CompletedAt: Time(r, completedAtKeys...),
		CreatedAt:   Time(r, createdKeys...),
	}, true
}

// Sessions normalizes a batch, skipping rows without identifiers.
func Sessions(rows []RawRecord) []session.Session {
	out := make([]session.Session, 0, len(rows))
	for _, r := range rows {
		if s, ok := Session(r); ok {
			out = append(out, s)
		}
	}
	return out
}

// Invoice normalizes one raw invoice row.
func Invoice(r RawRecord) (invoice.Invoice, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return invoice.Invoice{}, false
	}
	return invoice.Invoice{
		ID:         id,
		ClientID:   String(r, clientIDKeys...),
		ClientName: String(r, clientNameKeys...),
		RawStatus:  String(r, statusKeys...),
		Amount:     Number(r, amountKeys...),
		IssuedAt:   Time(r, issuedAtKeys...),
		DueAt:      Time(r, dueAtKeys...),
		PaidAt:     Time(r, paidAtKeys...),
	}, true
}

// Invoices normalizes a batch, skipping rows without identifiers.
func Invoices(rows []RawRecord) []invoice.Invoice {
	out := make([]invoice.Invoice, 0, len(rows))
	for _, r := range rows {
		if i, ok := Invoice(r); ok {
			out = append(out, i)
		}
	}
	return out
}

// Notification normalizes one raw notification row.
func Notification(r RawRecord) (notification.Notification, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return notification.Notification{}, false
	}
	return notification.Notification{
		ID:        id,
		Title:     String(r, titleKeys...),
		Body:      String(r, bodyKeys...),
		Category:  String(r, categoryKeys...),
		Audience:  String(r, audienceKeys...),
		CreatedAt: Time(r, createdKeys...),
	}, true
}

// Notifications normalizes a batch, skipping rows without identifiers.
func Notifications(rows []RawRecord) []notification.Notification {
	out := make([]notification.Notification, 0, len(rows))
	for _, r := range rows {
		if n, ok := Notification(r); ok {
			out = append(out, n)
		}
	}
	return out
}

// WalletEntry normalizes one raw wallet-ledger row.
func WalletEntry(r RawRecord) (wallet.Entry, bool) {
	id := String(r, idKeys...)
	if id == "" {
		return wallet.Entry{}, false
	}
	return wallet.Entry{
		ID:         id,
		ClientID:   String(r, clientIDKeys...),
		ClientName: String(r, clientNameKeys...),
		Kind:       String(r, entryKindKeys...),
		Amount:     Number(r, amountKeys...),
		Balance:    Number(r, runningBalKeys...),
		CreatedAt:  Time(r, entryCreatedKeys...),
	}, true
}

// WalletEntries normalizes a batch, skipping rows without identifiers.
func WalletEntries(rows []RawRecord) []wallet.Entry {
	out := make([]wallet.Entry, 0, len(rows))
	for _, r := range rows {
		if e, ok := WalletEntry(r); ok {
			out = append(out, e)
		}
	}
	return out
}

package orchestrators

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"traindesk/internal/adapters/storage"
)

func openSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSeedSyntheticPopulatesAllTables(t *testing.T) {
	db := openSeededDB(t)
	ctx := context.Background()

	if err := ExecuteSeedSynthetic(ctx, db); err != nil {
		t.Fatalf("ExecuteSeedSynthetic failed: %v", err)
	}

	for _, table := range []string{"account", "client", "training_session", "invoice", "notification", "wallet_entry"} {
		if countRows(t, db, table) == 0 {
			t.Errorf("table %s is empty after seeding", table)
		}
	}

	// Accounts: one admin, two trainers, one portal account per client.
	clients := countRows(t, db, "client")
	accounts := countRows(t, db, "account")
	if accounts != clients+3 {
		t.Errorf("accounts = %d, want %d (clients + admin + 2 trainers)", accounts, clients+3)
	}

	var adminName string
	if err := db.QueryRow("SELECT name FROM account WHERE role = 'ADMIN'").Scan(&adminName); err != nil {
		t.Fatalf("query admin account: %v", err)
	}
	if adminName != "Helena Duarte" {
		t.Errorf("admin name = %q, want %q", adminName, "Helena Duarte")
	}
}

func TestSeedSyntheticIsIdempotent(t *testing.T) {
	db := openSeededDB(t)
	ctx := context.Background()

	if err := ExecuteSeedSynthetic(ctx, db); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	before := countRows(t, db, "client")

	if err := ExecuteSeedSynthetic(ctx, db); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if after := countRows(t, db, "client"); after != before {
		t.Errorf("client count changed on reseed: %d -> %d", before, after)
	}
}

func TestSeedSyntheticCoversStatuses(t *testing.T) {
	db := openSeededDB(t)
	ctx := context.Background()

	if err := ExecuteSeedSynthetic(ctx, db); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var distinct int
	if err := db.QueryRow("SELECT COUNT(DISTINCT status) FROM client").Scan(&distinct); err != nil {
		t.Fatalf("distinct statuses: %v", err)
	}
	if distinct < 3 {
		t.Errorf("distinct client statuses = %d, want at least 3", distinct)
	}

	var overdue int
	if err := db.QueryRow("SELECT COUNT(*) FROM invoice WHERE status = 'overdue'").Scan(&overdue); err != nil {
		t.Fatalf("overdue count: %v", err)
	}
	if overdue == 0 {
		t.Error("expected at least one overdue invoice for debtor highlights")
	}
}

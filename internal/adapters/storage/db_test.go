package storage

import (
	"context"
	"database/sql"
	"reflect"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestInitDBCreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	want := []string{"account", "client", "invoice", "notification", "training_session", "wallet_entry"}
	got := getTableNames(t, db)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tables = %v, want %v", got, want)
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

func TestQueryRawRowsOmitsNulls(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`INSERT INTO client (id, name, churn_risk, last_sign_in_at) VALUES (?, ?, ?, ?)`,
		"c1", "Marta Lopes", 0.82, "2026-02-10T09:00:00Z")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	records, err := QueryRawRows(ctx, db, `SELECT id, name, status, churn_risk, last_sign_in_at FROM client`)
	if err != nil {
		t.Fatalf("QueryRawRows failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if _, present := r["status"]; present {
		t.Errorf("NULL status column should be omitted, got %v", r["status"])
	}
	if r["id"] != "c1" || r["name"] != "Marta Lopes" {
		t.Errorf("unexpected id/name: %v / %v", r["id"], r["name"])
	}
	if risk, ok := r["churn_risk"].(float64); !ok || risk != 0.82 {
		t.Errorf("churn_risk = %v, want 0.82", r["churn_risk"])
	}
	if r["last_sign_in_at"] != "2026-02-10T09:00:00Z" {
		t.Errorf("last_sign_in_at = %v", r["last_sign_in_at"])
	}
}

func TestTimedDBSatisfiesSQLDB(t *testing.T) {
	db := openTestDB(t)
	timed := NewTimedDB(db)
	var _ SQLDB = timed

	if err := InitDB(timed.RawDB()); err != nil {
		t.Fatalf("InitDB via RawDB failed: %v", err)
	}

	ctx := context.Background()
	if _, err := timed.ExecContext(ctx,
		`INSERT INTO notification (id, title, category, created_at) VALUES (?, ?, ?, ?)`,
		"n1", "Pagamento recebido", "payment", "2026-02-10T10:00:00Z"); err != nil {
		t.Fatalf("ExecContext failed: %v", err)
	}

	var n int
	if err := timed.QueryRowContext(ctx, `SELECT COUNT(*) FROM notification`).Scan(&n); err != nil {
		t.Fatalf("QueryRowContext failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// The column names deliberately keep the legacy export naming this
// system inherited: the same concept appears under different names
// across tables (client.signup_date vs account.created_at), and the
// normalizer's field-fallback chains absorb that drift.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		role TEXT NOT NULL,
		status TEXT,
		is_active INTEGER,
		created_at TEXT,
		last_seen_at TEXT
	);

	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		status TEXT,
		trainer_id TEXT,
		trainer_name TEXT,
		churn_risk REAL,
		engagement_score REAL,
		wallet_balance REAL,
		spend_30d REAL,
		sessions_30d REAL,
		sessions_scheduled REAL,
		signup_date TEXT,
		last_sign_in_at TEXT,
		next_session_at TEXT,
		tags TEXT
	);

	CREATE TABLE IF NOT EXISTS training_session (
		id TEXT PRIMARY KEY,
		client_id TEXT,
		client_name TEXT,
		trainer_id TEXT,
		trainer_name TEXT,
		status TEXT,
		price REAL,
		starts_at TEXT,
		completed_at TEXT,
		created_at TEXT,
		FOREIGN KEY (client_id) REFERENCES client(id)
	);

	CREATE TABLE IF NOT EXISTS invoice (
		id TEXT PRIMARY KEY,
		client_id TEXT,
		client_name TEXT,
		status TEXT,
		amount REAL,
		invoice_date TEXT,
		due_date TEXT,
		paid_at TEXT,
		FOREIGN KEY (client_id) REFERENCES client(id)
	);

	CREATE TABLE IF NOT EXISTS notification (
		id TEXT PRIMARY KEY,
		title TEXT,
		message TEXT,
		category TEXT,
		target_role TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS wallet_entry (
		id TEXT PRIMARY KEY,
		client_id TEXT,
		client_name TEXT,
		entry_type TEXT,
		amount REAL,
		balance_after REAL,
		posted_at TEXT,
		FOREIGN KEY (client_id) REFERENCES client(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

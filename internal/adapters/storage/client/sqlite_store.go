package client

import (
	"context"

	"traindesk/internal/adapters/storage"
	"traindesk/internal/application/normalize"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const clientColumns = `id, name, email, status, trainer_id, trainer_name,
		churn_risk, engagement_score, wallet_balance, spend_30d, sessions_30d,
		sessions_scheduled, signup_date, last_sign_in_at, next_session_at, tags`

// ListRaw returns all client rows as raw records for normalization.
// PRE: ctx is valid
// POST: one record per row, NULL columns omitted
func (s *SQLiteStore) ListRaw(ctx context.Context) ([]normalize.RawRecord, error) {
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+clientColumns+` FROM client ORDER BY signup_date DESC`)
}

// Count returns the number of client rows.
// PRE: ctx is valid
// POST: returns the row count or an error
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client`).Scan(&n)
	return n, err
}

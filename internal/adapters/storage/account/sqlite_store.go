package account

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

const accountColumns = `id, name, email, role, status, is_active, created_at, last_seen_at`

// ListRaw returns all account rows as raw records for normalization.
// PRE: ctx is valid
// POST: one record per row, NULL columns omitted
func (s *SQLiteStore) ListRaw(ctx context.Context) ([]normalize.RawRecord, error) {
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+accountColumns+` FROM account ORDER BY created_at DESC`)
}

// Count returns the number of account rows.
// PRE: ctx is valid
// POST: returns the row count or an error
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM account`).Scan(&n)
	return n, err
}

package session

import (
	"context"
	"time"

	"traindesk/internal/adapters/storage"
	"traindesk/internal/application/normalize"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = `id, client_id, client_name, trainer_id, trainer_name,
		status, price, starts_at, completed_at, created_at`

// ListRawSince returns session rows that started or completed at or after
// since, including sessions scheduled in the future.
// PRE: ctx is valid
// POST: one record per row, NULL columns omitted
func (s *SQLiteStore) ListRawSince(ctx context.Context, since time.Time) ([]normalize.RawRecord, error) {
	cutoff := since.UTC().Format(timeLayout)
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+sessionColumns+` FROM training_session
		 WHERE starts_at >= ? OR completed_at >= ?
		 ORDER BY starts_at ASC`, cutoff, cutoff)
}

package notification

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

const notificationColumns = `id, title, message, category, target_role, created_at`

// ListRawRecent returns the most recent notification rows, newest first.
// PRE: ctx is valid, limit > 0
// POST: at most limit records, NULL columns omitted
func (s *SQLiteStore) ListRawRecent(ctx context.Context, limit int) ([]normalize.RawRecord, error) {
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+notificationColumns+` FROM notification
		 ORDER BY created_at DESC LIMIT ?`, limit)
}

package invoice

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

const invoiceColumns = `id, client_id, client_name, status, amount,
		invoice_date, due_date, paid_at`

// ListRawSince returns invoice rows issued or paid at or after since.
// Open invoices (pending or overdue) are always included regardless of
// age so outstanding balances never drop out of the dashboard.
// PRE: ctx is valid
// POST: one record per row, NULL columns omitted
func (s *SQLiteStore) ListRawSince(ctx context.Context, since time.Time) ([]normalize.RawRecord, error) {
	cutoff := since.UTC().Format(timeLayout)
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+invoiceColumns+` FROM invoice
		 WHERE invoice_date >= ? OR paid_at >= ? OR status IN ('pending', 'overdue')
		 ORDER BY invoice_date ASC`, cutoff, cutoff)
}

package wallet

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

const walletColumns = `id, client_id, client_name, entry_type, amount, balance_after, posted_at`

// ListRaw returns all wallet ledger rows in posting order, oldest first,
// so balance reduction sees entries in the order they were recorded.
// PRE: ctx is valid
// POST: one record per row, NULL columns omitted
func (s *SQLiteStore) ListRaw(ctx context.Context) ([]normalize.RawRecord, error) {
	return storage.QueryRawRows(ctx, s.db,
		`SELECT `+walletColumns+` FROM wallet_entry ORDER BY posted_at ASC`)
}

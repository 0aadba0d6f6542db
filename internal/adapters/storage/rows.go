package storage

import (
	"context"
	"fmt"

	"traindesk/internal/application/normalize"
)

// QueryRawRows runs a query and returns each row as a column-name keyed
// record. NULL columns are omitted from the record so downstream
// field-fallback resolution treats them as absent; []byte values are
// converted to string.
// PRE: ctx is valid, query is non-empty
// POST: one record per row, keyed by the column names of the result set
func QueryRawRows(ctx context.Context, db SQLDB, query string, args ...any) ([]normalize.RawRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query raw rows: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query raw rows: columns: %w", err)
	}

	var records []normalize.RawRecord
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query raw rows: scan: %w", err)
		}

		record := make(normalize.RawRecord, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case nil:
				// omit NULLs entirely
			case []byte:
				record[col] = string(v)
			default:
				record[col] = v
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

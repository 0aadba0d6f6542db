package wallet

import (
	"context"

	"traindesk/internal/application/normalize"
)

// Store reads wallet ledger rows for dashboard assembly.
type Store interface {
	ListRaw(ctx context.Context) ([]normalize.RawRecord, error)
}

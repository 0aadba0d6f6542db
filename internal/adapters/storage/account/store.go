package account

import (
	"context"

	"traindesk/internal/application/normalize"
)

// Store reads account rows for dashboard assembly.
type Store interface {
	ListRaw(ctx context.Context) ([]normalize.RawRecord, error)
	Count(ctx context.Context) (int, error)
}

package notification

import (
	"context"

	"traindesk/internal/application/normalize"
)

// Store reads notification rows for dashboard assembly.
type Store interface {
	ListRawRecent(ctx context.Context, limit int) ([]normalize.RawRecord, error)
}

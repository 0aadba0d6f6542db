package invoice

import (
	"context"
	"time"

	"traindesk/internal/application/normalize"
)

// Store reads invoice rows for dashboard assembly.
type Store interface {
	ListRawSince(ctx context.Context, since time.Time) ([]normalize.RawRecord, error)
}

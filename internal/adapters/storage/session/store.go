package session

import (
	"context"
	"time"

	"traindesk/internal/application/normalize"
)

// Store reads training session rows for dashboard assembly.
type Store interface {
	ListRawSince(ctx context.Context, since time.Time) ([]normalize.RawRecord, error)
}

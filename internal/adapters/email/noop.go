package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// NoopSender logs outgoing email instead of delivering it. It is the
// default sender when no provider API key is configured.
type NoopSender struct {
	seq atomic.Uint64
}

// NewNoopSender creates a NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) next() string {
	return fmt.Sprintf("noop-%d", s.seq.Add(1))
}

// Send logs the email and fabricates a message ID.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	id := s.next()
	slog.Info("email_sent", "provider", "noop", "message_id", id, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}

// SendBatch logs each email and fabricates message IDs in order.
func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for _, req := range reqs {
		id := s.next()
		slog.Info("email_sent", "provider", "noop", "message_id", id, "to", req.To, "subject", req.Subject)
		results = append(results, SendResult{MessageID: id, SentAt: time.Now()})
	}
	return results, nil
}

package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the maximum emails Resend accepts per batch call.
const resendBatchLimit = 100

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender with the given API key. The from
// address is used whenever a request leaves From empty.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// params translates a SendRequest into the Resend wire shape, filling
// in the default sender address.
func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	p := &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if p.From == "" {
		p.From = s.from
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	return p
}

// Send queues one email for delivery.
// PRE: req has at least one recipient and a subject
// POST: returns the provider message ID on success
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		slog.Error("email_send_failed", "provider", "resend", "to", req.To, "subject", req.Subject, "error", err)
		return SendResult{}, fmt.Errorf("resend send: %w", err)
	}

	slog.Info("email_sent", "provider", "resend", "message_id", sent.Id, "to", req.To)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch queues the given emails, splitting into provider-sized
// chunks as needed.
// PRE: every request has at least one recipient
// POST: results are returned in request order; on a mid-batch failure
// the results accepted so far accompany the error
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))

	for start := 0; start < len(reqs); start += resendBatchLimit {
		end := start + resendBatchLimit
		if end > len(reqs) {
			end = len(reqs)
		}

		chunk := make([]*resend.SendEmailRequest, 0, end-start)
		for _, req := range reqs[start:end] {
			chunk = append(chunk, s.params(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, chunk)
		if err != nil {
			slog.Error("email_batch_failed", "provider", "resend", "chunk_size", len(chunk), "error", err)
			return results, fmt.Errorf("resend batch send: %w", err)
		}
		for _, item := range resp.Data {
			results = append(results, SendResult{MessageID: item.Id, SentAt: time.Now()})
		}
	}

	slog.Info("email_batch_sent", "provider", "resend", "count", len(results))
	return results, nil
}

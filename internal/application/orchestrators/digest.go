package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"traindesk/internal/adapters/email"
	"traindesk/internal/application/normalize"
	"traindesk/internal/application/projections"
	"traindesk/internal/domain/dashboard"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type digestListStore interface {
	ListRaw(ctx context.Context) ([]normalize.RawRecord, error)
}

type digestRangeStore interface {
	ListRawSince(ctx context.Context, since time.Time) ([]normalize.RawRecord, error)
}

type digestRecentStore interface {
	ListRawRecent(ctx context.Context, limit int) ([]normalize.RawRecord, error)
}

// DigestDeps holds everything the weekly digest needs.
type DigestDeps struct {
	AccountStore      digestListStore
	SessionStore      digestRangeStore
	InvoiceStore      digestRangeStore
	NotificationStore digestRecentStore
	WalletStore       digestListStore

	Sender email.Sender
	To     []string
	From   string
}

// ComposeWeeklyDigest renders a system overview snapshot as a markdown
// email body. Returns the subject line and the markdown.
// PRE: snap was produced by the system overview assembler
// POST: markdown lists hero metrics, debtors and recent activity
func ComposeWeeklyDigest(snap dashboard.Snapshot, now time.Time) (string, string) {
	subject := fmt.Sprintf("Resumo semanal TrainDesk — %s", now.Format("2 Jan 2006"))

	var b strings.Builder
	b.WriteString("# Resumo semanal\n\n")
	b.WriteString("## Indicadores\n\n")
	for _, m := range snap.Hero {
		b.WriteString(fmt.Sprintf("- **%s**: %s", m.Label, m.Value))
		if m.Helper != "" {
			b.WriteString(" (" + m.Helper + ")")
		}
		b.WriteString("\n")
	}

	if debtors := snap.Highlights["topDebtors"]; len(debtors) > 0 {
		b.WriteString("\n## Saldos em divida\n\n")
		for _, card := range debtors {
			b.WriteString(fmt.Sprintf("- %s — %s\n", card.Title, card.Description))
		}
	}

	if len(snap.Activity) > 0 {
		b.WriteString("\n## Atividade recente\n\n")
		for _, item := range snap.Activity {
			b.WriteString(fmt.Sprintf("- %s: %s\n", item.Title, item.Detail))
		}
	}

	return subject, b.String()
}

// RenderDigestHTML converts digest markdown to HTML for email delivery.
func RenderDigestHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}

// ExecuteSendDigest assembles the current system overview and emails it.
// PRE: deps.Sender is configured and deps.To is non-empty
// POST: one individually addressed email queued per recipient, or an error
func ExecuteSendDigest(ctx context.Context, deps DigestDeps, now time.Time) error {
	if len(deps.To) == 0 {
		return fmt.Errorf("send digest: no recipients")
	}

	weeks := projections.DefaultOverviewWeeks
	since := now.AddDate(0, 0, -7*(weeks+1))

	accounts, err := deps.AccountStore.ListRaw(ctx)
	if err != nil {
		return fmt.Errorf("send digest: accounts: %w", err)
	}
	sessions, err := deps.SessionStore.ListRawSince(ctx, since)
	if err != nil {
		return fmt.Errorf("send digest: sessions: %w", err)
	}
	invoices, err := deps.InvoiceStore.ListRawSince(ctx, since)
	if err != nil {
		return fmt.Errorf("send digest: invoices: %w", err)
	}
	notifications, err := deps.NotificationStore.ListRawRecent(ctx, 50)
	if err != nil {
		return fmt.Errorf("send digest: notifications: %w", err)
	}
	entries, err := deps.WalletStore.ListRaw(ctx)
	if err != nil {
		return fmt.Errorf("send digest: wallet entries: %w", err)
	}

	snap := projections.QueryGetSystemOverview(projections.GetSystemOverviewQuery{
		Now:        now,
		RangeWeeks: weeks,
	}, projections.GetSystemOverviewData{
		Accounts:      accounts,
		Sessions:      sessions,
		Invoices:      invoices,
		Notifications: notifications,
		WalletEntries: entries,
	})

	subject, md := ComposeWeeklyDigest(snap, now)
	html, err := RenderDigestHTML(md)
	if err != nil {
		return err
	}

	// Each recipient gets an individually addressed copy, so the
	// recipient list never leaks across inboxes.
	if len(deps.To) == 1 {
		result, err := deps.Sender.Send(ctx, digestRequest(deps.To[0], deps.From, subject, html))
		if err != nil {
			return fmt.Errorf("send digest: %w", err)
		}
		slog.Info("digest_sent", "message_id", result.MessageID, "recipients", 1)
		return nil
	}

	reqs := make([]email.SendRequest, 0, len(deps.To))
	for _, to := range deps.To {
		reqs = append(reqs, digestRequest(to, deps.From, subject, html))
	}
	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	slog.Info("digest_sent", "messages", len(results), "recipients", len(deps.To))
	return nil
}

func digestRequest(to, from, subject, html string) email.SendRequest {
	return email.SendRequest{
		To:      []string{to},
		From:    from,
		Subject: subject,
		HTML:    html,
	}
}

// StartDigestWorker starts a background goroutine that sends the digest
// on the given interval.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartDigestWorker(deps DigestDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				if err := ExecuteSendDigest(ctx, deps, time.Now().UTC()); err != nil {
					slog.Error("digest_send_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("digest_worker_stopped")
				return
			}
		}
	}()
}

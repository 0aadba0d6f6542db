package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "traindesk/internal/adapters/email"
	web "traindesk/internal/adapters/http"
	"traindesk/internal/adapters/storage"
	accountStore "traindesk/internal/adapters/storage/account"
	clientStore "traindesk/internal/adapters/storage/client"
	invoiceStore "traindesk/internal/adapters/storage/invoice"
	notificationStore "traindesk/internal/adapters/storage/notification"
	sessionStore "traindesk/internal/adapters/storage/session"
	walletStore "traindesk/internal/adapters/storage/wallet"
	"traindesk/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("TRAINDESK_DB", "traindesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		AccountStore:      accountStore.NewSQLiteStore(timedDB),
		ClientStore:       clientStore.NewSQLiteStore(timedDB),
		SessionStore:      sessionStore.NewSQLiteStore(timedDB),
		InvoiceStore:      invoiceStore.NewSQLiteStore(timedDB),
		NotificationStore: notificationStore.NewSQLiteStore(timedDB),
		WalletStore:       walletStore.NewSQLiteStore(timedDB),
	}

	// Seed synthetic data for development only
	if os.Getenv("TRAINDESK_ENV") != "production" {
		if err := orchestrators.ExecuteSeedSynthetic(context.Background(), timedDB); err != nil {
			log.Fatalf("failed to seed synthetic data: %v", err)
		}
		log.Println("Synthetic seed data loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("TRAINDESK_RESEND_KEY")
	emailFrom := envOrDefault("TRAINDESK_RESEND_FROM", "TrainDesk <noreply@traindesk.pt>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("TRAINDESK_ENV") == "production" {
			log.Println("WARNING: TRAINDESK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set TRAINDESK_RESEND_KEY for real delivery)")
		}
	}

	// Weekly digest worker: enabled when recipients are configured
	if digestTo := os.Getenv("TRAINDESK_DIGEST_TO"); digestTo != "" {
		interval := 7 * 24 * time.Hour
		if v := os.Getenv("TRAINDESK_DIGEST_INTERVAL"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				interval = d
			}
		}
		deps := orchestrators.DigestDeps{
			AccountStore:      stores.AccountStore,
			SessionStore:      stores.SessionStore,
			InvoiceStore:      stores.InvoiceStore,
			NotificationStore: stores.NotificationStore,
			WalletStore:       stores.WalletStore,
			Sender:            sender,
			To:                splitRecipients(digestTo),
			From:              emailFrom,
		}
		digestStopCh := make(chan struct{})
		orchestrators.StartDigestWorker(deps, interval, digestStopCh)
		defer close(digestStopCh)
		log.Printf("Digest worker started (interval=%s)", interval)
	}

	mux := web.NewMux(stores)

	// Start server
	addr := envOrDefault("TRAINDESK_ADDR", ":8080")
	log.Printf("TrainDesk %s starting on %s (env=%s)", version, addr, envOrDefault("TRAINDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// splitRecipients parses a comma-separated recipient list.
func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package web

import (
	"net/http"
	"time"

	"traindesk/internal/adapters/http/middleware"
	accountStore "traindesk/internal/adapters/storage/account"
	clientStore "traindesk/internal/adapters/storage/client"
	invoiceStore "traindesk/internal/adapters/storage/invoice"
	notificationStore "traindesk/internal/adapters/storage/notification"
	sessionStore "traindesk/internal/adapters/storage/session"
	walletStore "traindesk/internal/adapters/storage/wallet"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	ClientStore       clientStore.Store
	SessionStore      sessionStore.Store
	InvoiceStore      invoiceStore.Store
	NotificationStore notificationStore.Store
	WalletStore       walletStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"traindesk/internal/application/fallback"
	"traindesk/internal/application/projections"
	"traindesk/internal/domain/dashboard"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// notificationFetchLimit bounds how many notification rows a single
// dashboard request pulls; the feed itself is capped far lower.
const notificationFetchLimit = 50

// maxRosterRangeDays caps the ?days= parameter. A year is the longest
// daily timeline the roster view renders; anything larger only inflates
// allocation per request.
const maxRosterRangeDays = 365

// apiResponse is the envelope every dashboard endpoint returns.
type apiResponse struct {
	OK bool `json:"ok"`
	dashboard.Snapshot
}

// registerRoutes wires all HTTP routes.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/api/dashboard/roster", handleRosterDashboard)
	mux.HandleFunc("/api/dashboard/system", handleSystemDashboard)
	mux.HandleFunc("/api/nav", handleNavSummary)
}

// writeSnapshot writes the standard JSON envelope for a snapshot.
// Outside production, the snapshot is validated first so assembler
// regressions surface in logs during development.
func writeSnapshot(w http.ResponseWriter, snap dashboard.Snapshot) {
	if os.Getenv("TRAINDESK_ENV") != "production" {
		if err := dashboard.ValidateSnapshot(snap); err != nil {
			slog.Error("snapshot_invalid", "error", err.Error())
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apiResponse{OK: true, Snapshot: snap})
}

// handleHealthz handles GET /healthz. It counts accounts and clients
// so the probe also exercises database reachability.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	accounts, err := stores.AccountStore.Count(r.Context())
	if err == nil {
		var clients int
		clients, err = stores.ClientStore.Count(r.Context())
		if err == nil {
			json.NewEncoder(w).Encode(map[string]any{"ok": true, "accounts": accounts, "clients": clients})
			return
		}
	}
	slog.Warn("healthz_db_unreachable", "error", err.Error())
	w.WriteHeader(http.StatusServiceUnavailable)
	json.NewEncoder(w).Encode(map[string]any{"ok": false})
}

// handleRosterDashboard handles GET /api/dashboard/roster.
// The optional ?days= parameter sets the daily timeline range.
// Storage failures degrade to a synthetic snapshot instead of an error
// so the dashboard always renders.
func handleRosterDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := timeNow().UTC()
	rangeDays := projections.DefaultRosterRangeDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rangeDays = n
			if rangeDays > maxRosterRangeDays {
				rangeDays = maxRosterRangeDays
			}
		}
	}

	data, err := fetchRosterData(r, now, rangeDays)
	if err != nil {
		slog.Warn("roster_dashboard_fallback", "error", err.Error())
		writeSnapshot(w, fallback.ClientRoster(now, rangeDays))
		return
	}

	snap := projections.QueryGetClientRoster(projections.GetClientRosterQuery{
		Now:       now,
		RangeDays: rangeDays,
	}, data)
	writeSnapshot(w, snap)
}

// fetchRosterData pulls the raw rows the roster dashboard aggregates.
func fetchRosterData(r *http.Request, now time.Time, rangeDays int) (projections.GetClientRosterData, error) {
	ctx := r.Context()
	since := now.AddDate(0, 0, -(rangeDays - 1))

	clients, err := stores.ClientStore.ListRaw(ctx)
	if err != nil {
		return projections.GetClientRosterData{}, err
	}
	sessions, err := stores.SessionStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetClientRosterData{}, err
	}
	invoices, err := stores.InvoiceStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetClientRosterData{}, err
	}

	return projections.GetClientRosterData{
		Clients:  clients,
		Sessions: sessions,
		Invoices: invoices,
	}, nil
}

// parseOverviewRange parses a "12w" style range parameter into weeks.
// Anything unrecognized falls back to the default.
func parseOverviewRange(raw string) int {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "w")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return projections.DefaultOverviewWeeks
	}
	for _, allowed := range projections.AllowedOverviewWeeks {
		if n == allowed {
			return n
		}
	}
	return projections.DefaultOverviewWeeks
}

// handleSystemDashboard handles GET /api/dashboard/system.
// The optional ?range= parameter selects 12w, 24w or 36w of weekly buckets.
func handleSystemDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := timeNow().UTC()
	weeks := projections.DefaultOverviewWeeks
	if v := r.URL.Query().Get("range"); v != "" {
		weeks = parseOverviewRange(v)
	}

	data, err := fetchOverviewData(r, now, weeks)
	if err != nil {
		slog.Warn("system_dashboard_fallback", "error", err.Error())
		writeSnapshot(w, fallback.SystemOverview(now, weeks))
		return
	}

	snap := projections.QueryGetSystemOverview(projections.GetSystemOverviewQuery{
		Now:        now,
		RangeWeeks: weeks,
	}, data)
	writeSnapshot(w, snap)
}

// fetchOverviewData pulls the raw rows the system dashboard aggregates.
func fetchOverviewData(r *http.Request, now time.Time, weeks int) (projections.GetSystemOverviewData, error) {
	ctx := r.Context()
	// One extra week so a record in the oldest complete bucket is never
	// cut off by the fetch window.
	since := now.AddDate(0, 0, -7*(weeks+1))

	accounts, err := stores.AccountStore.ListRaw(ctx)
	if err != nil {
		return projections.GetSystemOverviewData{}, err
	}
	sessions, err := stores.SessionStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetSystemOverviewData{}, err
	}
	invoices, err := stores.InvoiceStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetSystemOverviewData{}, err
	}
	notifications, err := stores.NotificationStore.ListRawRecent(ctx, notificationFetchLimit)
	if err != nil {
		return projections.GetSystemOverviewData{}, err
	}
	entries, err := stores.WalletStore.ListRaw(ctx)
	if err != nil {
		return projections.GetSystemOverviewData{}, err
	}

	return projections.GetSystemOverviewData{
		Accounts:      accounts,
		Sessions:      sessions,
		Invoices:      invoices,
		Notifications: notifications,
		WalletEntries: entries,
	}, nil
}

// handleNavSummary handles GET /api/nav.
// The ?role= parameter selects the KPI set; ?subject= scopes trainer and
// client views to one person.
func handleNavSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := timeNow().UTC()
	role := r.URL.Query().Get("role")
	subjectID := r.URL.Query().Get("subject")

	data, err := fetchNavData(r, now)
	if err != nil {
		slog.Warn("nav_summary_fallback", "error", err.Error())
		writeSnapshot(w, fallback.NavSummary(role, subjectID, now))
		return
	}

	snap := projections.QueryGetNavSummary(projections.GetNavSummaryQuery{
		Role:      role,
		SubjectID: subjectID,
		Now:       now,
	}, data)
	writeSnapshot(w, snap)
}

// fetchNavData pulls the raw rows the navigation summary aggregates.
func fetchNavData(r *http.Request, now time.Time) (projections.GetNavSummaryData, error) {
	ctx := r.Context()
	since := now.AddDate(0, 0, -(projections.NavTimelineDays - 1))

	accounts, err := stores.AccountStore.ListRaw(ctx)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}
	clients, err := stores.ClientStore.ListRaw(ctx)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}
	sessions, err := stores.SessionStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}
	invoices, err := stores.InvoiceStore.ListRawSince(ctx, since)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}
	notifications, err := stores.NotificationStore.ListRawRecent(ctx, notificationFetchLimit)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}
	entries, err := stores.WalletStore.ListRaw(ctx)
	if err != nil {
		return projections.GetNavSummaryData{}, err
	}

	return projections.GetNavSummaryData{
		Accounts:      accounts,
		Clients:       clients,
		Sessions:      sessions,
		Invoices:      invoices,
		Notifications: notifications,
		WalletEntries: entries,
	}, nil
}

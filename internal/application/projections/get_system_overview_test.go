package projections

import (
	"reflect"
	"testing"
	"time"

	"traindesk/internal/application/normalize"
	"traindesk/internal/domain/dashboard"
)

var overviewNow = time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC) // a Wednesday

func overviewFixture() GetSystemOverviewData {
	return GetSystemOverviewData{
		Accounts: []normalize.RawRecord{
			{"id": "a1", "name": "Direção", "role": "admin", "status": "active", "created_at": "2025-06-01T00:00:00Z"},
			{"id": "a2", "name": "Rui Tavares", "role": "coach", "status": "active"},
			{"id": "a3", "name": "Ana Silva", "role": "client", "status": "active", "created_at": "2026-02-10T00:00:00Z"},
			{"id": "a4", "name": "Bruno Costa", "role": "client", "is_active": false},
		},
		Sessions: []normalize.RawRecord{
			{"id": "s1", "client_id": "c1", "status": "completed", "completed_at": "2026-02-10T08:00:00Z"},
			{"id": "s2", "client_id": "c1", "status": "completed", "completed_at": "2026-02-11T08:00:00Z"},
			{"id": "s3", "client_id": "c2", "status": "no-show", "starts_at": "2026-02-12T08:00:00Z"},
		},
		Invoices: []normalize.RawRecord{
			{"id": "i1", "client_id": "c1", "client_name": "Ana Silva", "status": "paid", "amount": 150.0, "paid_at": "2026-02-10T12:00:00Z"},
			{"id": "i2", "client_id": "c2", "client_name": "Bruno Costa", "status": "overdue", "amount": 80.0, "issued_at": "2026-01-05T12:00:00Z"},
		},
		Notifications: []normalize.RawRecord{
			{"id": "n1", "title": "Manutenção", "category": "system", "created_at": "2026-02-17T20:00:00Z"},
		},
		WalletEntries: []normalize.RawRecord{
			{"id": "w1", "client_id": "c1", "client_name": "Ana Silva", "balance_after": 120.0, "created_at": "2026-02-01T00:00:00Z"},
			{"id": "w2", "client_id": "c1", "client_name": "Ana Silva", "balance_after": 40.0, "created_at": "2026-02-14T00:00:00Z"},
			{"id": "w3", "client_id": "c2", "client_name": "Bruno Costa", "balance_after": -60.0, "created_at": "2026-02-13T00:00:00Z"},
		},
	}
}

// TestQueryGetSystemOverview_WeeklyTimeline verifies the weekly bucket
// count and revenue placement.
func TestQueryGetSystemOverview_WeeklyTimeline(t *testing.T) {
	s := QueryGetSystemOverview(GetSystemOverviewQuery{Now: overviewNow, RangeWeeks: 12}, overviewFixture())

	if len(s.Timeline) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(s.Timeline))
	}
	// 2026-02-18 is a Wednesday; the last complete week starts Monday 2026-02-09.
	last := s.Timeline[len(s.Timeline)-1]
	if last.Key != "2026-02-09" {
		t.Fatalf("expected last bucket 2026-02-09, got %q", last.Key)
	}
	if last.Values["revenue"] != 150 {
		t.Errorf("expected paid revenue 150 in the last week, got %v", last.Values["revenue"])
	}
	if last.Values["sessions"] != 3 {
		t.Errorf("expected 3 sessions in the last week, got %v", last.Values["sessions"])
	}
}

// TestQueryGetSystemOverview_InvalidRangeFallsBack verifies unknown week
// counts fall back to the default.
func TestQueryGetSystemOverview_InvalidRangeFallsBack(t *testing.T) {
	s := QueryGetSystemOverview(GetSystemOverviewQuery{Now: overviewNow, RangeWeeks: 13}, overviewFixture())
	if len(s.Timeline) != DefaultOverviewWeeks {
		t.Errorf("expected %d buckets, got %d", DefaultOverviewWeeks, len(s.Timeline))
	}
}

// TestQueryGetSystemOverview_WalletReduction verifies the ledger reduces
// to the latest balance per client before banding.
func TestQueryGetSystemOverview_WalletReduction(t *testing.T) {
	s := QueryGetSystemOverview(GetSystemOverviewQuery{Now: overviewNow}, overviewFixture())

	byID := map[string]dashboard.HeroMetric{}
	for _, h := range s.Hero {
		byID[h.ID] = h
	}
	neg := byID["negativeWallets"]
	if neg.Value != "1" || neg.Tone != dashboard.ToneDanger {
		t.Errorf("expected 1 negative wallet with danger tone, got %+v", neg)
	}

	// c1's latest balance is 40 (medio), c2 is -60 (critico).
	bands := map[string]int{}
	for _, seg := range s.Distributions["walletBand"] {
		bands[seg.Key] = seg.Count
	}
	if bands["medio"] != 1 || bands["critico"] != 1 {
		t.Errorf("unexpected wallet bands: %v", bands)
	}
}

// TestQueryGetSystemOverview_TopDebtors verifies deepest debt ranks first.
func TestQueryGetSystemOverview_TopDebtors(t *testing.T) {
	data := overviewFixture()
	data.WalletEntries = append(data.WalletEntries, normalize.RawRecord{
		"id": "w4", "client_id": "c3", "client_name": "Carla Duarte", "balance_after": -10.0, "created_at": "2026-02-14T00:00:00Z",
	})
	s := QueryGetSystemOverview(GetSystemOverviewQuery{Now: overviewNow}, data)

	cards := s.Highlights["topDebtors"]
	if len(cards) != 2 {
		t.Fatalf("expected 2 debtors, got %d", len(cards))
	}
	if cards[0].ID != "c2" || cards[1].ID != "c3" {
		t.Errorf("expected debt order c2 then c3, got %q then %q", cards[0].ID, cards[1].ID)
	}
}

// TestQueryGetSystemOverview_Idempotent verifies structural idempotency
// across identical calls, including map-valued fields.
func TestQueryGetSystemOverview_Idempotent(t *testing.T) {
	q := GetSystemOverviewQuery{Now: overviewNow, RangeWeeks: 24}
	a := QueryGetSystemOverview(q, overviewFixture())
	b := QueryGetSystemOverview(q, overviewFixture())
	if !reflect.DeepEqual(a, b) {
		t.Error("snapshots differ across identical calls")
	}
	if err := dashboard.ValidateSnapshot(a); err != nil {
		t.Errorf("snapshot failed validation: %v", err)
	}
}

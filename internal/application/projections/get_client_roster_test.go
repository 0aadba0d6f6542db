package projections

import (
	"reflect"
	"testing"
	"time"

	"traindesk/internal/application/normalize"
	"traindesk/internal/domain/dashboard"
)

var rosterNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func rosterFixture() GetClientRosterData {
	return GetClientRosterData{
		Clients: []normalize.RawRecord{
			{"id": "c1", "name": "Ana Silva", "status": "active", "churn_risk": 0.8, "spend_30d": 900.0, "sessions_30d": 9, "sessions_scheduled": 2, "created_at": "2026-02-10T09:00:00Z", "last_seen_at": "2026-02-14T18:00:00Z"},
			{"id": "c2", "name": "Bruno Costa", "status": "active", "churn_risk": 0.5, "spend_30d": 500.0, "created_at": "2026-01-20T09:00:00Z"},
			{"id": "c3", "name": "Carla Duarte", "status": "pending", "spend_30d": 20.0, "engagement_score": 0.9},
			{"id": "c4", "name": "Diogo Lopes", "status": "suspended", "spend_30d": 10.0},
		},
		Sessions: []normalize.RawRecord{
			{"id": "s1", "client_id": "c1", "client_name": "Ana Silva", "status": "completed", "completed_at": "2026-02-14T08:00:00Z"},
			{"id": "s2", "client_id": "c2", "client_name": "Bruno Costa", "status": "cancelled", "starts_at": "2026-02-13T08:00:00Z"},
		},
		Invoices: []normalize.RawRecord{
			{"id": "i1", "client_id": "c1", "client_name": "Ana Silva", "status": "paid", "amount": 120.0, "paid_at": "2026-02-12T10:00:00Z"},
		},
	}
}

// TestQueryGetClientRoster_StatusDistribution verifies the status
// distribution counts, shares and order.
func TestQueryGetClientRoster_StatusDistribution(t *testing.T) {
	s := QueryGetClientRoster(GetClientRosterQuery{Now: rosterNow}, rosterFixture())

	segments := s.Distributions["status"]
	want := []struct {
		key   string
		count int
		share float64
	}{
		{"active", 2, 0.5},
		{"pending", 1, 0.25},
		{"suspended", 1, 0.25},
	}
	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(segments), segments)
	}
	for i, w := range want {
		if segments[i].Key != w.key || segments[i].Count != w.count || segments[i].Share != w.share {
			t.Errorf("segment %d: expected (%s, %d, %v), got %+v", i, w.key, w.count, w.share, segments[i])
		}
	}
}

// TestQueryGetClientRoster_TopSpenders verifies spend ranking order.
func TestQueryGetClientRoster_TopSpenders(t *testing.T) {
	s := QueryGetClientRoster(GetClientRosterQuery{Now: rosterNow}, rosterFixture())

	cards := s.Highlights["topSpenders"]
	wantIDs := []string{"c1", "c2", "c3", "c4"} // 900, 500, 20, 10
	if len(cards) != len(wantIDs) {
		t.Fatalf("expected %d cards, got %d", len(wantIDs), len(cards))
	}
	for i, id := range wantIDs {
		if cards[i].ID != id {
			t.Errorf("card %d: expected %q, got %q", i, id, cards[i].ID)
		}
	}
	if cards[0].Amount == nil || *cards[0].Amount != 900 {
		t.Errorf("expected top card amount 900, got %v", cards[0].Amount)
	}
}

// TestQueryGetClientRoster_EmptyInput verifies the zero-accounts path:
// formatted zero totals with neutral tone, sentinel distribution, no
// panic anywhere.
func TestQueryGetClientRoster_EmptyInput(t *testing.T) {
	s := QueryGetClientRoster(GetClientRosterQuery{Now: rosterNow, RangeDays: 14}, GetClientRosterData{})

	if err := dashboard.ValidateSnapshot(s); err != nil {
		t.Fatalf("empty-input snapshot failed validation: %v", err)
	}
	for _, h := range s.Hero {
		if h.Tone != dashboard.ToneNeutral {
			t.Errorf("hero %s: expected neutral tone on empty input, got %q", h.ID, h.Tone)
		}
	}
	if s.Hero[0].Value != "0" {
		t.Errorf("expected formatted \"0\" total, got %q", s.Hero[0].Value)
	}
	for _, name := range []string{"status", "risk", "engagement"} {
		segments := s.Distributions[name]
		if len(segments) != 1 || segments[0].Key != dashboard.SentinelSegmentKey {
			t.Errorf("distribution %q: expected the sentinel segment, got %+v", name, segments)
		}
	}
	if len(s.Timeline) != 14 {
		t.Errorf("expected 14 buckets, got %d", len(s.Timeline))
	}
}

// TestQueryGetClientRoster_Idempotent verifies identical inputs produce
// structurally identical snapshots.
func TestQueryGetClientRoster_Idempotent(t *testing.T) {
	q := GetClientRosterQuery{Now: rosterNow, RangeDays: 30}
	a := QueryGetClientRoster(q, rosterFixture())
	b := QueryGetClientRoster(q, rosterFixture())
	if !reflect.DeepEqual(a, b) {
		t.Error("snapshots differ across identical calls")
	}
}

// TestQueryGetClientRoster_TimelinePlacement verifies new-client counts
// land in their creation-day buckets and revenue is spread evenly.
func TestQueryGetClientRoster_TimelinePlacement(t *testing.T) {
	s := QueryGetClientRoster(GetClientRosterQuery{Now: rosterNow, RangeDays: 10}, rosterFixture())

	var feb10 *dashboard.Bucket
	for i := range s.Timeline {
		if s.Timeline[i].Key == "2026-02-10" {
			feb10 = &s.Timeline[i]
		}
	}
	if feb10 == nil {
		t.Fatal("expected a 2026-02-10 bucket")
	}
	if feb10.Values["newClients"] != 1 {
		t.Errorf("expected 1 new client on 2026-02-10, got %v", feb10.Values["newClients"])
	}

	// 30-day spend total 1430 spread across 10 buckets.
	for _, b := range s.Timeline {
		if b.Values["revenue"] != 143 {
			t.Errorf("bucket %s: expected spread revenue 143, got %v", b.Key, b.Values["revenue"])
		}
	}
}

// TestQueryGetClientRoster_HeroTones verifies the per-metric threshold
// tones on a populated roster.
func TestQueryGetClientRoster_HeroTones(t *testing.T) {
	s := QueryGetClientRoster(GetClientRosterQuery{Now: rosterNow}, rosterFixture())

	byID := map[string]dashboard.HeroMetric{}
	for _, h := range s.Hero {
		byID[h.ID] = h
	}
	if got := byID["atRisk"]; got.Tone != dashboard.ToneWarning || got.Value != "1" {
		t.Errorf("atRisk: expected warning tone and value 1, got %+v", got)
	}
	if got := byID["activeShare"]; got.Value != "50%" {
		t.Errorf("activeShare: expected 50%%, got %+v", got)
	}
	if got := byID["revenue30d"]; got.Tone != dashboard.TonePositive {
		t.Errorf("revenue30d: expected positive tone, got %+v", got)
	}
}

package fallback

import (
	"reflect"
	"testing"
	"time"

	"traindesk/internal/domain/dashboard"
)

var testNow = time.Date(2026, 2, 15, 14, 30, 0, 0, time.UTC)

// TestClientRoster_Deterministic verifies two calls with the same now are
// structurally identical.
func TestClientRoster_Deterministic(t *testing.T) {
	a := ClientRoster(testNow, 30)
	b := ClientRoster(testNow, 30)
	if !reflect.DeepEqual(a, b) {
		t.Error("fallback roster snapshots differ across calls with identical now")
	}
}

// TestSnapshots_PassLiveValidation verifies the structural round-trip:
// fallback snapshots satisfy the same validator as live ones.
func TestSnapshots_PassLiveValidation(t *testing.T) {
	snapshots := map[string]dashboard.Snapshot{
		"roster":      ClientRoster(testNow, 30),
		"system":      SystemOverview(testNow, 12),
		"nav admin":   NavSummary("admin", "", testNow),
		"nav trainer": NavSummary("trainer", "fb-trainer-1", testNow),
		"nav client":  NavSummary("client", "fb-client-01", testNow),
	}
	for name, s := range snapshots {
		if err := dashboard.ValidateSnapshot(s); err != nil {
			t.Errorf("%s: fallback snapshot failed live validation: %v", name, err)
		}
		if s.Source != dashboard.SourceFallback {
			t.Errorf("%s: expected fallback source, got %q", name, s.Source)
		}
	}
}

// TestSystemOverview_RangeWeeks verifies the weekly timeline length
// matches the requested range.
func TestSystemOverview_RangeWeeks(t *testing.T) {
	for _, weeks := range []int{12, 24, 36} {
		s := SystemOverview(testNow, weeks)
		if len(s.Timeline) != weeks {
			t.Errorf("range %dw: expected %d buckets, got %d", weeks, weeks, len(s.Timeline))
		}
	}
}

// TestClientRoster_HasContent verifies the synthetic roster is populated
// enough to render a convincing dashboard.
func TestClientRoster_HasContent(t *testing.T) {
	s := ClientRoster(testNow, 30)
	if len(s.Hero) == 0 || len(s.Timeline) != 30 {
		t.Fatalf("unexpected shape: %d hero, %d buckets", len(s.Hero), len(s.Timeline))
	}
	for _, group := range []string{"topSpenders", "atRisk", "newest"} {
		if len(s.Highlights[group]) == 0 {
			t.Errorf("highlight group %q is empty", group)
		}
	}
	if len(s.Activity) == 0 {
		t.Error("activity feed is empty")
	}
}

package aggregate

import (
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

// TestNewTimeline_WeeklyAlignment verifies Monday-aligned weekly keys and
// record placement.
func TestNewTimeline_WeeklyAlignment(t *testing.T) {
	now := time.Date(2024, 1, 29, 15, 0, 0, 0, time.UTC) // a Monday
	tl := NewTimeline(now, UnitWeek, 4, "newClients")

	buckets := tl.Buckets()
	wantKeys := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}
	if len(buckets) != len(wantKeys) {
		t.Fatalf("expected %d buckets, got %d", len(wantKeys), len(buckets))
	}
	for i, want := range wantKeys {
		if buckets[i].Key != want {
			t.Errorf("bucket %d: expected key %q, got %q", i, want, buckets[i].Key)
		}
	}

	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	tl.Increment("newClients", tp(created))

	for i, b := range tl.Buckets() {
		want := 0.0
		if b.Key == "2024-01-08" {
			want = 1
		}
		if b.Values["newClients"] != want {
			t.Errorf("bucket %d (%s): expected newClients=%v, got %v", i, b.Key, want, b.Values["newClients"])
		}
	}
}

// TestNewTimeline_WeekAlignmentMidWeek verifies a mid-week now still
// aligns buckets to Mondays and excludes the in-progress week.
func TestNewTimeline_WeekAlignmentMidWeek(t *testing.T) {
	now := time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC) // a Wednesday
	tl := NewTimeline(now, UnitWeek, 2)
	buckets := tl.Buckets()
	if buckets[0].Key != "2024-01-15" || buckets[1].Key != "2024-01-22" {
		t.Errorf("expected Monday-aligned complete weeks, got %q and %q", buckets[0].Key, buckets[1].Key)
	}
}

// TestNewTimeline_DailyGapFree verifies the series is always exactly n
// contiguous buckets regardless of record coverage.
func TestNewTimeline_DailyGapFree(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tl := NewTimeline(now, UnitDay, 30, "sessions")

	// One lone record; every other bucket must still exist at zero.
	tl.Increment("sessions", tp(time.Date(2026, 2, 14, 7, 0, 0, 0, time.UTC)))

	buckets := tl.Buckets()
	if len(buckets) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(buckets))
	}
	for i := 1; i < len(buckets); i++ {
		prev, _ := time.Parse("2006-01-02", buckets[i-1].Key)
		cur, _ := time.Parse("2006-01-02", buckets[i].Key)
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Errorf("gap between %q and %q", buckets[i-1].Key, buckets[i].Key)
		}
	}
	if buckets[len(buckets)-1].Key != "2026-03-01" {
		t.Errorf("last bucket should contain now, got %q", buckets[len(buckets)-1].Key)
	}
}

// TestTimeline_IgnoresOutOfRangeAndNil verifies records outside the range
// and nil timestamps are dropped silently.
func TestTimeline_IgnoresOutOfRangeAndNil(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tl := NewTimeline(now, UnitDay, 7, "sessions")
	tl.Increment("sessions", tp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	tl.Increment("sessions", tp(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	tl.Increment("sessions", nil)

	for _, b := range tl.Buckets() {
		if b.Values["sessions"] != 0 {
			t.Errorf("bucket %s: expected 0, got %v", b.Key, b.Values["sessions"])
		}
	}
}

// TestTimeline_Spread verifies even allocation of a range aggregate.
func TestTimeline_Spread(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tl := NewTimeline(now, UnitDay, 4, "revenue")
	tl.Spread("revenue", 100)

	total := 0.0
	for _, b := range tl.Buckets() {
		if b.Values["revenue"] != 25 {
			t.Errorf("bucket %s: expected 25, got %v", b.Key, b.Values["revenue"])
		}
		total += b.Values["revenue"]
	}
	if total != 100 {
		t.Errorf("spread should preserve the total, got %v", total)
	}
}

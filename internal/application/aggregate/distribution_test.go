package aggregate

import (
	"math"
	"testing"

	"traindesk/internal/domain/dashboard"
)

var statusCats = []Category{
	{Key: "active", Label: "Ativos", Tone: dashboard.TonePositive},
	{Key: "pending", Label: "Pendentes", Tone: dashboard.ToneInfo},
	{Key: "suspended", Label: "Suspensos", Tone: dashboard.ToneWarning},
	{Key: "inactive", Label: "Inativos", Tone: dashboard.ToneNeutral},
}

// TestDistribution_CountsAndShares verifies counts, shares and ordering
// for a mixed population.
func TestDistribution_CountsAndShares(t *testing.T) {
	keys := []string{"active", "active", "pending", "suspended"}
	segments := Distribution(keys, statusCats)

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
		t.Fatalf("expected %d segments, got %d", len(want), len(segments))
	}
	for i, w := range want {
		s := segments[i]
		if s.Key != w.key || s.Count != w.count || s.Share != w.share {
			t.Errorf("segment %d: expected (%s, %d, %v), got (%s, %d, %v)",
				i, w.key, w.count, w.share, s.Key, s.Count, s.Share)
		}
	}
}

// TestDistribution_SumInvariants verifies counts sum to the input length
// and shares to 1 within tolerance.
func TestDistribution_SumInvariants(t *testing.T) {
	keys := []string{"active", "pending", "suspended", "inactive", "active", "active", "pending"}
	segments := Distribution(keys, statusCats)

	count := 0
	share := 0.0
	for _, s := range segments {
		count += s.Count
		share += s.Share
	}
	if count != len(keys) {
		t.Errorf("counts should sum to %d, got %d", len(keys), count)
	}
	if math.Abs(share-1) > 1e-6 {
		t.Errorf("shares should sum to 1, got %v", share)
	}
}

// TestDistribution_EmptyInputSentinel verifies the empty-input contract.
func TestDistribution_EmptyInputSentinel(t *testing.T) {
	segments := Distribution(nil, statusCats)
	if len(segments) != 1 {
		t.Fatalf("expected exactly one sentinel segment, got %d", len(segments))
	}
	s := segments[0]
	if s.Key != dashboard.SentinelSegmentKey || s.Count != 0 || s.Share != 0 {
		t.Errorf("unexpected sentinel segment: %+v", s)
	}
	if s.Tone != dashboard.ToneNeutral {
		t.Errorf("sentinel tone should be neutral, got %q", s.Tone)
	}
}

// TestDistribution_TieBreakIsDeclarationOrder verifies equal counts sort
// by the category declaration order, not map iteration order.
func TestDistribution_TieBreakIsDeclarationOrder(t *testing.T) {
	keys := []string{"inactive", "suspended", "pending", "active"}
	for i := 0; i < 20; i++ { // map iteration order must never leak through
		segments := Distribution(keys, statusCats)
		wantOrder := []string{"active", "pending", "suspended", "inactive"}
		for j, w := range wantOrder {
			if segments[j].Key != w {
				t.Fatalf("run %d segment %d: expected %q, got %q", i, j, w, segments[j].Key)
			}
		}
	}
}

// TestDistribution_UndeclaredKeySurfaces verifies defensive handling of a
// key outside the declared categories.
func TestDistribution_UndeclaredKeySurfaces(t *testing.T) {
	segments := Distribution([]string{"active", "mystery"}, statusCats)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Key != "mystery" || segments[1].Label != "mystery" {
		t.Errorf("undeclared key should surface as its own segment, got %+v", segments[1])
	}
}

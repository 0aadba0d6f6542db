package aggregate

import (
	"math"
	"testing"
)

// TestPercent_Guards verifies the zero-total guard and clamping.
func TestPercent_Guards(t *testing.T) {
	cases := []struct {
		part, total, want float64
	}{
		{5, 10, 50},
		{0, 0, 0},  // empty population, never NaN
		{3, 0, 0},  // zero total, never Inf
		{-2, 10, 0},
		{15, 10, 100},
	}
	for _, c := range cases {
		got := Percent(c.part, c.total)
		if got != c.want {
			t.Errorf("Percent(%v, %v): expected %v, got %v", c.part, c.total, c.want, got)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("Percent(%v, %v): non-finite result %v", c.part, c.total, got)
		}
	}
}

// TestPerCapita_Guard verifies the empty-population guard.
func TestPerCapita_Guard(t *testing.T) {
	if got := PerCapita(100, 4); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
	if got := PerCapita(100, 0); got != 0 {
		t.Errorf("expected 0 for empty population, got %v", got)
	}
}

// TestFormatters verifies the KPI value renderings.
func TestFormatters(t *testing.T) {
	if got := FormatCount(0); got != "0" {
		t.Errorf("expected \"0\", got %q", got)
	}
	if got := FormatEuro(1234.5); got != "€1234.50" {
		t.Errorf("expected €1234.50, got %q", got)
	}
	if got := FormatPercent(49.6); got != "50%" {
		t.Errorf("expected 50%%, got %q", got)
	}
}

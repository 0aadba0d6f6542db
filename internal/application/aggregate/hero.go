package aggregate

import (
	"fmt"
	"strconv"
)

// Percent computes part/total as a percentage, guarded against empty
// populations.
// POST: Returns a value in [0, 100]; zero total yields 0, never NaN
func Percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := part / total * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// PerCapita computes total/n, guarded against an empty population.
func PerCapita(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return total / float64(n)
}

// FormatCount renders an integer KPI value.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// FormatEuro renders an amount with the euro sign. Not locale-aware —
// presentation-layer localization happens downstream.
func FormatEuro(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

// FormatPercent renders a percentage with no decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

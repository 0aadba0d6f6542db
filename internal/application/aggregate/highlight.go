package aggregate

import (
	"sort"

	"traindesk/internal/domain/dashboard"
)

// Ranked pairs a highlight card with the score it is ranked under.
type Ranked struct {
	Score float64
	Card  dashboard.HighlightCard
}

// TopCards returns at most n cards ordered by score descending. Ties keep
// the original input order (stable sort); fewer than n qualifying entries
// yield a shorter list, never padded.
// POST: len(result) <= n, scores monotonically non-increasing
func TopCards(entries []Ranked, n int) []dashboard.HighlightCard {
	ranked := make([]Ranked, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	cards := make([]dashboard.HighlightCard, 0, n)
	for _, r := range ranked[:n] {
		cards = append(cards, r.Card)
	}
	return cards
}

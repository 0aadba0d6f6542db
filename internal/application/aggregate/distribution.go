package aggregate

import (
	"sort"

	"traindesk/internal/domain/dashboard"
)

// Category declares one classification bucket for a distribution. The
// declaration order of a category list is the tie-break order when two
// segments have equal counts.
type Category struct {
	Key   string
	Label string
	Tone  dashboard.Tone
}

// Distribution groups pre-classified keys into ordered segments of
// (label, count, share-of-total). Keys outside the declared categories
// are kept as their own segments, labelled by key, ordered after the
// declared categories in first-seen order.
// POST: for non-empty input, counts sum to len(keys) and shares to 1;
// empty input yields exactly the one sentinel segment
func Distribution(keys []string, cats []Category) []dashboard.Segment {
	if len(keys) == 0 {
		return []dashboard.Segment{{
			Key:   dashboard.SentinelSegmentKey,
			Label: "Sem dados",
			Count: 0,
			Share: 0,
			Tone:  dashboard.ToneNeutral,
		}}
	}

	order := make(map[string]int, len(cats))
	labels := make(map[string]Category, len(cats))
	for i, c := range cats {
		order[c.Key] = i
		labels[c.Key] = c
	}

	counts := make(map[string]int)
	for _, k := range keys {
		if _, seen := counts[k]; !seen {
			if _, declared := order[k]; !declared {
				// Undeclared key: classifiers are total, so this is
				// defensive — surface it instead of dropping records.
				order[k] = len(order)
				labels[k] = Category{Key: k, Label: k, Tone: dashboard.ToneNeutral}
			}
		}
		counts[k]++
	}

	segments := make([]dashboard.Segment, 0, len(counts))
	total := float64(len(keys))
	for key, count := range counts {
		c := labels[key]
		segments = append(segments, dashboard.Segment{
			Key:   key,
			Label: c.Label,
			Count: count,
			Share: float64(count) / total,
			Tone:  c.Tone,
		})
	}

	sort.SliceStable(segments, func(a, b int) bool {
		if segments[a].Count != segments[b].Count {
			return segments[a].Count > segments[b].Count
		}
		return order[segments[a].Key] < order[segments[b].Key]
	})
	return segments
}

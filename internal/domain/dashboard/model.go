package dashboard

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Tone is a qualitative severity attached to a value for display emphasis.
type Tone string

// Closed set of tones understood by the presentation layer.
const (
	TonePositive Tone = "positive"
	ToneWarning  Tone = "warning"
	ToneDanger   Tone = "danger"
	ToneNeutral  Tone = "neutral"
	TonePrimary  Tone = "primary"
	ToneInfo     Tone = "info"
)

// Snapshot source tags.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Bounds shared by every assembler.
const (
	MaxHighlights = 5  // ranked cards per highlight group
	MaxActivity   = 10 // entries in the recent-activity feed
)

// SentinelSegmentKey identifies the single segment returned for an empty
// distribution input.
const SentinelSegmentKey = "none"

// Bucket is one fixed-width time slice of a timeline. Values holds the
// named accumulators for the slice; a bucket with no qualifying records
// still carries every accumulator at zero.
type Bucket struct {
	Key    string             `json:"key"`   // ISO date of the aligned period start
	Label  string             `json:"label"` // short display label
	Values map[string]float64 `json:"values"`
}

// Segment is one category's share of a classified population.
type Segment struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // 0..1 of the classified total
	Tone  Tone    `json:"tone"`
}

// HighlightCard is a short ranked summary of one notable record.
type HighlightCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount,omitempty"`
	Tone        Tone     `json:"tone"`
}

// HeroMetric is a top-line KPI with a pre-formatted value and helper text.
type HeroMetric struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Helper string `json:"helper"`
	Tone   Tone   `json:"tone"`
	Trend  string `json:"trend,omitempty"`
}

// ActivityItem is one entry in the recent-event feed.
type ActivityItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	OccurredAt string `json:"occurredAt"` // RFC 3339
	Tone       Tone   `json:"tone"`
}

// Snapshot is the complete, immutable output of one aggregation call.
// A new snapshot is built on every call; nothing in it is cached or
// mutated after construction.
type Snapshot struct {
	GeneratedAt   string                     `json:"generatedAt"` // RFC 3339, the now the call was given
	Source        string                     `json:"source"`      // live or fallback
	Hero          []HeroMetric               `json:"hero"`
	Timeline      []Bucket                   `json:"timeline"`
	Distributions map[string][]Segment       `json:"distributions"`
	Highlights    map[string][]HighlightCard `json:"highlights"`
	Activity      []ActivityItem             `json:"activity"`
}

// Validation errors surfaced by ValidateSnapshot.
var (
	ErrBadSource        = errors.New("snapshot source must be live or fallback")
	ErrBadGeneratedAt   = errors.New("snapshot generatedAt is not RFC 3339")
	ErrTimelineOrder    = errors.New("timeline bucket keys are not strictly increasing")
	ErrDistributionSums = errors.New("distribution shares do not sum to 1")
	ErrTooManyCards     = errors.New("highlight group exceeds the card bound")
	ErrActivityOrder    = errors.New("activity feed is not sorted newest-first")
)

const shareTolerance = 1e-6

// ValidateSnapshot checks the structural invariants every snapshot must
// satisfy, live or fallback alike.
// PRE: s was produced by an assembler or the fallback generator
// POST: Returns nil when all invariants hold, a sentinel-wrapped error otherwise
func ValidateSnapshot(s Snapshot) error {
	if s.Source != SourceLive && s.Source != SourceFallback {
		return fmt.Errorf("%w: %q", ErrBadSource, s.Source)
	}
	if _, err := time.Parse(time.RFC3339, s.GeneratedAt); err != nil {
		return fmt.Errorf("%w: %q", ErrBadGeneratedAt, s.GeneratedAt)
	}

	for i := 1; i < len(s.Timeline); i++ {
		if s.Timeline[i-1].Key >= s.Timeline[i].Key {
			return fmt.Errorf("%w: %q then %q", ErrTimelineOrder, s.Timeline[i-1].Key, s.Timeline[i].Key)
		}
	}

	for name, segments := range s.Distributions {
		if len(segments) == 0 {
			return fmt.Errorf("distribution %q is empty: want at least the sentinel segment", name)
		}
		total := 0
		share := 0.0
		for _, seg := range segments {
			if seg.Count < 0 {
				return fmt.Errorf("distribution %q segment %q has negative count", name, seg.Key)
			}
			if seg.Share < 0 || seg.Share > 1 {
				return fmt.Errorf("distribution %q segment %q share %v outside 0..1", name, seg.Key, seg.Share)
			}
			total += seg.Count
			share += seg.Share
		}
		if total > 0 && math.Abs(share-1) > shareTolerance {
			return fmt.Errorf("%w: %q sums to %v", ErrDistributionSums, name, share)
		}
	}

	for name, cards := range s.Highlights {
		if len(cards) > MaxHighlights {
			return fmt.Errorf("%w: %q has %d", ErrTooManyCards, name, len(cards))
		}
	}

	if len(s.Activity) > MaxActivity {
		return fmt.Errorf("activity feed has %d entries: bound is %d", len(s.Activity), MaxActivity)
	}
	// Compare as instants, not strings: RFC 3339 timestamps with mixed
	// UTC offsets do not sort lexicographically.
	var prev time.Time
	for i, item := range s.Activity {
		at, err := time.Parse(time.RFC3339, item.OccurredAt)
		if err != nil {
			return fmt.Errorf("activity entry %q occurredAt is not RFC 3339: %q", item.ID, item.OccurredAt)
		}
		if i > 0 && at.After(prev) {
			return fmt.Errorf("%w: %q before %q", ErrActivityOrder, s.Activity[i-1].OccurredAt, item.OccurredAt)
		}
		prev = at
	}

	return nil
}

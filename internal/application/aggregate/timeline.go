// Package aggregate holds the shared primitives behind every dashboard:
// time bucketing, categorical distributions, ranked highlights and hero
// metric helpers. Everything here is pure — callers supply the clock.
package aggregate

import (
	"time"

	"traindesk/internal/domain/dashboard"
)

// Unit is the fixed width of a timeline bucket.
type Unit string

const (
	UnitDay  Unit = "day"
	UnitWeek Unit = "week" // Monday-aligned
)

// Timeline accumulates per-bucket counters over a contiguous, gap-free
// range of n buckets ending at the bucket containing now.
type Timeline struct {
	unit    Unit
	buckets []dashboard.Bucket
	index   map[string]int
}

// NewTimeline builds exactly n unit-aligned buckets. Daily timelines
// cover [now-(n-1) days, now]; weekly timelines cover the last n
// complete Monday-aligned weeks, with the in-progress week excluded.
// The named counters are seeded at zero in every bucket so callers never
// see a missing accumulator.
// PRE: n >= 1
// POST: len(Buckets()) == n, keys strictly increasing and unit-aligned
func NewTimeline(now time.Time, unit Unit, n int, counters ...string) *Timeline {
	if n < 1 {
		n = 1
	}
	end := alignStart(now, unit)
	if unit == UnitWeek {
		end = step(end, unit, -1)
	}
	t := &Timeline{
		unit:    unit,
		buckets: make([]dashboard.Bucket, n),
		index:   make(map[string]int, n),
	}
	for i := 0; i < n; i++ {
		start := step(end, unit, i-(n-1))
		values := make(map[string]float64, len(counters))
		for _, c := range counters {
			values[c] = 0
		}
		t.buckets[i] = dashboard.Bucket{
			Key:    start.Format("2006-01-02"),
			Label:  bucketLabel(start, unit),
			Values: values,
		}
		t.index[t.buckets[i].Key] = i
	}
	return t
}

// Add accumulates v into the counter of the bucket containing ts.
// A nil timestamp or one outside the range is ignored.
func (t *Timeline) Add(counter string, ts *time.Time, v float64) {
	if ts == nil {
		return
	}
	key := alignStart(*ts, t.unit).Format("2006-01-02")
	i, ok := t.index[key]
	if !ok {
		return
	}
	t.buckets[i].Values[counter] += v
}

// Increment accumulates 1 into the counter of the bucket containing ts.
func (t *Timeline) Increment(counter string, ts *time.Time) {
	t.Add(counter, ts, 1)
}

// Spread allocates a range-level aggregate evenly across every bucket
// (total/n each). This is a documented approximation for metrics that
// only exist as a single figure for the whole range, e.g. "sessions in
// the last 30 days" with no per-day breakdown — it does not reconstruct
// the true per-period variance.
func (t *Timeline) Spread(counter string, total float64) {
	per := total / float64(len(t.buckets))
	for i := range t.buckets {
		t.buckets[i].Values[counter] += per
	}
}

// Buckets returns the accumulated series, oldest first.
func (t *Timeline) Buckets() []dashboard.Bucket {
	return t.buckets
}

// alignStart truncates ts to the start of its bucket: midnight for days,
// Monday midnight for weeks. The timestamp's own location is kept.
func alignStart(ts time.Time, unit Unit) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	if unit != UnitWeek {
		return day
	}
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -sinceMonday)
}

// step moves an aligned start by delta units.
func step(start time.Time, unit Unit, delta int) time.Time {
	if unit == UnitWeek {
		return start.AddDate(0, 0, 7*delta)
	}
	return start.AddDate(0, 0, delta)
}

func bucketLabel(start time.Time, unit Unit) string {
	if unit == UnitWeek {
		return "Semana de " + start.Format("2 Jan")
	}
	return start.Format("2 Jan")
}

// Package normalize turns raw, heterogeneously-shaped source rows into
// canonical domain records. Each canonical attribute declares an ordered
// list of candidate field names; the first candidate that parses wins.
// Malformed optional values degrade to nil — they never abort a batch.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one best-effort row from a backing source. Field names and
// value types vary per source; nothing about the shape is guaranteed.
type RawRecord map[string]any

// String resolves the first candidate field to a trimmed string.
// Numbers are stringified; anything else reads as absent.
// POST: Returns "" when no candidate yields a usable value
func String(r RawRecord, keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		case json.Number:
			return s.String()
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case int64:
			return strconv.FormatInt(s, 10)
		}
	}
	return ""
}

// Number resolves the first candidate field to a finite float.
// POST: Returns nil when no candidate parses as a finite number — never NaN
func Number(r RawRecord, keys ...string) *float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := asFloat(v); ok {
			return &f
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// timeLayouts are tried in order when a date arrives as a string.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time resolves the first candidate field to a timestamp.
// POST: Returns nil when no candidate parses as a valid date
func Time(r RawRecord, keys ...string) *time.Time {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if t, ok := asTime(v); ok {
			return &t
		}
	}
	return nil
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// Bool resolves the first candidate field to a boolean. Accepts native
// bools, the usual string spellings, and numeric 0/1.
func Bool(r RawRecord, keys ...string) *bool {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "yes", "sim", "1":
				t := true
				return &t
			case "false", "no", "nao", "não", "0":
				f := false
				return &f
			}
		default:
			if f, ok := asFloat(v); ok {
				out := f != 0
				return &out
			}
		}
	}
	return nil
}

// listDelimiters split a flat string into list entries.
var listDelimiters = []string{",", ";"}

// List resolves the first candidate field that yields a non-empty string
// list. Accepts a native list or a delimiter-separated string; entries
// are trimmed and empties dropped. A present but unusable candidate
// falls through to the next key, like the other resolvers.
// POST: Returns nil when no candidate yields any entry
func List(r RawRecord, keys ...string) []string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if out := listOf(v); len(out) > 0 {
			return out
		}
	}
	return nil
}

// listOf parses one raw value into trimmed, non-empty list entries.
func listOf(v any) []string {
	var parts []string
	switch l := v.(type) {
	case []string:
		parts = l
	case []any:
		for _, item := range l {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = []string{l}
		for _, d := range listDelimiters {
			if strings.Contains(l, d) {
				parts = strings.Split(l, d)
				break
			}
		}
	default:
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

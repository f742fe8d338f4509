package hormone

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"hormoiq/domain/core"
)

// SortByRecency returns a copy of ms ordered newest first. Ties keep input order.
func SortByRecency(ms []Measurement) []Measurement {
	out := make([]Measurement, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Values extracts the reported values for h, preserving the order of ms
func Values(ms []Measurement, h Hormone) []float64 {
	var out []float64
	for _, m := range ms {
		if v, ok := m.Value(h); ok {
			out = append(out, v)
		}
	}
	return out
}

// WithHormone keeps the measurements that report h, preserving order
func WithHormone(ms []Measurement, h Hormone) []Measurement {
	var out []Measurement
	for _, m := range ms {
		if m.Has(h) {
			out = append(out, m)
		}
	}
	return out
}

// Span is the time between the oldest and newest measurement
func Span(ms []Measurement) time.Duration {
	if len(ms) == 0 {
		return 0
	}
	oldest, newest := ms[0].Timestamp, ms[0].Timestamp
	for _, m := range ms[1:] {
		if m.Timestamp.Before(oldest) {
			oldest = m.Timestamp
		}
		if m.Timestamp.After(newest) {
			newest = m.Timestamp
		}
	}
	return newest.Sub(oldest)
}

// WeeksCovered is Span expressed in fractional weeks
func WeeksCovered(ms []Measurement) float64 {
	return float64(Span(ms)) / float64(core.Week)
}

// NormalizeInterventions trims names, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeInterventions(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// DistinctInterventions lists every intervention in the history once, using the
// first spelling encountered, sorted case-insensitively.
func DistinctInterventions(ms []Measurement) []string {
	var all []string
	for _, m := range ms {
		all = append(all, m.Interventions...)
	}
	out := NormalizeInterventions(all)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// Fingerprint hashes the identity and values of a history so stored results can be
// traced back to the exact inputs they were computed from.
func Fingerprint(ms []Measurement) core.HistoryHash {
	parts := make([]string, 0, len(ms))
	for _, m := range SortByRecency(ms) {
		var b strings.Builder
		b.WriteString(m.ID.String())
		b.WriteByte('|')
		b.WriteString(m.Timestamp.UTC().Format(time.RFC3339Nano))
		for _, h := range All {
			b.WriteByte('|')
			if v, ok := m.Value(h); ok {
				b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		b.WriteByte('|')
		b.WriteString(strings.ToLower(strings.Join(m.Interventions, ",")))
		parts = append(parts, b.String())
	}
	return core.HistoryHash(core.ComputeHash(parts))
}

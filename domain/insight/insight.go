// Package insight summarizes a user's history into the context handed to the
// assistant: recent tests, detected patterns and the interventions in use.
package insight

import (
	"time"

	"github.com/montanaflynn/stats"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

const (
	recentTests    = 10
	trendWindow    = 5
	minTrendPoints = 3
	minTests       = 3
)

// Kind classifies a detected pattern
type Kind string

const (
	CortisolRising      Kind = "cortisol_rising"
	CortisolFalling     Kind = "cortisol_falling"
	TestosteroneRising  Kind = "testosterone_rising"
	TestosteroneFalling Kind = "testosterone_falling"
	ConsistentTesting   Kind = "consistent_testing"
)

// Pattern is one observation about the history
type Pattern struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Context is everything the assistant is told about a user
type Context struct {
	Profile       hormone.UserProfile   `json:"profile"`
	TestCount     int                   `json:"test_count"`
	RecentTests   []hormone.Measurement `json:"recent_tests"`
	Patterns      []Pattern             `json:"patterns"`
	Interventions []string              `json:"interventions"`
}

// trendRule flags a hormone whose two newest values average more than the factor
// above or below the two oldest of its recent window.
type trendRule struct {
	hormone hormone.Hormone
	factor  float64
	rising  Pattern
	falling Pattern
}

var trendRules = []trendRule{
	{
		hormone: hormone.Cortisol,
		factor:  0.15,
		rising:  Pattern{CortisolRising, "Cortisol trending upward recently (possible stress increase)"},
		falling: Pattern{CortisolFalling, "Cortisol trending downward (improved stress management)"},
	},
	{
		hormone: hormone.Testosterone,
		factor:  0.10,
		rising:  Pattern{TestosteroneRising, "Testosterone improving (positive trend)"},
		falling: Pattern{TestosteroneFalling, "Testosterone declining (may need attention)"},
	},
}

// Build assembles the assistant context as of now
func Build(history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (Context, error) {
	if err := profile.Validate(); err != nil {
		return Context{}, err
	}
	if err := hormone.ValidateHistory(history); err != nil {
		return Context{}, err
	}

	sorted := hormone.SortByRecency(history)
	recent := sorted
	if len(recent) > recentTests {
		recent = recent[:recentTests]
	}

	interventions := hormone.DistinctInterventions(sorted)
	if interventions == nil {
		interventions = []string{}
	}

	return Context{
		Profile:       profile,
		TestCount:     len(sorted),
		RecentTests:   recent,
		Patterns:      Patterns(sorted, now),
		Interventions: interventions,
	}, nil
}

// Patterns detects trends and testing consistency. history must be newest first.
func Patterns(history []hormone.Measurement, now time.Time) []Pattern {
	out := []Pattern{}
	if len(history) < minTests {
		return out
	}

	for _, rule := range trendRules {
		values := hormone.Values(history, rule.hormone)
		if len(values) > trendWindow {
			values = values[:trendWindow]
		}
		if len(values) < minTrendPoints {
			continue
		}
		newer, _ := stats.Mean(values[:2])
		older, _ := stats.Mean(values[len(values)-2:])
		switch {
		case newer > older*(1+rule.factor):
			out = append(out, rule.rising)
		case newer < older*(1-rule.factor):
			out = append(out, rule.falling)
		}
	}

	days := make(map[string]struct{})
	for _, m := range history {
		days[m.Timestamp.UTC().Format(time.DateOnly)] = struct{}{}
	}
	weeks := core.WeeksBetween(history[len(history)-1].Timestamp, now)
	if weeks > 2 && float64(len(days))/weeks >= 2.5 {
		out = append(out, Pattern{ConsistentTesting, "Consistent testing schedule (3+ tests per week)"})
	}
	return out
}

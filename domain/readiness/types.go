// Package readiness computes the daily ReadyScore and its Physical and Mental
// sub-scores from the latest test, the recent history and the user profile.
package readiness

import "time"

// Category names a readiness sub-score
type Category string

const (
	Physical Category = "physical"
	Mental   Category = "mental"
)

// StaleColor is used for every result computed from a test older than MaxTestAge
const StaleColor = "gray"

// MaxTestAge is how old the latest test may be before scores are withheld
const MaxTestAge = 24 * time.Hour

// Breakdown holds the raw (unweighted) contribution of each input
type Breakdown struct {
	Cortisol     float64 `json:"cortisol"`
	Testosterone float64 `json:"testosterone"`
	Progesterone float64 `json:"progesterone"`
	Trend        float64 `json:"trend"`
}

// ReadyScoreResult is the overall 0-100 readiness score. Score is nil when the
// latest test is stale.
type ReadyScoreResult struct {
	Score      *int      `json:"score"`
	Confidence int       `json:"confidence"`
	Breakdown  Breakdown `json:"breakdown"`
	Message    string    `json:"message"`
	Color      string    `json:"color"`
	Advice     string    `json:"advice"`
	Stale      bool      `json:"stale"`
	TestCount  int       `json:"test_count"`
	ComputedAt time.Time `json:"computed_at"`
}

// CategoryScore is a Physical or Mental sub-score with its contributing factors
type CategoryScore struct {
	Category    Category `json:"category"`
	Score       *int     `json:"score"`
	Title       string   `json:"title"`
	Color       string   `json:"color"`
	Explanation string   `json:"explanation"`
	Factors     []string `json:"factors"`
	Stale       bool     `json:"stale"`
}

// Report bundles the three scores computed for one request
type Report struct {
	Ready    ReadyScoreResult `json:"ready_score"`
	Physical CategoryScore    `json:"physical"`
	Mental   CategoryScore    `json:"mental"`
}

// contribution is the output of every evaluator: points plus a human-readable factor.
// An empty factor means nothing worth showing.
type contribution struct {
	points float64
	factor string
}

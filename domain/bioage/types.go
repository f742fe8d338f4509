// Package bioage estimates biological age from hormone history. Each hormone and the
// testing behavior contribute a bounded number of years, weighted and summed onto
// the chronological age.
package bioage

import "hormoiq/domain/reference"

// Score is one component of the estimate, in years
type Score struct {
	Score    float64 `json:"score"`
	Weighted float64 `json:"weighted"`
	Note     string  `json:"note"`
}

// Breakdown lists every component. Progesterone is only present for women who
// reported it.
type Breakdown struct {
	Cortisol     Score  `json:"cortisol"`
	Testosterone Score  `json:"testosterone"`
	Progesterone *Score `json:"progesterone,omitempty"`
	Ratio        Score  `json:"ratio"`
	Behavior     Score  `json:"behavior"`
}

// Confidence is the accuracy claim attached to an unlocked result
type Confidence struct {
	reference.ConfidenceTier
	Message string `json:"message"`
}

// Result is either locked, carrying how much more data is needed, or a full estimate
type Result struct {
	Locked      bool    `json:"locked"`
	TestsNeeded int     `json:"tests_needed,omitempty"`
	WeeksNeeded float64 `json:"weeks_needed,omitempty"`
	Message     string  `json:"message,omitempty"`

	BioAge           int                       `json:"bio_age,omitempty"`
	ChronologicalAge int                       `json:"chronological_age"`
	Delta            int                       `json:"delta"`
	Breakdown        *Breakdown                `json:"breakdown,omitempty"`
	TotalAdjustment  float64                   `json:"total_adjustment"`
	Confidence       *Confidence               `json:"confidence,omitempty"`
	Percentile       *reference.PercentileTier `json:"percentile,omitempty"`

	TestCount    int     `json:"test_count"`
	WeeksCovered float64 `json:"weeks_covered"`
}

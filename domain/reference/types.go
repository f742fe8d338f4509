// Package reference holds the research-derived reference data: age-bracketed optimal
// ranges per hormone and gender, bio-age weights and the tier tables used to label
// results. A Dataset is immutable once validated and is injected into the engines.
package reference

import (
	"fmt"
	"sort"

	"hormoiq/domain/core"
)

// Range is a closed [Min, Max] interval
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Mid is the midpoint of the range
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Width is Max - Min
func (r Range) Width() float64 { return r.Max - r.Min }

// Contains reports whether v lies inside the closed range
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Row is one age bracket of a reference table. A row covers ages [From, next.From).
// Fields that do not apply to a hormone stay zero.
type Row struct {
	Label        string  `json:"label" yaml:"label"`
	From         int     `json:"from" yaml:"from"`
	Min          float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max          float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean         float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	LowThreshold float64 `json:"low_threshold,omitempty" yaml:"low_threshold,omitempty"`
	Follicular   float64 `json:"follicular,omitempty" yaml:"follicular,omitempty"`
	Luteal       float64 `json:"luteal,omitempty" yaml:"luteal,omitempty"`
	Baseline     float64 `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

// Range returns the optimal [Min, Max] of the row
func (r Row) Range() Range { return Range{Min: r.Min, Max: r.Max} }

// Table is a list of bracket rows sorted by From ascending
type Table []Row

// Lookup returns the row whose bracket contains age. Ages below the first bracket
// resolve to the first row and ages past the last bracket to the last row, so every
// age has a range.
func (t Table) Lookup(age int) (Row, error) {
	if len(t) == 0 {
		return Row{}, fmt.Errorf("%w: empty bracket table", core.ErrInvalidDataset)
	}
	// first row whose From is past age; the bracket before it contains age
	i := sort.Search(len(t), func(i int) bool { return t[i].From > age })
	if i == 0 {
		return t[0], nil
	}
	return t[i-1], nil
}

// GenderTables keys a table per supported gender
type GenderTables struct {
	Male   Table `json:"male" yaml:"male"`
	Female Table `json:"female" yaml:"female"`
}

// ProgesteroneTables split the female data by menopause status; men have a single
// low baseline row.
type ProgesteroneTables struct {
	Premenopausal  Table `json:"premenopausal" yaml:"premenopausal"`
	Postmenopausal Table `json:"postmenopausal" yaml:"postmenopausal"`
	Male           Table `json:"male" yaml:"male"`
}

// Weights are the multiplicative factors applied to each bio-age score
type Weights struct {
	Cortisol           float64 `json:"cortisol" yaml:"cortisol"`
	TestosteroneMale   float64 `json:"testosterone_male" yaml:"testosterone_male"`
	TestosteroneFemale float64 `json:"testosterone_female" yaml:"testosterone_female"`
	Progesterone       float64 `json:"progesterone" yaml:"progesterone"`
	Ratio              float64 `json:"ratio" yaml:"ratio"`
	Behavior           float64 `json:"behavior" yaml:"behavior"`
}

// ConfidenceTier maps a data volume to an accuracy claim
type ConfidenceTier struct {
	Level      string  `json:"level" yaml:"level"`
	MinTests   int     `json:"min_tests" yaml:"min_tests"`
	MinWeeks   float64 `json:"min_weeks" yaml:"min_weeks"`
	Accuracy   int     `json:"accuracy" yaml:"accuracy"`
	RangeYears int     `json:"range_years" yaml:"range_years"`
	Color      string  `json:"color" yaml:"color"`
}

// Message is the human-readable summary of the tier
func (c ConfidenceTier) Message() string {
	return fmt.Sprintf("%s confidence - %d%% accuracy (±%d years)", capitalize(c.Level), c.Accuracy, c.RangeYears)
}

// PercentileTier labels a bio-age delta. Tiers are scanned in order and the first
// whose MinDelta is <= delta wins.
type PercentileTier struct {
	MinDelta   float64 `json:"-" yaml:"min_delta"`
	Percentile int     `json:"percentile" yaml:"percentile"`
	Rank       string  `json:"rank" yaml:"rank"`
	Message    string  `json:"message" yaml:"message"`
	Tier       string  `json:"tier" yaml:"tier"`
}

// BioAgeParams groups the bio-age weights, limits and tier tables
type BioAgeParams struct {
	Weights         Weights          `json:"weights" yaml:"weights"`
	MaxYounger      int              `json:"max_younger" yaml:"max_younger"`
	MaxOlder        int              `json:"max_older" yaml:"max_older"`
	ConfidenceTiers []ConfidenceTier `json:"confidence_tiers" yaml:"confidence_tiers"`
	PercentileTiers []PercentileTier `json:"percentile_tiers" yaml:"percentile_tiers"`
}

// Unlock is the lowest confidence tier, which doubles as the minimum data needed
func (p BioAgeParams) Unlock() ConfidenceTier {
	return p.ConfidenceTiers[len(p.ConfidenceTiers)-1]
}

// Dataset is a complete, versioned set of reference data
type Dataset struct {
	Version      string             `json:"version" yaml:"version"`
	Cortisol     GenderTables       `json:"cortisol" yaml:"cortisol"`
	Testosterone GenderTables       `json:"testosterone" yaml:"testosterone"`
	Progesterone ProgesteroneTables `json:"progesterone" yaml:"progesterone"`
	BioAge       BioAgeParams       `json:"bioage" yaml:"bioage"`
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// Package impact estimates whether an intervention (a supplement or habit) moves a
// hormone, by comparing tests taken with it against tests taken without it.
package impact

import (
	"math"
	"sort"
	"strings"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// MinGroupSize is the smallest with/without group the t-test is run on
const MinGroupSize = 3

// Analysis is the result for one intervention and hormone. When Insufficient is set
// only the counts and Needed are meaningful.
type Analysis struct {
	Intervention string          `json:"intervention"`
	Hormone      hormone.Hormone `json:"hormone"`
	Insufficient bool            `json:"insufficient_data"`
	WithCount    int             `json:"with_count"`
	WithoutCount int             `json:"without_count"`
	Needed       int             `json:"needed,omitempty"`

	MeanWith         float64  `json:"mean_with"`
	MeanWithout      float64  `json:"mean_without"`
	SDWith           float64  `json:"sd_with"`
	SDWithout        float64  `json:"sd_without"`
	PercentChange    float64  `json:"percent_change"`
	AbsoluteChange   float64  `json:"absolute_change"`
	TStatistic       float64  `json:"t_statistic"`
	DegreesOfFreedom int      `json:"degrees_of_freedom"`
	PValue           float64  `json:"p_value"`
	ReferencePValue  float64  `json:"reference_p_value"`
	Significant      bool     `json:"significant"`
	ConfidenceLevel  *int     `json:"confidence_level"`
	MonthlyCost      float64  `json:"monthly_cost"`
	AnnualCost       float64  `json:"annual_cost"`
	Verdict          *Verdict `json:"verdict,omitempty"`
}

// Report aggregates the analyses of every logged intervention
type Report struct {
	Results          []Analysis `json:"results"`
	Keep             []Analysis `json:"keep"`
	Stop             []Analysis `json:"stop"`
	Insufficient     []Analysis `json:"insufficient"`
	NotSignificant   int        `json:"not_significant"`
	PotentialSavings float64    `json:"potential_savings"`
	TotalAnalyzed    int        `json:"total_analyzed"`
}

// Analyzer runs impact analyses priced against a catalog
type Analyzer struct {
	catalog *Catalog
}

// NewAnalyzer creates an analyzer. A nil catalog selects DefaultCatalog().
func NewAnalyzer(catalog *Catalog) *Analyzer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Analyzer{catalog: catalog}
}

// Catalog exposes the pricing catalog
func (a *Analyzer) Catalog() *Catalog { return a.catalog }

// partition splits the values of h by whether the intervention was logged on the test
func partition(history []hormone.Measurement, intervention string, h hormone.Hormone) (with, without []float64) {
	for _, m := range history {
		v, ok := m.Value(h)
		if !ok {
			continue
		}
		if m.HasIntervention(intervention) {
			with = append(with, v)
		} else {
			without = append(without, v)
		}
	}
	return with, without
}

// Analyze compares tests with and without the intervention for one hormone
func (a *Analyzer) Analyze(history []hormone.Measurement, intervention string, h hormone.Hormone) (Analysis, error) {
	if _, err := hormone.ParseHormone(string(h)); err != nil {
		return Analysis{}, err
	}
	intervention = strings.TrimSpace(intervention)
	if intervention == "" {
		return Analysis{}, core.NewValidationError("intervention", "name is required")
	}
	if err := hormone.ValidateHistory(history); err != nil {
		return Analysis{}, err
	}
	return a.analyze(history, intervention, h), nil
}

func (a *Analyzer) analyze(history []hormone.Measurement, intervention string, h hormone.Hormone) Analysis {
	with, without := partition(history, intervention, h)
	res := Analysis{
		Intervention: intervention,
		Hormone:      h,
		WithCount:    len(with),
		WithoutCount: len(without),
	}
	if len(with) < MinGroupSize || len(without) < MinGroupSize {
		res.Insufficient = true
		res.Needed = max(0, MinGroupSize-min(len(with), len(without)))
		return res
	}

	tt := Compare(with, without)
	res.MeanWith = tt.With.Mean
	res.MeanWithout = tt.Without.Mean
	res.SDWith = tt.With.SD
	res.SDWithout = tt.Without.SD
	res.AbsoluteChange = tt.With.Mean - tt.Without.Mean
	// values are validated positive, so the without-mean is never zero
	res.PercentChange = res.AbsoluteChange / tt.Without.Mean * 100
	res.TStatistic = tt.T
	res.DegreesOfFreedom = tt.DegreesOfFreedom
	res.PValue = tt.P
	res.ReferencePValue = tt.ReferenceP
	res.Significant = tt.Significant()
	res.ConfidenceLevel = tt.ConfidenceLevel()
	res.MonthlyCost = a.catalog.MonthlyCost(intervention)
	res.AnnualCost = res.MonthlyCost * 12

	v := verdictFor(h, res.PercentChange, res.Significant, res.MonthlyCost)
	res.Verdict = &v
	return res
}

// AnalyzeAll analyzes every distinct intervention in the history against each
// hormone. Only significant results are ranked; insufficient pairs are listed so
// callers can show how much more data each needs. An empty hormones list means all.
func (a *Analyzer) AnalyzeAll(history []hormone.Measurement, hormones []hormone.Hormone) (Report, error) {
	if err := hormone.ValidateHistory(history); err != nil {
		return Report{}, err
	}
	if len(hormones) == 0 {
		hormones = hormone.All
	}
	for _, h := range hormones {
		if _, err := hormone.ParseHormone(string(h)); err != nil {
			return Report{}, err
		}
	}

	rep := Report{
		Results:      []Analysis{},
		Keep:         []Analysis{},
		Stop:         []Analysis{},
		Insufficient: []Analysis{},
	}
	for _, name := range hormone.DistinctInterventions(history) {
		for _, h := range hormones {
			res := a.analyze(history, name, h)
			switch {
			case res.Insufficient:
				rep.Insufficient = append(rep.Insufficient, res)
			case !res.Significant:
				rep.NotSignificant++
			default:
				rep.Results = append(rep.Results, res)
			}
		}
	}

	// DistinctInterventions is sorted, so ties keep a stable name order
	sort.SliceStable(rep.Results, func(i, j int) bool {
		return math.Abs(rep.Results[i].PercentChange) > math.Abs(rep.Results[j].PercentChange)
	})

	for _, res := range rep.Results {
		switch res.Verdict.Action {
		case Keep:
			rep.Keep = append(rep.Keep, res)
		case Stop:
			rep.Stop = append(rep.Stop, res)
			rep.PotentialSavings += res.AnnualCost
		}
	}
	rep.TotalAnalyzed = len(rep.Results)
	return rep, nil
}

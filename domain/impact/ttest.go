package impact

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxTStatistic caps the t-statistic when both groups have zero variance but
// different means, keeping results finite and JSON-safe.
const MaxTStatistic = 1e6

// pStep is one row of the coarse p-value table. Rows are scanned in order and the
// first whose threshold |t| exceeds wins.
type pStep struct {
	above float64
	p     float64
}

var pTable = []pStep{
	{3, 0.01},
	{2.5, 0.02},
	{2, 0.05},
	{1.65, 0.10},
	{1.3, 0.20},
}

const pFloor = 0.30

// SignificanceLevel is the p-value below which an effect counts as significant
const SignificanceLevel = 0.10

// TablePValue maps |t| onto the coarse step table. Verdicts always use this value.
func TablePValue(t float64) float64 {
	t = math.Abs(t)
	for _, s := range pTable {
		if t > s.above {
			return s.p
		}
	}
	return pFloor
}

// ReferencePValue is the exact two-tailed Student-t p-value. It is reported next
// to the table value for comparison only.
func ReferencePValue(t float64, df int) float64 {
	if df <= 0 {
		return 1.0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// Sample summarizes one group
type Sample struct {
	N    int
	Mean float64
	SD   float64
}

func summarize(values []float64) Sample {
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationPopulation(values)
	return Sample{N: len(values), Mean: mean, SD: sd}
}

// TTest is the outcome of a pooled-variance two-sample t-test
type TTest struct {
	With             Sample
	Without          Sample
	T                float64
	DegreesOfFreedom int
	P                float64
	ReferenceP       float64
}

// Compare runs the two-sample t-test of with against without. Both groups need at
// least two values for the pooled variance to be defined.
func Compare(with, without []float64) TTest {
	a, b := summarize(with), summarize(without)
	df := a.N + b.N - 2

	// population variances weighted by n-1, matching the reported SDs
	va := stat.PopVariance(with, nil)
	vb := stat.PopVariance(without, nil)
	pooled := math.Sqrt((float64(a.N-1)*va + float64(b.N-1)*vb) / float64(df))
	se := pooled * math.Sqrt(1/float64(a.N)+1/float64(b.N))

	diff := a.Mean - b.Mean
	var t float64
	switch {
	case se > 0:
		t = diff / se
	case diff > 0:
		t = MaxTStatistic
	case diff < 0:
		t = -MaxTStatistic
	}
	t = math.Max(-MaxTStatistic, math.Min(MaxTStatistic, t))

	return TTest{
		With:             a,
		Without:          b,
		T:                t,
		DegreesOfFreedom: df,
		P:                TablePValue(t),
		ReferenceP:       ReferencePValue(t, df),
	}
}

// Significant reports whether the table p-value clears SignificanceLevel
func (r TTest) Significant() bool {
	return r.P < SignificanceLevel
}

// ConfidenceLevel is 95 or 90 for significant results and nil otherwise
func (r TTest) ConfidenceLevel() *int {
	if !r.Significant() {
		return nil
	}
	level := 90
	if r.P < 0.05 {
		level = 95
	}
	return &level
}

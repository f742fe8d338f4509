package bioage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/reference"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// series builds n tests spread evenly over span, newest first. values receives the
// index (0 = newest) and returns cortisol, testosterone and progesterone; zero means
// not reported.
func series(n int, span time.Duration, values func(i int) (c, t, p float64)) []hormone.Measurement {
	out := make([]hormone.Measurement, n)
	step := time.Duration(0)
	if n > 1 {
		step = span / time.Duration(n-1)
	}
	for i := range out {
		c, t, p := values(i)
		m := hormone.Measurement{
			ID:        core.NewMeasurementID(),
			Timestamp: now.Add(-time.Duration(i) * step),
			TimeOfDay: hormone.Morning,
		}
		if c > 0 {
			m.Cortisol = hormone.Float(c)
		}
		if t > 0 {
			m.Testosterone = hormone.Float(t)
		}
		if p > 0 {
			m.Progesterone = hormone.Float(p)
		}
		out[i] = m
	}
	return out
}

func constant(c, t, p float64) func(int) (float64, float64, float64) {
	return func(int) (float64, float64, float64) { return c, t, p }
}

var male30 = hormone.UserProfile{Age: 30, Gender: hormone.Male}

func TestCompute_Locked(t *testing.T) {
	e := NewEngine(nil)

	res, err := e.Compute(nil, male30)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, 10, res.TestsNeeded)
	assert.Equal(t, "10 more tests needed to unlock BioAge", res.Message)
	assert.Nil(t, res.Breakdown)

	res, err = e.Compute(series(9, 3*core.Week, constant(12, 700, 0)), male30)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, 1, res.TestsNeeded)

	res, err = e.Compute(series(12, core.Week, constant(12, 700, 0)), male30)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, 0, res.TestsNeeded)
	assert.Equal(t, 1.0, res.WeeksNeeded)
	assert.Contains(t, res.Message, "more weeks")
}

func TestCompute_TenTestsOverThreeWeeks(t *testing.T) {
	e := NewEngine(nil)

	res, err := e.Compute(series(10, 3*core.Week, constant(12, 700, 0)), male30)
	require.NoError(t, err)
	require.False(t, res.Locked)

	// cortisol consistent in range (-1.0 x 1.5), testosterone stable (-0.5 x 1.2),
	// excellent ratio (-0.5)
	assert.Equal(t, -1.0, res.Breakdown.Cortisol.Score)
	assert.InDelta(t, -1.5, res.Breakdown.Cortisol.Weighted, 1e-9)
	assert.InDelta(t, -0.6, res.Breakdown.Testosterone.Weighted, 1e-9)
	assert.Equal(t, -0.5, res.Breakdown.Ratio.Score)
	assert.Equal(t, 0.0, res.Breakdown.Behavior.Score)
	assert.Nil(t, res.Breakdown.Progesterone)
	assert.Equal(t, -2.6, res.TotalAdjustment)

	assert.Equal(t, 27, res.BioAge)
	assert.Equal(t, 3, res.Delta)
	assert.InDelta(t, 30, res.BioAge, 5)
	assert.Equal(t, "low", res.Confidence.Level)
	assert.Equal(t, "good", res.Percentile.Tier)
	assert.Equal(t, 3.0, res.WeeksCovered)
}

func TestCompute_ClampedToLimits(t *testing.T) {
	ds := reference.Default()
	ds.BioAge.Weights.Cortisol = 20
	e := NewEngine(reference.MustResolver(ds))

	older, err := e.Compute(series(10, 3*core.Week, constant(45, 700, 0)), male30)
	require.NoError(t, err)
	assert.Equal(t, 45, older.BioAge)
	assert.Equal(t, -15, older.Delta)
	assert.Equal(t, "urgent", older.Percentile.Tier)

	younger, err := e.Compute(series(10, 3*core.Week, constant(12, 700, 0)), male30)
	require.NoError(t, err)
	assert.Equal(t, 15, younger.BioAge)
	assert.Equal(t, "elite", younger.Percentile.Tier)
}

func TestCompute_CortisolMonotonic(t *testing.T) {
	e := NewEngine(nil)
	prev := 0

	for _, c := range []float64{14, 19, 22, 26, 30, 40, 50} {
		res, err := e.Compute(series(10, 3*core.Week, constant(c, 710, 0)), male30)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.BioAge, prev, "cortisol %v", c)
		prev = res.BioAge
	}
}

func TestCompute_TestosteroneDecline(t *testing.T) {
	e := NewEngine(nil)

	// newest five average 600, oldest five 700: a 14% drop
	declining := series(10, 3*core.Week, func(i int) (float64, float64, float64) {
		if i < 5 {
			return 12, 600, 0
		}
		return 12, 700, 0
	})
	res, err := e.Compute(declining, male30)
	require.NoError(t, err)
	assert.Equal(t, 2.5, res.Breakdown.Testosterone.Score)
	assert.Contains(t, res.Breakdown.Testosterone.Note, "declining rapidly")
}

func TestCompute_Women(t *testing.T) {
	e := NewEngine(nil)

	pre := hormone.UserProfile{Age: 30, Gender: hormone.Female}
	res, err := e.Compute(series(10, 3*core.Week, constant(12, 50, 150)), pre)
	require.NoError(t, err)
	require.NotNil(t, res.Breakdown.Progesterone)
	assert.Equal(t, -0.5, res.Breakdown.Progesterone.Score)
	assert.Equal(t, 0.0, res.Breakdown.Testosterone.Score)

	post := hormone.UserProfile{Age: 60, Gender: hormone.Female, Postmenopausal: true}
	res, err = e.Compute(series(10, 3*core.Week, constant(12, 10, 30)), post)
	require.NoError(t, err)
	// 33% below the 15-40 range plus the postmenopausal low-T adjustment
	assert.Equal(t, 2.0, res.Breakdown.Testosterone.Score)
	assert.Equal(t, 0.5, res.Breakdown.Progesterone.Score)
	assert.Equal(t, "lower than expected", res.Breakdown.Progesterone.Note)
}

func TestCompute_Behavior(t *testing.T) {
	e := NewEngine(nil)

	res, err := e.Compute(series(24, 6*core.Week, constant(12, 700, 0)), male30)
	require.NoError(t, err)
	assert.Equal(t, -2.0, res.Breakdown.Behavior.Score)
	assert.Equal(t, "medium", res.Confidence.Level)

	// one single-hormone test among the newest ten removes the multi-hormone credit
	mixed := series(24, 6*core.Week, func(i int) (float64, float64, float64) {
		if i == 3 {
			return 12, 0, 0
		}
		return 12, 700, 0
	})
	res, err = e.Compute(mixed, male30)
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Breakdown.Behavior.Score)
}

func TestCompute_ContractViolations(t *testing.T) {
	e := NewEngine(nil)
	h := series(10, 3*core.Week, constant(12, 700, 0))

	_, err := e.Compute(h, hormone.UserProfile{Age: 30, Gender: "x"})
	assert.ErrorIs(t, err, core.ErrUnsupportedGender)

	_, err = e.Compute(h, hormone.UserProfile{Age: 101, Gender: hormone.Male})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	h[4].Testosterone = hormone.Float(-3)
	_, err = e.Compute(h, male30)
	assert.ErrorIs(t, err, core.ErrMalformedValue)
}

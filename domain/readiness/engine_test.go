package readiness

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

var male35 = hormone.UserProfile{Age: 35, Gender: hormone.Male}

type sample struct {
	ago          time.Duration
	cortisol     float64
	testosterone float64
	progesterone float64
	exercised    bool
}

func (s sample) measurement() hormone.Measurement {
	m := hormone.Measurement{
		ID:        core.NewMeasurementID(),
		Timestamp: now.Add(-s.ago),
		TimeOfDay: hormone.Morning,
		Exercised: s.exercised,
	}
	if s.cortisol > 0 {
		m.Cortisol = hormone.Float(s.cortisol)
	}
	if s.testosterone > 0 {
		m.Testosterone = hormone.Float(s.testosterone)
	}
	if s.progesterone > 0 {
		m.Progesterone = hormone.Float(s.progesterone)
	}
	return m
}

func history(samples ...sample) []hormone.Measurement {
	out := make([]hormone.Measurement, len(samples))
	for i, s := range samples {
		out[i] = s.measurement()
	}
	return out
}

func TestComputeReadyScore_WeightsAndRounding(t *testing.T) {
	e := NewEngine(nil)
	latest := sample{ago: time.Hour, cortisol: 13, testosterone: 950}.measurement()

	res, err := e.ComputeReadyScore(latest, []hormone.Measurement{latest}, male35, now)
	require.NoError(t, err)
	require.NotNil(t, res.Score)

	// 50 + 20*0.4 + 15*0.3 = 62.5, rounded half up
	assert.Equal(t, 63, *res.Score)
	assert.Equal(t, 20.0, res.Breakdown.Cortisol)
	assert.Equal(t, 15.0, res.Breakdown.Testosterone)
	assert.Equal(t, 10, res.Confidence)
	assert.Equal(t, 1, res.TestCount)
	assert.Equal(t, "Steady Pace", res.Message)
	assert.Equal(t, "#f59e0b", res.Color)
	assert.False(t, res.Stale)
}

func TestComputeReadyScore_Staleness(t *testing.T) {
	e := NewEngine(nil)

	fresh := sample{ago: MaxTestAge, cortisol: 13}.measurement()
	res, err := e.ComputeReadyScore(fresh, []hormone.Measurement{fresh}, male35, now)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	assert.NotNil(t, res.Score)

	old := sample{ago: MaxTestAge + time.Second, cortisol: 13}.measurement()
	res, err = e.ComputeReadyScore(old, []hormone.Measurement{old}, male35, now)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Nil(t, res.Score)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, StaleColor, res.Color)
	assert.Equal(t, "Test today for your ReadyScore", res.Message)

	report, err := e.Compute(old, []hormone.Measurement{old}, male35, now)
	require.NoError(t, err)
	assert.True(t, report.Physical.Stale)
	assert.Nil(t, report.Physical.Score)
	assert.True(t, report.Mental.Stale)
}

func TestComputeReadyScore_CortisolMonotonicAboveRange(t *testing.T) {
	e := NewEngine(nil)
	prev := math.MaxInt

	for _, c := range []float64{18.5, 20, 22, 25, 30, 40} {
		latest := sample{ago: time.Hour, cortisol: c}.measurement()
		res, err := e.ComputeReadyScore(latest, []hormone.Measurement{latest}, male35, now)
		require.NoError(t, err)
		assert.LessOrEqual(t, *res.Score, prev, "cortisol %v", c)
		prev = *res.Score
	}
}

func TestComputeReadyScore_StaysInBounds(t *testing.T) {
	e := NewEngine(nil)
	rng := rand.New(rand.NewSource(7))
	profiles := []hormone.UserProfile{
		male35,
		{Age: 70, Gender: hormone.Male},
		{Age: 28, Gender: hormone.Female},
		{Age: 62, Gender: hormone.Female, Postmenopausal: true},
	}

	for i := 0; i < 500; i++ {
		var samples []sample
		n := 1 + rng.Intn(6)
		for j := 0; j < n; j++ {
			samples = append(samples, sample{
				ago:          time.Duration(j) * 20 * time.Hour,
				cortisol:     2 + rng.Float64()*48,
				testosterone: 15 + rng.Float64()*1185,
				progesterone: 0.1 + rng.Float64()*400,
			})
		}
		h := history(samples...)
		p := profiles[i%len(profiles)]

		report, err := e.Compute(h[0], h, p, now)
		require.NoError(t, err)
		for _, s := range []*int{report.Ready.Score, report.Physical.Score, report.Mental.Score} {
			require.NotNil(t, s)
			assert.GreaterOrEqual(t, *s, 0)
			assert.LessOrEqual(t, *s, 100)
		}
		assert.LessOrEqual(t, report.Ready.Confidence, 100)
	}
}

func TestComputeReadyScore_Trend(t *testing.T) {
	e := NewEngine(nil)

	improving := history(
		sample{ago: time.Hour, cortisol: 15, testosterone: 600},
		sample{ago: 25 * time.Hour, cortisol: 22, testosterone: 550},
		sample{ago: 49 * time.Hour, cortisol: 25, testosterone: 500},
	)
	res, err := e.ComputeReadyScore(improving[0], improving, male35, now)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Breakdown.Trend)
	assert.Equal(t, 30, res.Confidence)

	declining := history(
		sample{ago: time.Hour, cortisol: 26, testosterone: 450},
		sample{ago: 25 * time.Hour, cortisol: 20, testosterone: 500},
		sample{ago: 49 * time.Hour, cortisol: 18, testosterone: 520},
	)
	res, err = e.ComputeReadyScore(declining[0], declining, male35, now)
	require.NoError(t, err)
	assert.Equal(t, -5.0, res.Breakdown.Trend)

	// input order does not matter, history is ordered by timestamp
	shuffled := []hormone.Measurement{declining[2], declining[0], declining[1]}
	res2, err := e.ComputeReadyScore(declining[0], shuffled, male35, now)
	require.NoError(t, err)
	assert.Equal(t, res.Score, res2.Score)
}

func TestComputeReadyScore_ProgesteroneOnlyForWomen(t *testing.T) {
	e := NewEngine(nil)
	latest := sample{ago: time.Hour, progesterone: 100}.measurement()

	res, err := e.ComputeReadyScore(latest, nil, hormone.UserProfile{Age: 30, Gender: hormone.Female}, now)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Breakdown.Progesterone)
	assert.Equal(t, 52, *res.Score)

	res, err = e.ComputeReadyScore(latest, nil, male35, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Breakdown.Progesterone)
	assert.Equal(t, 50, *res.Score)
	assert.Equal(t, 0, res.Confidence)
}

func TestComputeReadyScore_Advice(t *testing.T) {
	e := NewEngine(nil)

	latest := sample{ago: time.Hour, cortisol: 40}.measurement()
	res, err := e.ComputeReadyScore(latest, nil, male35, now)
	require.NoError(t, err)
	assert.Equal(t, 42, *res.Score)
	assert.Equal(t, "Recovery Mode", res.Message)
	assert.Contains(t, res.Advice, "cortisol is elevated")

	latest = sample{ago: time.Hour, testosterone: 200}.measurement()
	res, err = e.ComputeReadyScore(latest, nil, male35, now)
	require.NoError(t, err)
	assert.Contains(t, res.Advice, "Energy may be lower")
}

func TestComputeReadyScore_ContractViolations(t *testing.T) {
	e := NewEngine(nil)
	latest := sample{ago: time.Hour, cortisol: 13}.measurement()

	_, err := e.ComputeReadyScore(latest, nil, hormone.UserProfile{Age: 30, Gender: "unknown"}, now)
	assert.ErrorIs(t, err, core.ErrUnsupportedGender)

	_, err = e.ComputeReadyScore(latest, nil, hormone.UserProfile{Age: 12, Gender: hormone.Male}, now)
	assert.ErrorIs(t, err, core.ErrInvalidProfile)

	bad := latest
	bad.Cortisol = hormone.Float(math.NaN())
	_, err = e.ComputeReadyScore(bad, nil, male35, now)
	assert.ErrorIs(t, err, core.ErrMalformedValue)

	_, err = e.ComputeReadyScore(latest, []hormone.Measurement{{}}, male35, now)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestComputePhysical_TopTestosterone(t *testing.T) {
	e := NewEngine(nil)
	latest := sample{ago: time.Hour, testosterone: 950}.measurement()

	res, err := e.ComputePhysical(latest, []hormone.Measurement{latest}, male35, now)
	require.NoError(t, err)
	require.NotNil(t, res.Score)

	// 50 + 35 for top-tier testosterone, no cortisol reported
	assert.Equal(t, 85, *res.Score)
	assert.Equal(t, "Peak Strength", res.Title)
	require.Len(t, res.Factors, 2)
	assert.Contains(t, res.Factors[0], "top")
	assert.Equal(t, "T: 950 ng/dL (top 1%)", res.Factors[0])
	assert.Equal(t, "No cortisol data", res.Factors[1])
}

func TestComputePhysical_TrainingLoad(t *testing.T) {
	e := NewEngine(nil)

	heavy := history(
		sample{ago: time.Hour, cortisol: 14, exercised: true},
		sample{ago: 25 * time.Hour, cortisol: 14, exercised: true},
		sample{ago: 49 * time.Hour, cortisol: 14},
	)
	res, err := e.ComputePhysical(heavy[0], heavy, male35, now)
	require.NoError(t, err)
	// 50 + 15 (cortisol in exercise band) - 5 (training load)
	assert.Equal(t, 60, *res.Score)
	assert.Contains(t, res.Factors, "High recent training volume")

	rested := history(
		sample{ago: time.Hour, cortisol: 14},
		sample{ago: 25 * time.Hour, cortisol: 14},
		sample{ago: 49 * time.Hour, cortisol: 14},
	)
	res, err = e.ComputePhysical(rested[0], rested, male35, now)
	require.NoError(t, err)
	assert.Equal(t, 70, *res.Score)
	assert.Contains(t, res.Factors, "Well-rested muscles")
}

func TestComputeMental(t *testing.T) {
	e := NewEngine(nil)

	latest := sample{ago: time.Hour, cortisol: 13, testosterone: 700}.measurement()
	res, err := e.ComputeMental(latest, nil, male35, now)
	require.NoError(t, err)
	// 50 + 30 (centered cortisol) + 10 (testosterone at mid) + 7 (morning)
	assert.Equal(t, 97, *res.Score)
	assert.Equal(t, "Peak Focus", res.Title)

	night := latest
	night.TimeOfDay = hormone.Night
	res, err = e.ComputeMental(night, nil, male35, now)
	require.NoError(t, err)
	assert.Equal(t, 80, *res.Score)
	assert.Contains(t, res.Factors, "Night - low cognitive state")

	rising := history(
		sample{ago: time.Hour, cortisol: 24},
		sample{ago: 25 * time.Hour, cortisol: 20},
		sample{ago: 49 * time.Hour, cortisol: 19},
	)
	res, err = e.ComputeMental(rising[0], rising, male35, now)
	require.NoError(t, err)
	assert.Contains(t, res.Factors, "Stress increasing")
}

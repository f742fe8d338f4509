package readiness

import (
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/reference"
)

// Contribution weights of the overall ReadyScore
const (
	cortisolWeight     = 0.4
	testosteroneWeight = 0.3
	progesteroneWeight = 0.15

	baseline   = 50.0
	trendTests = 3
	fullTests  = 10
)

// Engine computes readiness scores against one reference dataset. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	ref *reference.Resolver
}

// NewEngine creates an engine. A nil resolver selects the default dataset.
func NewEngine(ref *reference.Resolver) *Engine {
	if ref == nil {
		ref = reference.MustResolver(nil)
	}
	return &Engine{ref: ref}
}

// input is the validated, recency-ordered view shared by the three computations
type input struct {
	latest  hormone.Measurement
	history []hormone.Measurement
	profile hormone.UserProfile
	stale   bool
}

func (e *Engine) prepare(latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (input, error) {
	if err := profile.Validate(); err != nil {
		return input{}, err
	}
	if err := latest.Validate(); err != nil {
		return input{}, err
	}
	if err := hormone.ValidateHistory(history); err != nil {
		return input{}, err
	}
	return input{
		latest:  latest,
		history: hormone.SortByRecency(history),
		profile: profile,
		stale:   now.Sub(latest.Timestamp) > MaxTestAge,
	}, nil
}

// recent returns the first n history entries, or nil when fewer exist
func (in input) recent(n int) []hormone.Measurement {
	if len(in.history) < n {
		return nil
	}
	return in.history[:n]
}

// ComputeReadyScore scores the latest test. history is the user's tests including
// latest; only its length and its three newest entries are used.
func (e *Engine) ComputeReadyScore(latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (ReadyScoreResult, error) {
	in, err := e.prepare(latest, history, profile, now)
	if err != nil {
		return ReadyScoreResult{}, err
	}
	return e.readyScore(in, now)
}

func (e *Engine) readyScore(in input, now time.Time) (ReadyScoreResult, error) {
	res := ReadyScoreResult{
		TestCount:  len(in.history),
		ComputedAt: now,
	}
	if in.stale {
		res.Stale = true
		res.Message = staleMessage
		res.Color = StaleColor
		res.Advice = noScoreAdvice
		return res, nil
	}

	score := baseline
	var b Breakdown

	if v, ok := in.latest.Value(hormone.Cortisol); ok {
		row, err := e.ref.Cortisol(in.profile)
		if err != nil {
			return ReadyScoreResult{}, err
		}
		b.Cortisol = cortisolReady(v, row.Range())
		score += b.Cortisol * cortisolWeight
	}
	if v, ok := in.latest.Value(hormone.Testosterone); ok {
		row, err := e.ref.Testosterone(in.profile)
		if err != nil {
			return ReadyScoreResult{}, err
		}
		b.Testosterone = testosteroneReady(v, row.Range(), in.profile.Gender)
		score += b.Testosterone * testosteroneWeight
	}
	if v, ok := in.latest.Value(hormone.Progesterone); ok && in.profile.Gender == hormone.Female {
		b.Progesterone = progesteroneReady(v)
		score += b.Progesterone * progesteroneWeight
	}
	if recent := in.recent(trendTests); recent != nil {
		b.Trend = trend(recent)
		score += b.Trend
	}

	final := core.ClampInt(core.RoundHalfUp(score), 0, 100)
	tier := tierFor(final, readyTiers)

	res.Score = &final
	res.Breakdown = b
	res.Confidence = min(100, core.RoundHalfUp(float64(len(in.history))/fullTests*100))
	res.Message = tier.title
	res.Color = tier.color
	res.Advice = advice(final, b)
	return res, nil
}

// ComputePhysical scores physical performance: testosterone for power, cortisol for
// recovery state and recent training load.
func (e *Engine) ComputePhysical(latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (CategoryScore, error) {
	in, err := e.prepare(latest, history, profile, now)
	if err != nil {
		return CategoryScore{}, err
	}
	return e.physical(in)
}

func (e *Engine) physical(in input) (CategoryScore, error) {
	var factors []contribution

	if v, ok := in.latest.Value(hormone.Testosterone); ok {
		row, err := e.ref.Testosterone(in.profile)
		if err != nil {
			return CategoryScore{}, err
		}
		factors = append(factors, testosteronePhysical(v, row.Range(), in.profile.Gender))
	} else {
		factors = append(factors, contribution{0, "No testosterone data"})
	}
	if v, ok := in.latest.Value(hormone.Cortisol); ok {
		factors = append(factors, cortisolPhysical(v))
	} else {
		factors = append(factors, contribution{0, "No cortisol data"})
	}
	if recent := in.recent(trendTests); recent != nil {
		factors = append(factors, trainingLoad(recent))
	}

	return category(Physical, in.stale, factors, physicalTiers), nil
}

// ComputeMental scores mental clarity: cortisol dominates, with testosterone, time of
// day and the short-term cortisol trend adjusting it.
func (e *Engine) ComputeMental(latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (CategoryScore, error) {
	in, err := e.prepare(latest, history, profile, now)
	if err != nil {
		return CategoryScore{}, err
	}
	return e.mental(in)
}

func (e *Engine) mental(in input) (CategoryScore, error) {
	var factors []contribution

	if v, ok := in.latest.Value(hormone.Cortisol); ok {
		row, err := e.ref.Cortisol(in.profile)
		if err != nil {
			return CategoryScore{}, err
		}
		factors = append(factors, cortisolMental(v, row.Range()))
	} else {
		factors = append(factors, contribution{0, "No cortisol data"})
	}
	if v, ok := in.latest.Value(hormone.Testosterone); ok {
		row, err := e.ref.Testosterone(in.profile)
		if err != nil {
			return CategoryScore{}, err
		}
		factors = append(factors, testosteroneMental(v, row.Range(), in.profile.Gender))
	}
	factors = append(factors, timeOfDayMental(in.latest.TimeOfDay))
	if recent := in.recent(trendTests); recent != nil {
		factors = append(factors, stressTrend(recent))
	}

	return category(Mental, in.stale, factors, mentalTiers), nil
}

// Compute runs all three scores over one validated input
func (e *Engine) Compute(latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (Report, error) {
	in, err := e.prepare(latest, history, profile, now)
	if err != nil {
		return Report{}, err
	}
	ready, err := e.readyScore(in, now)
	if err != nil {
		return Report{}, err
	}
	physical, err := e.physical(in)
	if err != nil {
		return Report{}, err
	}
	mental, err := e.mental(in)
	if err != nil {
		return Report{}, err
	}
	return Report{Ready: ready, Physical: physical, Mental: mental}, nil
}

func category(c Category, stale bool, factors []contribution, tiers []presentation) CategoryScore {
	res := CategoryScore{Category: c, Factors: []string{}}
	if stale {
		res.Stale = true
		res.Title = staleMessage
		res.Color = StaleColor
		return res
	}

	score := baseline
	for _, f := range factors {
		score += f.points
		if f.factor != "" {
			res.Factors = append(res.Factors, f.factor)
		}
	}
	final := core.ClampInt(core.RoundHalfUp(score), 0, 100)
	tier := tierFor(final, tiers)

	res.Score = &final
	res.Title = tier.title
	res.Color = tier.color
	res.Explanation = tier.explanation
	return res
}

package bioage

import (
	"fmt"
	"math"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/reference"
)

// Engine estimates biological age against one reference dataset
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

// Compute estimates the biological age from the full test history. Until the history
// reaches the minimum test count and span the result is locked.
func (e *Engine) Compute(history []hormone.Measurement, profile hormone.UserProfile) (Result, error) {
	if err := profile.Validate(); err != nil {
		return Result{}, err
	}
	if err := hormone.ValidateHistory(history); err != nil {
		return Result{}, err
	}

	history = hormone.SortByRecency(history)
	params := e.ref.Dataset().BioAge
	weeks := hormone.WeeksCovered(history)
	n := len(history)

	res := Result{
		ChronologicalAge: profile.Age,
		TestCount:        n,
		WeeksCovered:     core.RoundTo(weeks, 1),
	}

	unlock := params.Unlock()
	if n < unlock.MinTests || weeks < unlock.MinWeeks {
		res.Locked = true
		res.TestsNeeded = max(0, unlock.MinTests-n)
		res.WeeksNeeded = core.RoundTo(math.Max(0, unlock.MinWeeks-weeks), 1)
		if res.TestsNeeded > 0 {
			res.Message = fmt.Sprintf("%d more tests needed to unlock BioAge", res.TestsNeeded)
		} else {
			res.Message = fmt.Sprintf("Keep testing for %.1f more weeks to unlock BioAge", res.WeeksNeeded)
		}
		return res, nil
	}

	cortisolRow, err := e.ref.Cortisol(profile)
	if err != nil {
		return Result{}, err
	}
	testosteroneRow, err := e.ref.Testosterone(profile)
	if err != nil {
		return Result{}, err
	}
	progesteroneRow, err := e.ref.Progesterone(profile)
	if err != nil {
		return Result{}, err
	}

	w := params.Weights
	testosteroneWeight := w.TestosteroneFemale
	if profile.Gender == hormone.Male {
		testosteroneWeight = w.TestosteroneMale
	}

	b := &Breakdown{
		Cortisol:     cortisolScore(history, cortisolRow),
		Testosterone: testosteroneScore(history, testosteroneRow, profile),
		Progesterone: progesteroneScore(history, progesteroneRow, profile),
		Ratio:        ratioScore(history, profile.Gender),
		Behavior:     behaviorScore(history, weeks),
	}
	b.Cortisol.Weighted = b.Cortisol.Score * w.Cortisol
	b.Testosterone.Weighted = b.Testosterone.Score * testosteroneWeight
	b.Ratio.Weighted = b.Ratio.Score * w.Ratio
	b.Behavior.Weighted = b.Behavior.Score * w.Behavior

	total := b.Cortisol.Weighted + b.Testosterone.Weighted + b.Ratio.Weighted + b.Behavior.Weighted
	if b.Progesterone != nil {
		b.Progesterone.Weighted = b.Progesterone.Score * w.Progesterone
		total += b.Progesterone.Weighted
	}

	age := float64(profile.Age)
	raw := core.Clamp(age+total, age-float64(params.MaxYounger), age+float64(params.MaxOlder))
	bioAge := core.RoundHalfUp(raw)
	delta := profile.Age - bioAge

	conf := e.ref.Confidence(n, weeks)
	pct := e.ref.Percentile(float64(delta))

	res.BioAge = bioAge
	res.Delta = delta
	res.Breakdown = b
	res.TotalAdjustment = core.RoundTo(total, 1)
	res.Confidence = &Confidence{ConfidenceTier: conf, Message: conf.Message()}
	res.Percentile = &pct
	return res, nil
}

package bioage

import (
	"github.com/montanaflynn/stats"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/reference"
)

const (
	recentWindow     = 5
	consistencyTests = 10
	multiHormoneMin  = 20
	multiHormoneLast = 10
)

// recentMean averages the newest values of a recency-ordered series
func recentMean(values []float64) float64 {
	if len(values) > recentWindow {
		values = values[:recentWindow]
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func percentAbove(v, bound float64) float64 { return (v - bound) / bound * 100 }
func percentBelow(v, bound float64) float64 { return (bound - v) / bound * 100 }

func joinNote(note, extra string) string {
	if note == "" {
		return extra
	}
	return note + " • " + extra
}

func finish(score, lo, hi float64, note string) Score {
	if note == "" {
		note = "within range"
	}
	return Score{Score: core.Clamp(score, lo, hi), Note: note}
}

// cortisolScore ranges over [-1.5, 3.5] years
func cortisolScore(history []hormone.Measurement, row reference.Row) Score {
	values := hormone.Values(history, hormone.Cortisol)
	if len(values) == 0 {
		return Score{Note: "No cortisol data available"}
	}

	r := row.Range()
	avg := recentMean(values)
	var score float64
	var note string

	switch {
	case r.Contains(avg):
		note = "in optimal range"
	case avg > r.Max:
		above := percentAbove(avg, r.Max)
		switch {
		case above <= 30:
			score, note = 0.5, "slightly elevated"
		case above <= 50:
			score, note = 1.0, "moderately elevated"
		default:
			score, note = 2.0, "significantly elevated"
		}
	default:
		if percentBelow(avg, r.Min) >= 10 {
			score, note = 0.5, "below optimal (possible adrenal concern)"
		}
	}

	if len(values) >= consistencyTests {
		in := 0
		for _, v := range values {
			if r.Contains(v) {
				in++
			}
		}
		share := float64(in) / float64(len(values)) * 100
		switch {
		case share >= 80:
			score -= 1.0
			note = joinNote(note, "excellent consistency")
		case share < 40:
			score += 1.0
			note = joinNote(note, "poor consistency")
		}
	}

	return finish(score, -1.5, 3.5, note)
}

// testosteroneScore ranges over [-2, 3.5] years for men and [0, 2.5] for women
func testosteroneScore(history []hormone.Measurement, row reference.Row, p hormone.UserProfile) Score {
	values := hormone.Values(history, hormone.Testosterone)
	if len(values) == 0 {
		return Score{Note: "No testosterone data available"}
	}

	r := row.Range()
	avg := recentMean(values)
	var score float64
	var note string

	if p.Gender == hormone.Male {
		top30 := r.Min + r.Width()*0.7
		bottom30 := r.Min + r.Width()*0.3
		switch {
		case avg >= top30:
			score, note = -1.5, "top 30% for age (excellent)"
		case avg >= bottom30:
			note = "normal range for age"
		case avg >= row.LowThreshold:
			score, note = 1.0, "bottom 30% for age"
		default:
			score, note = 2.0, "below clinical threshold"
		}

		if len(values) >= consistencyTests {
			oldest, _ := stats.Mean(values[len(values)-recentWindow:])
			change := (avg - oldest) / oldest * 100
			switch {
			case change >= 0:
				score -= 0.5
				note = joinNote(note, "stable/improving")
			case change < -5:
				score += 1.5
				note = joinNote(note, "declining rapidly")
			case change < -2:
				score += 0.5
				note = joinNote(note, "declining moderately")
			}
		}
		return finish(score, -2.0, 3.5, note)
	}

	switch {
	case r.Contains(avg):
		note = "optimal for age"
	case avg < r.Min:
		below := percentBelow(avg, r.Min)
		switch {
		case below <= 20:
			score, note = 0.5, "up to 20% below optimal"
		case below <= 40:
			score, note = 1.0, "20-40% below optimal"
		default:
			score, note = 1.5, "significantly below optimal"
		}
	case avg > 70:
		score, note = 1.0, "unusually high (may indicate PCOS)"
	}
	if p.IsPostmenopausal() && avg < 15 {
		score += 1.0
		note = joinNote(note, "low for postmenopausal")
	}
	return finish(score, 0, 2.5, note)
}

// progesteroneScore ranges over [-0.5, 1.5] years and only applies to women
func progesteroneScore(history []hormone.Measurement, row reference.Row, p hormone.UserProfile) *Score {
	values := hormone.Values(history, hormone.Progesterone)
	if p.Gender != hormone.Female || len(values) == 0 {
		return nil
	}

	avg := recentMean(values)
	var score float64
	var note string

	if p.IsPostmenopausal() {
		switch {
		case avg >= row.Baseline-10 && avg <= row.Baseline+10:
			note = "normal for postmenopausal"
		case avg < 40:
			score, note = 0.5, "lower than expected"
		}
	} else {
		// no cycle tracking, so compare against the mid-luteal reference
		luteal := row.Luteal
		below := percentBelow(avg, luteal)
		switch {
		case avg >= luteal*0.7:
			note = "optimal for age"
			if p.Age >= 25 && p.Age <= 39 && avg > 130 {
				score, note = -0.5, "excellent (prime reproductive years)"
			}
		case below <= 30:
			score, note = 0.5, "10-30% below optimal"
		case below <= 60:
			score, note = 1.0, "30-60% below optimal"
		default:
			score, note = 1.5, "significantly below optimal"
		}
	}

	s := finish(score, -0.5, 1.5, note)
	return &s
}

// ratioScore ranges over [-0.5, 1.0] years. The ratio is cortisol (ng/mL) over
// testosterone (ng/dL) times 100, averaged over recent tests carrying both.
func ratioScore(history []hormone.Measurement, g hormone.Gender) Score {
	var both []hormone.Measurement
	for _, m := range history {
		if m.Has(hormone.Cortisol) && m.Has(hormone.Testosterone) {
			both = append(both, m)
		}
	}
	if len(both) == 0 {
		return Score{Note: "Insufficient data for ratio"}
	}

	c := recentMean(hormone.Values(both, hormone.Cortisol))
	t := recentMean(hormone.Values(both, hormone.Testosterone))
	ratio := c / t * 100

	cuts := [3]float64{2, 4, 6}
	notes := [4]string{"excellent stress/anabolic balance", "good balance", "suboptimal balance", "poor stress/anabolic balance"}
	if g == hormone.Female {
		cuts = [3]float64{30, 60, 100}
		notes = [4]string{"excellent balance", "good balance", "suboptimal balance", "high stress/low anabolic"}
	}

	points := [4]float64{-0.5, 0, 0.5, 1.0}
	band := len(cuts)
	for i, cut := range cuts {
		if ratio < cut {
			band = i
			break
		}
	}
	return finish(points[band], -0.5, 1.0, notes[band])
}

// behaviorScore ranges over [-2, 1] years and rewards consistent, multi-hormone testing
func behaviorScore(history []hormone.Measurement, weeks float64) Score {
	var score float64
	var note string

	if weeks > 0 && float64(len(history))/weeks >= 3 && weeks >= 4 {
		score -= 1.0
		note = "excellent testing consistency"
	}

	if len(history) >= multiHormoneMin {
		multi := true
		for _, m := range history[:multiHormoneLast] {
			if m.HormoneCount() < 2 {
				multi = false
				break
			}
		}
		if multi {
			score -= 1.0
			note = joinNote(note, "all hormones tracked")
		}
	}

	if note == "" {
		note = "standard"
	}
	return finish(score, -2.0, 1.0, note)
}

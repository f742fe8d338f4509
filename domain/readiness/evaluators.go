package readiness

import (
	"fmt"
	"math"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/reference"
)

// percentBeyond is how far v lies outside the bound, as a percentage of the bound
func percentBeyond(v, bound float64) float64 {
	return math.Abs(v-bound) / bound * 100
}

// centered scores a value inside r: full points at the midpoint, tapering toward
// the edges.
func centered(v float64, r reference.Range, full float64) float64 {
	deviation := math.Abs(v-r.Mid()) / r.Width()
	return full * (1 - deviation)
}

// ReadyScore evaluators

func cortisolReady(v float64, r reference.Range) float64 {
	switch {
	case r.Contains(v):
		return centered(v, r, 20)
	case v < r.Min:
		if percentBeyond(v, r.Min) > 30 {
			return -15
		}
		return -5
	default:
		above := percentBeyond(v, r.Max)
		switch {
		case above > 50:
			return -20
		case above > 30:
			return -15
		case above > 10:
			return -10
		}
		return -5
	}
}

func testosteroneReady(v float64, r reference.Range, g hormone.Gender) float64 {
	if g == hormone.Male {
		switch {
		case v >= r.Max*0.9:
			return 15
		case v >= r.Mid():
			return 10
		case v >= r.Min:
			return 5
		case v >= r.Min*0.7:
			return -5
		}
		return -15
	}
	switch {
	case r.Contains(v):
		return 10
	case v > r.Max:
		return -5
	}
	return -10
}

func progesteroneReady(v float64) float64 {
	switch {
	case v >= 80 && v <= 150:
		return 10
	case v >= 50 && v < 80:
		return 5
	case v > 150:
		return 0
	}
	return -5
}

// trend compares the newest and oldest of up to three recent tests. Falling cortisol
// from an elevated level and rising testosterone count as improvements.
func trend(recent []hormone.Measurement) float64 {
	improvements, declines := 0, 0

	if c := hormone.Values(recent, hormone.Cortisol); len(c) >= 2 {
		newest, oldest := c[0], c[len(c)-1]
		if oldest > 20 && newest < oldest {
			improvements++
		} else if newest > 20 && newest > oldest {
			declines++
		}
	}

	if t := hormone.Values(recent, hormone.Testosterone); len(t) >= 2 {
		newest, oldest := t[0], t[len(t)-1]
		change := (newest - oldest) / oldest * 100
		if change > 5 {
			improvements++
		} else if change < -5 {
			declines++
		}
	}

	switch {
	case improvements > declines:
		return 5
	case declines > improvements:
		return -5
	}
	return 0
}

// Physical evaluators

func testosteronePhysical(v float64, r reference.Range, g hormone.Gender) contribution {
	t := fmt.Sprintf("T: %.0f ng/dL", v)
	if g == hormone.Male {
		switch {
		case v >= r.Max*0.9:
			percentile := min(100, core.RoundHalfUp(v/r.Max*100))
			return contribution{35, fmt.Sprintf("%s (top %d%%)", t, max(1, 100-percentile))}
		case v >= r.Mid():
			return contribution{25, t + " (upper optimal)"}
		case v >= r.Min:
			return contribution{15, t + " (lower optimal)"}
		case v >= r.Min*0.7:
			return contribution{-10, t + " (below optimal)"}
		}
		return contribution{-20, t + " (significantly low)"}
	}
	switch {
	case r.Contains(v):
		return contribution{25, t + " (optimal)"}
	case v < r.Min:
		return contribution{-15, t + " (low)"}
	}
	return contribution{10, t + " (elevated)"}
}

// cortisolPhysical uses a fixed exercise band rather than the age bracket
func cortisolPhysical(v float64) contribution {
	c := fmt.Sprintf("Cortisol: %.1f ng/mL", v)
	switch {
	case v >= 10 && v <= 18:
		return contribution{15, c + " (optimal for exercise)"}
	case v > 18 && v <= 22:
		return contribution{5, c + " (slightly elevated)"}
	case v > 22:
		return contribution{-10, c + " (high - catabolic state)"}
	case v >= 7:
		return contribution{10, c + " (good energy)"}
	}
	return contribution{0, c + " (low energy)"}
}

func trainingLoad(recent []hormone.Measurement) contribution {
	workouts := 0
	for _, m := range recent {
		if m.Exercised {
			workouts++
		}
	}
	switch {
	case workouts == 0:
		return contribution{5, "Well-rested muscles"}
	case workouts >= 2:
		return contribution{-5, "High recent training volume"}
	}
	return contribution{}
}

// Mental evaluators

func cortisolMental(v float64, r reference.Range) contribution {
	c := fmt.Sprintf("Cortisol: %.1f ng/mL", v)
	switch {
	case r.Contains(v):
		return contribution{centered(v, r, 30), c + " (optimal focus)"}
	case v > r.Max:
		above := percentBeyond(v, r.Max)
		switch {
		case above > 40:
			return contribution{-25, c + " (very high - scattered thinking)"}
		case above > 20:
			return contribution{-15, c + " (elevated - reduced focus)"}
		}
		return contribution{-5, c + " (slightly high)"}
	}
	if percentBeyond(v, r.Min) > 30 {
		return contribution{-20, c + " (very low - brain fog)"}
	}
	return contribution{-10, c + " (low - sluggish)"}
}

func testosteroneMental(v float64, r reference.Range, g hormone.Gender) contribution {
	if g == hormone.Male {
		switch {
		case v >= r.Mid():
			return contribution{10, "T supports cognitive speed"}
		case v >= r.Min*0.8:
			return contribution{5, "T adequate for cognition"}
		}
		return contribution{-10, "T low - may affect processing"}
	}
	if r.Contains(v) {
		return contribution{10, "T optimal for cognition"}
	}
	return contribution{}
}

func timeOfDayMental(t hormone.TimeOfDay) contribution {
	switch t {
	case hormone.Morning:
		return contribution{7, "Morning - natural peak clarity"}
	case hormone.Afternoon:
		return contribution{3, "Afternoon - good focus window"}
	case hormone.Evening:
		return contribution{-5, "Evening - natural decline"}
	case hormone.Night:
		return contribution{-10, "Night - low cognitive state"}
	}
	return contribution{}
}

func stressTrend(recent []hormone.Measurement) contribution {
	c := hormone.Values(recent, hormone.Cortisol)
	if len(c) < 2 {
		return contribution{}
	}
	newest := c[0]
	delta := newest - c[len(c)-1]
	switch {
	case delta < -3 && newest < 18:
		return contribution{5, "Stress decreasing"}
	case delta > 3 && newest > 18:
		return contribution{-5, "Stress increasing"}
	}
	return contribution{}
}

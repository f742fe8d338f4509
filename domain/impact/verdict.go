package impact

import (
	"fmt"
	"math"

	"hormoiq/domain/hormone"
)

// Action is what the user should do with an intervention
type Action string

const (
	Keep             Action = "keep"
	Stop             Action = "stop"
	ConsiderStopping Action = "consider_stopping"
)

// Verdict is the recommendation attached to a sufficient analysis
type Verdict struct {
	Action  Action  `json:"action"`
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Color   string  `json:"color"`
	Savings float64 `json:"savings"`
}

// beneficial reports whether a change in h moves it the healthy way: lower cortisol,
// higher testosterone and progesterone.
func beneficial(h hormone.Hormone, percentChange float64) bool {
	if h == hormone.Cortisol {
		return percentChange < 0
	}
	return percentChange > 0
}

func verdictFor(h hormone.Hormone, percentChange float64, significant bool, monthlyCost float64) Verdict {
	annual := monthlyCost * 12
	if !significant {
		return Verdict{
			Action:  Stop,
			Title:   "NO EFFECT",
			Message: fmt.Sprintf("No measurable impact on %s. Save $%.0f/month.", h, monthlyCost),
			Color:   "#ef4444",
			Savings: annual,
		}
	}

	change := math.Abs(percentChange)
	good := beneficial(h, percentChange)
	switch {
	case good && change > 15:
		return Verdict{
			Action:  Keep,
			Title:   "STRONG POSITIVE",
			Message: fmt.Sprintf("%.0f%% improvement in %s. Keep taking!", change, h),
			Color:   "#22c55e",
		}
	case good && change > 5:
		return Verdict{
			Action:  Keep,
			Title:   "MODERATE POSITIVE",
			Message: fmt.Sprintf("%.0f%% improvement in %s. Beneficial.", change, h),
			Color:   "#22c55e",
		}
	case !good && change > 10:
		return Verdict{
			Action:  Stop,
			Title:   "NEGATIVE EFFECT",
			Message: fmt.Sprintf("%.0f%% worse %s. Stop immediately.", change, h),
			Color:   "#ef4444",
			Savings: annual,
		}
	}
	return Verdict{
		Action:  ConsiderStopping,
		Title:   "MARGINAL",
		Message: fmt.Sprintf("Minimal effect (%.0f%%). Consider stopping.", change),
		Color:   "#f59e0b",
		Savings: annual,
	}
}

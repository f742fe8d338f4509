package reference

import "math"

// DefaultVersion identifies the built-in dataset
const DefaultVersion = "research-2025.1"

// Default returns a fresh copy of the built-in research dataset. Callers may mutate the
// copy without affecting other callers.
func Default() *Dataset {
	return &Dataset{
		Version: DefaultVersion,
		// morning saliva cortisol, ng/mL
		Cortisol: GenderTables{
			Male: Table{
				{Label: "20-30", From: 0, Min: 8, Max: 20, Mean: 14},
				{Label: "31-40", From: 31, Min: 8, Max: 18, Mean: 13},
				{Label: "41-50", From: 41, Min: 8, Max: 16, Mean: 12},
				{Label: "51-60", From: 51, Min: 9, Max: 19, Mean: 14},
				{Label: "61-70", From: 61, Min: 10, Max: 22, Mean: 16},
				{Label: "71+", From: 71, Min: 11, Max: 25, Mean: 18},
			},
			Female: Table{
				{Label: "20-30", From: 0, Min: 7, Max: 18, Mean: 13},
				{Label: "31-40", From: 31, Min: 7, Max: 17, Mean: 12},
				{Label: "41-50", From: 41, Min: 7, Max: 15, Mean: 11},
				{Label: "51-60", From: 51, Min: 8, Max: 18, Mean: 13},
				{Label: "61-70", From: 61, Min: 9, Max: 21, Mean: 15},
				{Label: "71+", From: 71, Min: 10, Max: 24, Mean: 17},
			},
		},
		// ng/dL
		Testosterone: GenderTables{
			Male: Table{
				{Label: "18-25", From: 0, Min: 600, Max: 1000, Mean: 800, LowThreshold: 300},
				{Label: "26-35", From: 26, Min: 500, Max: 900, Mean: 700, LowThreshold: 300},
				{Label: "36-45", From: 36, Min: 400, Max: 800, Mean: 600, LowThreshold: 300},
				{Label: "46-55", From: 46, Min: 350, Max: 700, Mean: 500, LowThreshold: 300},
				{Label: "56-65", From: 56, Min: 300, Max: 600, Mean: 450, LowThreshold: 250},
				{Label: "66+", From: 66, Min: 250, Max: 550, Mean: 400, LowThreshold: 200},
			},
			Female: Table{
				{Label: "18-25", From: 0, Min: 40, Max: 70, Mean: 55, LowThreshold: 15},
				{Label: "26-35", From: 26, Min: 35, Max: 65, Mean: 50, LowThreshold: 15},
				{Label: "36-45", From: 36, Min: 30, Max: 60, Mean: 45, LowThreshold: 15},
				{Label: "46-55", From: 46, Min: 25, Max: 55, Mean: 40, LowThreshold: 10},
				{Label: "56+", From: 56, Min: 15, Max: 40, Mean: 25, LowThreshold: 7},
			},
		},
		// saliva, pg/mL
		Progesterone: ProgesteroneTables{
			Premenopausal: Table{
				{Label: "18-25", From: 0, Min: 45, Max: 115, Follicular: 45, Luteal: 115, Mean: 80},
				{Label: "26-35", From: 26, Min: 45, Max: 145, Follicular: 45, Luteal: 145, Mean: 95},
				{Label: "36-45", From: 36, Min: 40, Max: 115, Follicular: 40, Luteal: 115, Mean: 78},
				{Label: "46-50", From: 46, Min: 35, Max: 85, Follicular: 35, Luteal: 85, Mean: 60},
			},
			Postmenopausal: Table{
				{Label: "50+", From: 0, Min: 45, Max: 65, Baseline: 55, Mean: 55},
			},
			Male: Table{
				{Label: "all", From: 0, Min: 15, Max: 35, Baseline: 25, Mean: 25},
			},
		},
		BioAge: BioAgeParams{
			Weights: Weights{
				Cortisol:           1.5,
				TestosteroneMale:   1.2,
				TestosteroneFemale: 1.0,
				Progesterone:       1.0,
				Ratio:              1.0,
				Behavior:           1.0,
			},
			MaxYounger: 15,
			MaxOlder:   15,
			ConfidenceTiers: []ConfidenceTier{
				{Level: "high", MinTests: 40, MinWeeks: 8, Accuracy: 85, RangeYears: 2, Color: "#10b981"},
				{Level: "medium", MinTests: 20, MinWeeks: 4, Accuracy: 75, RangeYears: 3, Color: "#f59e0b"},
				{Level: "low", MinTests: 10, MinWeeks: 2, Accuracy: 60, RangeYears: 5, Color: "#ef4444"},
			},
			PercentileTiers: []PercentileTier{
				{MinDelta: 12, Percentile: 98, Rank: "top 2%", Message: "Elite optimizer", Tier: "elite"},
				{MinDelta: 8, Percentile: 90, Rank: "top 10%", Message: "Exceptional", Tier: "exceptional"},
				{MinDelta: 5, Percentile: 75, Rank: "top 25%", Message: "Above average", Tier: "above"},
				{MinDelta: 2, Percentile: 60, Rank: "top 50%", Message: "Doing well", Tier: "good"},
				{MinDelta: -2, Percentile: 50, Rank: "average", Message: "Normal range", Tier: "average"},
				{MinDelta: -5, Percentile: 40, Rank: "below average", Message: "Room for improvement", Tier: "below"},
				{MinDelta: -8, Percentile: 25, Rank: "bottom 25%", Message: "Needs attention", Tier: "concerning"},
				{MinDelta: math.Inf(-1), Percentile: 10, Rank: "bottom 10%", Message: "Urgent optimization needed", Tier: "urgent"},
			},
		},
	}
}

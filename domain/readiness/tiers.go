package readiness

// presentation is one row of a descending score tier table
type presentation struct {
	min         int
	title       string
	color       string
	explanation string
}

var readyTiers = []presentation{
	{90, "Peak Performance", "#3b82f6", "Everything is firing. Attack your goals today."},
	{70, "Strong Day", "#22c55e", "You're in the zone. Tackle important tasks now."},
	{50, "Steady Pace", "#f59e0b", "Good for routine work. Save heroics for tomorrow."},
	{0, "Recovery Mode", "#ef4444", "Your body needs recovery. Light workload recommended."},
}

var physicalTiers = []presentation{
	{85, "Peak Strength", "#22c55e", "Perfect conditions for strength training or intense workouts. Your hormones support peak performance."},
	{70, "Strong Performance", "#22c55e", "Good workout capacity. Ideal for moderate-heavy training sessions."},
	{55, "Moderate Capacity", "#f59e0b", "Moderate energy. Best for light-moderate exercise. Avoid maximal efforts."},
	{40, "Light Exercise Only", "#f59e0b", "Low physical capacity. Stick to walking, stretching, or yoga today."},
	{0, "Rest Day", "#ef4444", "Your body needs recovery. Rest is productive. Try again tomorrow."},
}

var mentalTiers = []presentation{
	{85, "Peak Focus", "#3b82f6", "Optimal conditions for complex thinking, decision-making, and deep work. Your best cognitive window."},
	{70, "Sharp Thinking", "#22c55e", "Good mental clarity. Tackle important tasks and complex problems now."},
	{55, "Decent Focus", "#f59e0b", "Moderate focus. Best for routine tasks. Delay major decisions if possible."},
	{40, "Mental Fog", "#f59e0b", "Mental clarity reduced. Stick to simple tasks. Avoid complex decisions."},
	{0, "Brain Fatigue", "#ef4444", "Significant brain fog. Rest your mind. Take breaks. Process simple items only."},
}

// tierFor scans a descending table and returns the first row the score reaches
func tierFor(score int, tiers []presentation) presentation {
	for _, t := range tiers {
		if score >= t.min {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

const (
	staleMessage  = "Test today for your ReadyScore"
	noScoreAdvice = "Log a hormone test to see your ReadyScore."
)

// advice picks the guidance line for a score. Low scores name the input that pulled
// the score down when one clearly did.
func advice(score int, b Breakdown) string {
	if score >= readyTiers[len(readyTiers)-2].min {
		return tierFor(score, readyTiers).explanation
	}
	switch {
	case b.Cortisol < -10:
		return "Your cortisol is elevated. Prioritize rest and stress management."
	case b.Testosterone < -10:
		return "Energy may be lower today. Focus on essentials only."
	default:
		return readyTiers[len(readyTiers)-1].explanation
	}
}

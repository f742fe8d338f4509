package core

import "math"

// RoundHalfUp rounds to the nearest integer with .5 going toward +Inf, so -2.5 rounds
// to -2 and 2.5 to 3. Scores and ages are reported with this rule.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTo rounds x to the given number of decimals, half up
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(x*p+0.5) / p
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// ClampInt bounds x to [lo, hi]
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

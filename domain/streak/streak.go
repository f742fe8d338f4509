// Package streak tracks how consistently a user tests. Consecutive tests no more
// than MaxGap apart extend the streak; a streak is broken once the newest test is
// older than MaxGap.
package streak

import (
	"fmt"
	"math"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// MaxGap is the longest allowed pause between consecutive tests
const MaxGap = 4 * core.Day

// Milestones are the streak lengths worth celebrating, ascending
var Milestones = []int{3, 7, 14, 30, 60, 90}

// Display is how a streak is presented
type Display struct {
	Message string `json:"message"`
	Color   string `json:"color"`
}

// Result is the current streak as of a given instant
type Result struct {
	Streak            int        `json:"streak"`
	LastTestDate      *time.Time `json:"last_test_date"`
	DaysSinceLastTest int        `json:"days_since_last_test"`
	Milestones        []int      `json:"milestones"`
	Percentile        int        `json:"percentile"`
	Display           Display    `json:"display"`
}

// Compute counts the current streak
func Compute(history []hormone.Measurement, now time.Time) (Result, error) {
	if err := hormone.ValidateHistory(history); err != nil {
		return Result{}, err
	}
	res := Result{Milestones: []int{}}
	if len(history) == 0 {
		res.Percentile = Percentile(0)
		res.Display = DisplayFor(0)
		return res, nil
	}

	sorted := hormone.SortByRecency(history)
	last := sorted[0].Timestamp
	since := now.Sub(last)
	res.LastTestDate = &last
	res.DaysSinceLastTest = int(math.Floor(float64(since) / float64(core.Day)))

	if since <= MaxGap {
		res.Streak = 1
		for i := 0; i < len(sorted)-1; i++ {
			if sorted[i].Timestamp.Sub(sorted[i+1].Timestamp) > MaxGap {
				break
			}
			res.Streak++
		}
		for _, m := range Milestones {
			if res.Streak >= m {
				res.Milestones = append(res.Milestones, m)
			}
		}
	}

	res.Percentile = Percentile(res.Streak)
	res.Display = DisplayFor(res.Streak)
	return res, nil
}

// DisplayFor picks the message and color for a streak length
func DisplayFor(streak int) Display {
	switch {
	case streak == 0:
		return Display{"Start your streak!", "#9ca3af"}
	case streak >= 90:
		return Display{fmt.Sprintf("%d-day legend!", streak), "#f59e0b"}
	case streak >= 60:
		return Display{fmt.Sprintf("%d-day diamond streak!", streak), "#8b5cf6"}
	case streak >= 30:
		return Display{fmt.Sprintf("%d-day superstar!", streak), "#10b981"}
	case streak >= 14:
		return Display{fmt.Sprintf("%d-day streak!", streak), "#ef4444"}
	case streak >= 7:
		return Display{fmt.Sprintf("%d-day streak!", streak), "#f97316"}
	case streak >= 3:
		return Display{fmt.Sprintf("%d-day streak!", streak), "#fbbf24"}
	case streak == 1:
		return Display{"1 day", "#60a5fa"}
	}
	return Display{fmt.Sprintf("%d days", streak), "#60a5fa"}
}

// Percentile approximates how a streak ranks among users
func Percentile(streak int) int {
	switch {
	case streak >= 90:
		return 98
	case streak >= 60:
		return 95
	case streak >= 30:
		return 85
	case streak >= 14:
		return 70
	case streak >= 7:
		return 50
	case streak >= 3:
		return 30
	}
	return 15
}

// MilestoneHit returns the first milestone crossed going from previous to current
func MilestoneHit(current, previous int) (int, bool) {
	for _, m := range Milestones {
		if current >= m && previous < m {
			return m, true
		}
	}
	return 0, false
}

// Celebration is shown when a milestone is first reached
type Celebration struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var celebrations = map[int]Celebration{
	3:  {"3-Day Streak!", "You're building a habit! Keep it up!"},
	7:  {"Week Warrior!", "One week of consistency! You're in the top 50% of users."},
	14: {"Two Week Champion!", "Your dedication is inspiring! Top 30% of users."},
	30: {"30-Day Legend!", "A full month! You're in the top 15% of users. Your hormones thank you!"},
	60: {"Diamond Status!", "60 days of excellence! Top 5% of users. You're a hormone optimization master!"},
	90: {"Hall of Fame!", "90 days! Top 2% of users. You've achieved legendary status!"},
}

// CelebrationFor returns the celebration for a milestone
func CelebrationFor(milestone int) Celebration {
	if c, ok := celebrations[milestone]; ok {
		return c
	}
	return Celebration{fmt.Sprintf("%d-Day Streak!", milestone), "Amazing consistency!"}
}

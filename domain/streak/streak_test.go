package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

var now = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

func at(daysAgo float64) hormone.Measurement {
	return hormone.Measurement{
		ID:        core.NewMeasurementID(),
		Timestamp: now.Add(-time.Duration(daysAgo * float64(core.Day))),
		Cortisol:  hormone.Float(12),
	}
}

func TestCompute_Empty(t *testing.T) {
	res, err := Compute(nil, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Streak)
	assert.Nil(t, res.LastTestDate)
	assert.Empty(t, res.Milestones)
	assert.Equal(t, "Start your streak!", res.Display.Message)
}

func TestCompute_CountsConsecutiveTests(t *testing.T) {
	// gaps of 2, 4, 4 and then 5 days: the last gap breaks the chain
	history := []hormone.Measurement{at(11), at(1), at(3), at(7), at(16)}

	res, err := Compute(history, now)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Streak)
	assert.Equal(t, []int{3}, res.Milestones)
	assert.Equal(t, 1, res.DaysSinceLastTest)
	assert.Equal(t, 30, res.Percentile)
	assert.Equal(t, "4-day streak!", res.Display.Message)
	require.NotNil(t, res.LastTestDate)
	assert.Equal(t, history[1].Timestamp, *res.LastTestDate)
}

func TestCompute_BrokenWhenLastTestTooOld(t *testing.T) {
	history := []hormone.Measurement{at(4.5), at(5), at(6)}

	res, err := Compute(history, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Streak)
	assert.Equal(t, 4, res.DaysSinceLastTest)
	assert.NotNil(t, res.LastTestDate)

	res, err = Compute([]hormone.Measurement{at(4)}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, "1 day", res.Display.Message)
}

func TestCompute_LongStreak(t *testing.T) {
	var history []hormone.Measurement
	for i := 0; i < 95; i++ {
		history = append(history, at(float64(i)))
	}

	res, err := Compute(history, now)
	require.NoError(t, err)
	assert.Equal(t, 95, res.Streak)
	assert.Equal(t, Milestones, res.Milestones)
	assert.Equal(t, 98, res.Percentile)
	assert.Equal(t, "95-day legend!", res.Display.Message)
}

func TestMilestoneHit(t *testing.T) {
	m, ok := MilestoneHit(7, 6)
	assert.True(t, ok)
	assert.Equal(t, 7, m)

	m, ok = MilestoneHit(15, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, m)

	_, ok = MilestoneHit(8, 7)
	assert.False(t, ok)
}

func TestCelebrationFor(t *testing.T) {
	assert.Equal(t, "Week Warrior!", CelebrationFor(7).Title)
	assert.Equal(t, "45-Day Streak!", CelebrationFor(45).Title)
}

func TestDisplayAndPercentileTiers(t *testing.T) {
	assert.Equal(t, "#60a5fa", DisplayFor(2).Color)
	assert.Equal(t, "2 days", DisplayFor(2).Message)
	assert.Equal(t, "#f97316", DisplayFor(7).Color)
	assert.Equal(t, "#ef4444", DisplayFor(14).Color)
	assert.Equal(t, "30-day superstar!", DisplayFor(30).Message)
	assert.Equal(t, "61-day diamond streak!", DisplayFor(61).Message)
	assert.Equal(t, 15, Percentile(2))
	assert.Equal(t, 85, Percentile(45))
}

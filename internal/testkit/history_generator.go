package testkit

import (
	"math"
	"math/rand"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// HormoneModel is the distribution one hormone is drawn from
type HormoneModel struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// HistoryGeneratorConfig configures the synthetic history generator
type HistoryGeneratorConfig struct {
	Tests         int            `json:"tests"`
	Start         time.Time      `json:"start"`
	Interval      time.Duration  `json:"interval"`
	Jitter        time.Duration  `json:"jitter"`
	Gender        hormone.Gender `json:"gender"`
	Cortisol      HormoneModel   `json:"cortisol"`
	Testosterone  HormoneModel   `json:"testosterone"`
	Progesterone  HormoneModel   `json:"progesterone"`
	Interventions []string       `json:"interventions"`
	UsageRate     float64        `json:"usage_rate"`
	// Effects shifts cortisol by a fraction on days an intervention is taken,
	// -0.2 meaning 20% lower
	Effects map[string]float64 `json:"effects"`
	Seed    int64              `json:"seed"`
}

// DefaultHistoryConfig returns a month of every-other-day morning tests for a
// 30 year old man
func DefaultHistoryConfig() HistoryGeneratorConfig {
	return HistoryGeneratorConfig{
		Tests:         15,
		Start:         time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC),
		Interval:      2 * core.Day,
		Jitter:        90 * time.Minute,
		Gender:        hormone.Male,
		Cortisol:      HormoneModel{Mean: 13, SD: 2.5},
		Testosterone:  HormoneModel{Mean: 650, SD: 60},
		Progesterone:  HormoneModel{Mean: 90, SD: 20},
		Interventions: []string{"Ashwagandha", "Vitamin D", "Light Exercise"},
		UsageRate:     0.5,
		Effects:       map[string]float64{"Ashwagandha": -0.2},
		Seed:          42,
	}
}

// HistoryGenerator produces deterministic measurement histories
type HistoryGenerator struct {
	config HistoryGeneratorConfig
	rng    *rand.Rand
}

// NewHistoryGenerator creates a new generator
func NewHistoryGenerator(config HistoryGeneratorConfig) *HistoryGenerator {
	if config.Interval <= 0 {
		config.Interval = core.Day
	}
	return &HistoryGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns the history oldest first. Every value lies inside the logging
// bounds so the history can be logged through the service unchanged.
func (g *HistoryGenerator) Generate(userID core.UserID) []hormone.Measurement {
	out := make([]hormone.Measurement, 0, g.config.Tests)
	for i := 0; i < g.config.Tests; i++ {
		ts := g.config.Start.Add(time.Duration(i) * g.config.Interval)
		if g.config.Jitter > 0 {
			ts = ts.Add(time.Duration(g.rng.Int63n(int64(g.config.Jitter))))
		}

		var taken []string
		for _, name := range g.config.Interventions {
			if g.rng.Float64() < g.config.UsageRate {
				taken = append(taken, name)
			}
		}

		cortisol := g.draw(g.config.Cortisol)
		for _, name := range taken {
			cortisol *= 1 + g.config.Effects[name]
		}

		m := hormone.Measurement{
			ID:            core.NewMeasurementID(),
			UserID:        userID,
			Timestamp:     ts,
			TimeOfDay:     hormone.TimeOfDayAt(ts.Hour()),
			Cortisol:      bounded(hormone.Cortisol, cortisol),
			Testosterone:  bounded(hormone.Testosterone, g.draw(g.config.Testosterone)),
			Interventions: taken,
		}
		if g.config.Gender == hormone.Female {
			m.Progesterone = bounded(hormone.Progesterone, g.draw(g.config.Progesterone))
		}
		out = append(out, m)
	}
	return out
}

func (g *HistoryGenerator) draw(model HormoneModel) float64 {
	return model.Mean + g.rng.NormFloat64()*model.SD
}

// bounded clamps v into the logging bounds and rounds it to display precision
func bounded(h hormone.Hormone, v float64) *float64 {
	b := hormone.LoggingBounds[h]
	scale := math.Pow(10, float64(b.Decimals))
	v = math.Round(core.Clamp(v, b.Min, b.Max)*scale) / scale
	return &v
}

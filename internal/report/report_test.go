package report

import (
	"strings"
	"testing"
	"time"

	"hormoiq/domain/bioage"
	"hormoiq/domain/hormone"
	"hormoiq/domain/impact"
	"hormoiq/domain/insight"
	"hormoiq/domain/readiness"
	"hormoiq/domain/streak"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestMarkdown_NoTests(t *testing.T) {
	md := string(Markdown(Summary{
		GeneratedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		Profile:     hormone.UserProfile{Age: 52, Gender: hormone.Female, Postmenopausal: true},
		BioAge:      bioage.Result{Locked: true, Message: "Log 10 more tests to unlock"},
		Streak:      streak.Result{Display: streak.Display{Message: "Start your streak!"}},
	}))

	assert.Contains(t, md, "52 year old female (postmenopausal)")
	assert.Contains(t, md, "No tests logged yet.")
	assert.Contains(t, md, "Locked. Log 10 more tests to unlock")
	assert.Contains(t, md, "No significant effects yet across 0 intervention and hormone pairs.")
	assert.NotContains(t, md, "## Patterns")
}

func TestMarkdown_FullSummary(t *testing.T) {
	md := string(Markdown(Summary{
		GeneratedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		Profile:     hormone.UserProfile{Age: 30, Gender: hormone.Male},
		Readiness: &readiness.Report{
			Ready:    readiness.ReadyScoreResult{Score: intPtr(82), Confidence: 100, TestCount: 15, Message: "Ready to go"},
			Physical: readiness.CategoryScore{Category: readiness.Physical, Score: intPtr(78), Title: "Strong"},
			Mental:   readiness.CategoryScore{Category: readiness.Mental, Stale: true},
		},
		BioAge: bioage.Result{BioAge: 27, ChronologicalAge: 30, Delta: -3},
		Streak: streak.Result{Streak: 15, Display: streak.Display{Message: "On fire"}},
		Impact: impact.Report{
			Stop: []impact.Analysis{{
				Intervention:  "Maca Root",
				Hormone:       hormone.Cortisol,
				PercentChange: 18.25,
				PValue:        0.01,
				Verdict:       &impact.Verdict{Title: "Stop"},
			}},
			PotentialSavings: 360,
			TotalAnalyzed:    6,
		},
		Patterns: []insight.Pattern{{Kind: insight.ConsistentTesting, Message: "You test consistently"}},
	}))

	assert.Contains(t, md, "**82** (Ready to go), confidence 100% from 15 tests.")
	assert.Contains(t, md, "- physical: **78** Strong")
	assert.Contains(t, md, "- mental: stale")
	assert.Contains(t, md, "**27** against a chronological age of 30 (-3 years).")
	assert.Contains(t, md, "| Stop | Maca Root | cortisol | +18.2% | 0.010 |")
	assert.Contains(t, md, "save about $360 a year")
	assert.Contains(t, md, "- You test consistently")
}

func TestHTML(t *testing.T) {
	out := string(HTML([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")))
	assert.True(t, strings.Contains(out, "<h1 id=\"title\">Title</h1>"), out)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestMarkdown_NoSignificantEffectsCountsEveryPair(t *testing.T) {
	md := string(Markdown(Summary{
		Impact: impact.Report{
			NotSignificant: 4,
			Insufficient:   []impact.Analysis{{Intervention: "Zinc", Insufficient: true}, {Intervention: "Sauna", Insufficient: true}},
		},
	}))

	assert.Contains(t, md, "No significant effects yet across 6 intervention and hormone pairs.")
}

func TestMarkdown_HostileInterventionNames(t *testing.T) {
	md := Markdown(Summary{
		Impact: impact.Report{
			Stop: []impact.Analysis{
				{Intervention: "<img src=x onerror=alert(1)>", Hormone: hormone.Cortisol, PercentChange: 20, PValue: 0.01, Verdict: &impact.Verdict{Title: "Stop"}},
				{Intervention: "Ashwa|gandha", Hormone: hormone.Cortisol, PercentChange: 15, PValue: 0.02, Verdict: &impact.Verdict{Title: "Stop"}},
			},
			TotalAnalyzed: 2,
		},
		Patterns: []insight.Pattern{{Kind: insight.ConsistentTesting, Message: "<script>x</script>"}},
	})

	assert.Contains(t, string(md), "| Stop | Ashwa&#124;gandha | cortisol | +15.0% | 0.020 |")

	out := string(HTML(md))
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "img src=x onerror=alert(1)")
	assert.Equal(t, 3, strings.Count(out, "<tr>"), out)
	for _, row := range strings.Split(out, "<tr>")[1:] {
		assert.Equal(t, 5, strings.Count(row, "<td>")+strings.Count(row, "<th>"), row)
	}
}

func TestHTML_DropsRawMarkup(t *testing.T) {
	out := string(HTML([]byte("Hello <b onclick=x>there</b>\n\n<div>block</div>\n")))
	assert.NotContains(t, out, "<b")
	assert.NotContains(t, out, "<div")
	assert.Contains(t, out, "Hello")
}

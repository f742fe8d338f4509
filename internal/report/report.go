// Package report renders a user's scores as a markdown summary, and as HTML for
// the browser.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"hormoiq/domain/bioage"
	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/impact"
	"hormoiq/domain/insight"
	"hormoiq/domain/readiness"
	"hormoiq/domain/streak"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Summary is everything one report shows. Readiness is nil when the user has no tests.
type Summary struct {
	UserID      core.UserID         `json:"user_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Profile     hormone.UserProfile `json:"profile"`
	Readiness   *readiness.Report   `json:"readiness,omitempty"`
	BioAge      bioage.Result       `json:"bioage"`
	Streak      streak.Result       `json:"streak"`
	Impact      impact.Report       `json:"impact"`
	Patterns    []insight.Pattern   `json:"patterns"`
}

// escaper neutralizes user supplied text, such as intervention names, so it can
// neither carry markup into the HTML rendering nor split a table cell
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "|", "&#124;")

func esc(s string) string { return escaper.Replace(s) }

// Markdown renders the summary
func Markdown(s Summary) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Hormone report\n\n")
	fmt.Fprintf(&b, "Generated %s for a %d year old %s", s.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), s.Profile.Age, s.Profile.Gender)
	if s.Profile.Postmenopausal {
		b.WriteString(" (postmenopausal)")
	}
	b.WriteString(".\n\n")

	writeReadiness(&b, s.Readiness)
	writeBioAge(&b, s.BioAge)
	writeStreak(&b, s.Streak)
	writeImpact(&b, s.Impact)

	if len(s.Patterns) > 0 {
		b.WriteString("## Patterns\n\n")
		for _, p := range s.Patterns {
			fmt.Fprintf(&b, "- %s\n", esc(p.Message))
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

func writeReadiness(b *bytes.Buffer, r *readiness.Report) {
	b.WriteString("## ReadyScore\n\n")
	if r == nil {
		b.WriteString("No tests logged yet.\n\n")
		return
	}
	if r.Ready.Score == nil {
		fmt.Fprintf(b, "**Unavailable.** %s\n\n", r.Ready.Message)
		return
	}
	fmt.Fprintf(b, "**%d** (%s), confidence %d%% from %d tests.\n\n", *r.Ready.Score, r.Ready.Message, r.Ready.Confidence, r.Ready.TestCount)
	if r.Ready.Advice != "" {
		fmt.Fprintf(b, "> %s\n\n", r.Ready.Advice)
	}
	for _, cat := range []readiness.CategoryScore{r.Physical, r.Mental} {
		if cat.Score == nil {
			fmt.Fprintf(b, "- %s: stale\n", cat.Category)
			continue
		}
		fmt.Fprintf(b, "- %s: **%d** %s\n", cat.Category, *cat.Score, cat.Title)
	}
	b.WriteString("\n")
}

func writeBioAge(b *bytes.Buffer, r bioage.Result) {
	b.WriteString("## BioAge\n\n")
	if r.Locked {
		fmt.Fprintf(b, "Locked. %s\n\n", r.Message)
		return
	}
	fmt.Fprintf(b, "**%d** against a chronological age of %d (%+d years).\n\n", r.BioAge, r.ChronologicalAge, r.Delta)
	if r.Percentile != nil {
		fmt.Fprintf(b, "%s\n\n", r.Percentile.Message)
	}
	if r.Confidence != nil {
		fmt.Fprintf(b, "Confidence: %s, %s\n\n", r.Confidence.Level, r.Confidence.Message)
	}
}

func writeStreak(b *bytes.Buffer, r streak.Result) {
	b.WriteString("## Streak\n\n")
	fmt.Fprintf(b, "%d tests in a row. %s\n\n", r.Streak, r.Display.Message)
}

func writeImpact(b *bytes.Buffer, r impact.Report) {
	b.WriteString("## Interventions\n\n")
	if len(r.Keep)+len(r.Stop) == 0 {
		analyzed := r.TotalAnalyzed + r.NotSignificant + len(r.Insufficient)
		fmt.Fprintf(b, "No significant effects yet across %d intervention and hormone pairs.\n\n", analyzed)
		return
	}
	b.WriteString("| Verdict | Intervention | Hormone | Change | p |\n")
	b.WriteString("|---|---|---|---|---|\n")
	rows := append(append([]impact.Analysis{}, r.Keep...), r.Stop...)
	for _, a := range rows {
		title := ""
		if a.Verdict != nil {
			title = a.Verdict.Title
		}
		fmt.Fprintf(b, "| %s | %s | %s | %+.1f%% | %.3f |\n", esc(title), esc(a.Intervention), a.Hormone, a.PercentChange, a.PValue)
	}
	b.WriteString("\n")
	if r.PotentialSavings > 0 {
		fmt.Fprintf(b, "Stopping what does not work would save about $%.0f a year.\n\n", r.PotentialSavings)
	}
}

// HTML converts rendered markdown to an HTML fragment. Raw HTML in the input is dropped.
func HTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML | html.Safelink})
	return markdown.Render(doc, renderer)
}

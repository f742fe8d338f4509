package app

import (
	"context"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/insight"
	"hormoiq/domain/streak"
	"hormoiq/internal/report"
)

// Summary computes every score for a user from one history read. Nothing is
// stored; the report is a read-only view.
func (s *ScoreService) Summary(ctx context.Context, userID core.UserID) (report.Summary, error) {
	history, profile, err := s.load(ctx, userID)
	if err != nil {
		return report.Summary{}, err
	}
	now := s.clock.Now()
	sum := report.Summary{UserID: userID, GeneratedAt: now, Profile: profile}

	if len(history) > 0 {
		sorted := hormone.SortByRecency(history)
		ready, err := s.readiness.Compute(sorted[0], sorted, profile, now)
		if err != nil {
			return report.Summary{}, err
		}
		sum.Readiness = &ready
	}

	if sum.BioAge, err = s.bioage.Compute(history, profile); err != nil {
		return report.Summary{}, err
	}
	if sum.Streak, err = streak.Compute(history, now); err != nil {
		return report.Summary{}, err
	}
	if sum.Impact, err = s.impact.AnalyzeAll(history, nil); err != nil {
		return report.Summary{}, err
	}

	ic, err := insight.Build(history, profile, now)
	if err != nil {
		return report.Summary{}, err
	}
	sum.Patterns = ic.Patterns
	return sum, nil
}

// Report renders the summary of a user as markdown
func (s *ScoreService) Report(ctx context.Context, userID core.UserID) ([]byte, error) {
	sum, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.Markdown(sum), nil
}

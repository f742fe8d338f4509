package app

import (
	"context"
	"fmt"
	"time"

	"hormoiq/domain/bioage"
	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/impact"
	"hormoiq/domain/insight"
	"hormoiq/domain/readiness"
	"hormoiq/domain/reference"
	"hormoiq/domain/streak"
	"hormoiq/internal"
	"hormoiq/internal/errors"
	"hormoiq/models"
	"hormoiq/ports"

	"golang.org/x/sync/errgroup"
)

// ScoreService wires the repositories to the scoring engines. It owns the clock:
// engines receive the current instant as an argument.
type ScoreService struct {
	measurements ports.MeasurementRepository
	profiles     ports.ProfileRepository
	scores       ports.ScoreRepository

	resolver    *reference.Resolver
	readiness   *readiness.Engine
	bioage      *bioage.Engine
	impact      *impact.Analyzer
	datasetHash core.DatasetHash

	clock  core.Clock
	logger *internal.Logger
}

// ScoreServiceDeps groups the collaborators of a ScoreService
type ScoreServiceDeps struct {
	Measurements ports.MeasurementRepository
	Profiles     ports.ProfileRepository
	Scores       ports.ScoreRepository
	Resolver     *reference.Resolver // nil selects the default dataset
	Catalog      *impact.Catalog     // nil selects the default catalog
	Clock        core.Clock          // nil selects the system clock
	Logger       *internal.Logger
}

// NewScoreService creates a score service
func NewScoreService(deps ScoreServiceDeps) (*ScoreService, error) {
	if deps.Measurements == nil || deps.Profiles == nil || deps.Scores == nil {
		return nil, errors.ConfigInvalid("score service requires measurement, profile and score repositories")
	}
	if deps.Resolver == nil {
		deps.Resolver = reference.MustResolver(nil)
	}
	if deps.Catalog == nil {
		deps.Catalog = impact.DefaultCatalog()
	}
	if deps.Clock == nil {
		deps.Clock = core.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}

	hash, err := deps.Resolver.Dataset().Hash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash reference dataset")
	}

	return &ScoreService{
		measurements: deps.Measurements,
		profiles:     deps.Profiles,
		scores:       deps.Scores,
		resolver:     deps.Resolver,
		readiness:    readiness.NewEngine(deps.Resolver),
		bioage:       bioage.NewEngine(deps.Resolver),
		impact:       impact.NewAnalyzer(deps.Catalog),
		datasetHash:  hash,
		clock:        deps.Clock,
		logger:       deps.Logger.With("score"),
	}, nil
}

// DatasetHash identifies the reference dataset the service scores against
func (s *ScoreService) DatasetHash() core.DatasetHash {
	return s.datasetHash
}

// Resolver returns the reference data the engines score against
func (s *ScoreService) Resolver() *reference.Resolver {
	return s.resolver
}

// Catalog returns the intervention catalog used for pricing and exercise detection
func (s *ScoreService) Catalog() *impact.Catalog {
	return s.impact.Catalog()
}

// load fetches history and profile concurrently
func (s *ScoreService) load(ctx context.Context, userID core.UserID) ([]hormone.Measurement, hormone.UserProfile, error) {
	var (
		history []hormone.Measurement
		profile hormone.UserProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.measurements.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.profiles.GetProfile(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, hormone.UserProfile{}, err
	}
	return history, profile, nil
}

func requireHistory(history []hormone.Measurement, userID core.UserID) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: user %s", core.ErrNoMeasurements, userID)
	}
	return nil
}

// GetProfile returns the stored profile of a user
func (s *ScoreService) GetProfile(ctx context.Context, userID core.UserID) (hormone.UserProfile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

// UpdateProfile validates and stores a profile
func (s *ScoreService) UpdateProfile(ctx context.Context, userID core.UserID, profile hormone.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := s.profiles.UpsertProfile(ctx, userID, profile); err != nil {
		return errors.Wrap(err, "failed to store profile")
	}
	s.logger.Debug("profile updated for %s", userID)
	return nil
}

// ListMeasurements returns the history of a user, newest first
func (s *ScoreService) ListMeasurements(ctx context.Context, userID core.UserID) ([]hormone.Measurement, error) {
	history, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return hormone.SortByRecency(history), nil
}

// DeleteMeasurement removes one of the user's tests
func (s *ScoreService) DeleteMeasurement(ctx context.Context, userID core.UserID, id core.MeasurementID) error {
	return s.measurements.Delete(ctx, userID, id)
}

// LogResult is returned after a test is logged
type LogResult struct {
	Measurement hormone.Measurement `json:"measurement"`
	Report      *readiness.Report   `json:"report,omitempty"`
	Streak      streak.Result       `json:"streak"`
	Celebration *streak.Celebration `json:"celebration,omitempty"`
}

// LogMeasurement validates a new test against the logging bounds, stores it and
// scores it. Scoring failures are logged and leave Report empty; the test itself
// stays stored.
func (s *ScoreService) LogMeasurement(ctx context.Context, userID core.UserID, m hormone.Measurement) (*LogResult, error) {
	now := s.clock.Now()
	m.UserID = userID
	if m.Timestamp.IsZero() {
		m.Timestamp = now
	}
	if m.TimeOfDay == "" {
		m.TimeOfDay = hormone.TimeOfDayAt(m.Timestamp.Hour())
	}
	m.Interventions = hormone.NormalizeInterventions(m.Interventions)
	if !m.Exercised {
		m.Exercised = s.impact.Catalog().AnyExercise(m.Interventions)
	}
	if err := m.ValidateForLogging(); err != nil {
		return nil, err
	}
	if m.Timestamp.After(now.Add(core.Day)) {
		return nil, core.NewValidationError("test_date", "cannot be in the future")
	}

	history, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	before, err := streak.Compute(history, now)
	if err != nil {
		return nil, err
	}

	saved, err := s.measurements.Create(ctx, m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store test")
	}
	s.logger.Info("test %s logged for %s (%d hormones)", saved.ID, userID, saved.HormoneCount())

	history = append(history, saved)
	after, err := streak.Compute(history, now)
	if err != nil {
		return nil, err
	}
	res := &LogResult{Measurement: saved, Streak: after}
	if milestone, ok := streak.MilestoneHit(after.Streak, before.Streak); ok {
		c := streak.CelebrationFor(milestone)
		res.Celebration = &c
	}

	if report, err := s.scoreReadiness(ctx, userID, saved, history, profile, now); err != nil {
		s.logger.Warn("readiness not computed for test %s: %v", saved.ID, err)
	} else {
		res.Report = &report
	}
	return res, nil
}

// Readiness scores the newest test of a user and stores the report
func (s *ScoreService) Readiness(ctx context.Context, userID core.UserID) (readiness.Report, error) {
	history, profile, err := s.load(ctx, userID)
	if err != nil {
		return readiness.Report{}, err
	}
	if err := requireHistory(history, userID); err != nil {
		return readiness.Report{}, err
	}
	history = hormone.SortByRecency(history)
	return s.scoreReadiness(ctx, userID, history[0], history, profile, s.clock.Now())
}

func (s *ScoreService) scoreReadiness(ctx context.Context, userID core.UserID, latest hormone.Measurement, history []hormone.Measurement, profile hormone.UserProfile, now time.Time) (readiness.Report, error) {
	report, err := s.readiness.Compute(latest, history, profile, now)
	if err != nil {
		return readiness.Report{}, err
	}

	rec, err := models.NewReadyScoreRecord(userID, report, hormone.Fingerprint(history))
	if err != nil {
		return report, err
	}
	if err := s.scores.SaveReadyScore(ctx, rec); err != nil {
		s.logger.Warn("ready score for %s not stored: %v", userID, err)
	}
	return report, nil
}

// BioAge estimates the biological age of a user. Unlocked estimates are stored
// together with the history and dataset fingerprints they were computed from.
func (s *ScoreService) BioAge(ctx context.Context, userID core.UserID) (bioage.Result, error) {
	history, profile, err := s.load(ctx, userID)
	if err != nil {
		return bioage.Result{}, err
	}

	res, err := s.bioage.Compute(history, profile)
	if err != nil {
		return bioage.Result{}, err
	}
	if res.Locked {
		s.logger.Debug("bioage locked for %s: %s", userID, res.Message)
		return res, nil
	}

	rec, err := models.NewBioAgeRecord(userID, res, hormone.Fingerprint(history), s.datasetHash, s.clock.Now())
	if err != nil {
		return res, err
	}
	if err := s.scores.SaveBioAge(ctx, rec); err != nil {
		s.logger.Warn("bioage for %s not stored: %v", userID, err)
	}
	return res, nil
}

// BioAgeHistory lists stored estimates, newest first
func (s *ScoreService) BioAgeHistory(ctx context.Context, userID core.UserID, limit int) ([]*models.BioAgeRecord, error) {
	return s.scores.BioAgeHistory(ctx, userID, limit)
}

// Impact analyzes one intervention against one hormone
func (s *ScoreService) Impact(ctx context.Context, userID core.UserID, intervention string, h hormone.Hormone) (impact.Analysis, error) {
	history, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return impact.Analysis{}, err
	}
	return s.impact.Analyze(history, intervention, h)
}

// ImpactReport analyzes every intervention the user has logged
func (s *ScoreService) ImpactReport(ctx context.Context, userID core.UserID, hormones []hormone.Hormone) (impact.Report, error) {
	history, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return impact.Report{}, err
	}
	return s.impact.AnalyzeAll(history, hormones)
}

// Streak returns the current testing streak
func (s *ScoreService) Streak(ctx context.Context, userID core.UserID) (streak.Result, error) {
	history, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return streak.Result{}, err
	}
	return streak.Compute(history, s.clock.Now())
}

// Insights builds the assistant context for a user
func (s *ScoreService) Insights(ctx context.Context, userID core.UserID) (insight.Context, error) {
	history, profile, err := s.load(ctx, userID)
	if err != nil {
		return insight.Context{}, err
	}
	return insight.Build(history, profile, s.clock.Now())
}

// ImportMeasurements stores a batch of tests for an existing profile. It stops at
// the first failure and reports how many were stored before it.
func (s *ScoreService) ImportMeasurements(ctx context.Context, userID core.UserID, ms []hormone.Measurement) (int, error) {
	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return 0, err
	}
	for i, m := range ms {
		m.UserID = userID
		if err := m.ValidateForLogging(); err != nil {
			return i, err
		}
		if _, err := s.measurements.Create(ctx, m); err != nil {
			return i, errors.Wrap(err, "failed to store imported test")
		}
	}
	s.logger.Info("imported %d tests for %s", len(ms), userID)
	return len(ms), nil
}

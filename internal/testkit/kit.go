package testkit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/models"
)

// TestKit bundles in-memory repositories and a fixed clock. It backs unit tests and
// the offline CLI, where nothing is persisted.
type TestKit struct {
	Profiles     *InMemoryProfileRepository
	Measurements *InMemoryMeasurementRepository
	Scores       *InMemoryScoreRepository
	Clock        core.FixedClock
}

// NewTestKit creates an empty kit frozen at now
func NewTestKit(now time.Time) *TestKit {
	profiles := NewInMemoryProfileRepository()
	return &TestKit{
		Profiles:     profiles,
		Measurements: NewInMemoryMeasurementRepository(profiles),
		Scores:       NewInMemoryScoreRepository(),
		Clock:        core.NewFixedClock(now),
	}
}

// Seed stores a profile and history for userID
func (k *TestKit) Seed(ctx context.Context, userID core.UserID, profile hormone.UserProfile, history []hormone.Measurement) error {
	if err := k.Profiles.UpsertProfile(ctx, userID, profile); err != nil {
		return err
	}
	for _, m := range history {
		m.UserID = userID
		if _, err := k.Measurements.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// InMemoryProfileRepository implements ProfileRepository with a map
type InMemoryProfileRepository struct {
	profiles map[core.UserID]hormone.UserProfile
	mu       sync.RWMutex
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{profiles: make(map[core.UserID]hormone.UserProfile)}
}

func (r *InMemoryProfileRepository) GetProfile(ctx context.Context, userID core.UserID) (hormone.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return hormone.UserProfile{}, fmt.Errorf("%w: %s", core.ErrProfileNotFound, userID)
	}
	return p, nil
}

func (r *InMemoryProfileRepository) UpsertProfile(ctx context.Context, userID core.UserID, profile hormone.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[userID] = profile
	return nil
}

func (r *InMemoryProfileRepository) exists(userID core.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[userID]
	return ok
}

// InMemoryMeasurementRepository implements MeasurementRepository with a map. Like
// the database it refuses tests for users without a profile.
type InMemoryMeasurementRepository struct {
	profiles     *InMemoryProfileRepository
	measurements map[core.MeasurementID]hormone.Measurement
	mu           sync.RWMutex
}

func NewInMemoryMeasurementRepository(profiles *InMemoryProfileRepository) *InMemoryMeasurementRepository {
	return &InMemoryMeasurementRepository{
		profiles:     profiles,
		measurements: make(map[core.MeasurementID]hormone.Measurement),
	}
}

func (r *InMemoryMeasurementRepository) Create(ctx context.Context, m hormone.Measurement) (hormone.Measurement, error) {
	if r.profiles != nil && !r.profiles.exists(m.UserID) {
		return hormone.Measurement{}, fmt.Errorf("%w: %s", core.ErrProfileNotFound, m.UserID)
	}
	if m.ID.IsEmpty() {
		m.ID = core.NewMeasurementID()
	}
	m.Interventions = hormone.NormalizeInterventions(m.Interventions)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.measurements[m.ID] = m
	return m, nil
}

func (r *InMemoryMeasurementRepository) Get(ctx context.Context, id core.MeasurementID) (hormone.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.measurements[id]
	if !ok {
		return hormone.Measurement{}, fmt.Errorf("%w: %s", core.ErrMeasurementNotFound, id)
	}
	return m, nil
}

func (r *InMemoryMeasurementRepository) ListByUser(ctx context.Context, userID core.UserID) ([]hormone.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []hormone.Measurement{}
	for _, m := range r.measurements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return hormone.SortByRecency(out), nil
}

func (r *InMemoryMeasurementRepository) Delete(ctx context.Context, userID core.UserID, id core.MeasurementID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.measurements[id]; !ok || m.UserID != userID {
		return fmt.Errorf("%w: %s", core.ErrMeasurementNotFound, id)
	}
	delete(r.measurements, id)
	return nil
}

func (r *InMemoryMeasurementRepository) CountByUser(ctx context.Context, userID core.UserID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.measurements {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}

// InMemoryScoreRepository implements ScoreRepository with slices
type InMemoryScoreRepository struct {
	readyScores []*models.ReadyScoreRecord
	bioAges     []*models.BioAgeRecord
	mu          sync.RWMutex
}

func NewInMemoryScoreRepository() *InMemoryScoreRepository {
	return &InMemoryScoreRepository{}
}

func (r *InMemoryScoreRepository) SaveReadyScore(ctx context.Context, rec *models.ReadyScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readyScores = append(r.readyScores, rec)
	return nil
}

func (r *InMemoryScoreRepository) LatestReadyScore(ctx context.Context, userID core.UserID) (*models.ReadyScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.ReadyScoreRecord
	for _, rec := range r.readyScores {
		if rec.UserID.String() == userID.String() && (latest == nil || !rec.ComputedAt.Before(latest.ComputedAt)) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: ready score for user %s", core.ErrRecordNotFound, userID)
	}
	return latest, nil
}

func (r *InMemoryScoreRepository) SaveBioAge(ctx context.Context, rec *models.BioAgeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bioAges = append(r.bioAges, rec)
	return nil
}

func (r *InMemoryScoreRepository) LatestBioAge(ctx context.Context, userID core.UserID) (*models.BioAgeRecord, error) {
	recs, _ := r.BioAgeHistory(ctx, userID, 1)
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: bioage for user %s", core.ErrRecordNotFound, userID)
	}
	return recs[0], nil
}

func (r *InMemoryScoreRepository) BioAgeHistory(ctx context.Context, userID core.UserID, limit int) ([]*models.BioAgeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.BioAgeRecord
	for _, rec := range r.bioAges {
		if rec.UserID.String() == userID.String() {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CalculatedAt.After(out[j].CalculatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

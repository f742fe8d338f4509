package postgres

import (
	"context"
	"fmt"

	"hormoiq/domain/core"
	"hormoiq/models"
	"hormoiq/ports"

	"github.com/jmoiron/sqlx"
)

// ScoreRepositoryImpl implements ScoreRepository for PostgreSQL
type ScoreRepositoryImpl struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new PostgreSQL score repository
func NewScoreRepository(db *sqlx.DB) ports.ScoreRepository {
	return &ScoreRepositoryImpl{db: db}
}

// SaveReadyScore stores a readiness report
func (r *ScoreRepositoryImpl) SaveReadyScore(ctx context.Context, rec *models.ReadyScoreRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO ready_scores (id, user_id, score, confidence, physical_score, mental_score,
			stale, breakdown, history_hash, computed_at)
		VALUES (:id, :user_id, :score, :confidence, :physical_score, :mental_score,
			:stale, :breakdown, :history_hash, :computed_at)
	`, rec)
	return translate(err, "insert ready score", nil)
}

// LatestReadyScore returns the most recent readiness report of a user
func (r *ScoreRepositoryImpl) LatestReadyScore(ctx context.Context, userID core.UserID) (*models.ReadyScoreRecord, error) {
	var rec models.ReadyScoreRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, user_id, score, confidence, physical_score, mental_score, stale, breakdown,
			history_hash, computed_at
		FROM ready_scores
		WHERE user_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`, userID.String())
	if err != nil {
		return nil, translate(err, "get latest ready score",
			fmt.Errorf("%w: ready score for user %s", core.ErrRecordNotFound, userID))
	}
	return &rec, nil
}

// SaveBioAge stores a bio-age estimate
func (r *ScoreRepositoryImpl) SaveBioAge(ctx context.Context, rec *models.BioAgeRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO bioage_calculations (id, user_id, bio_age, chronological_age, delta,
			confidence_level, percentile, breakdown, test_count, history_hash, dataset_hash, calculated_at)
		VALUES (:id, :user_id, :bio_age, :chronological_age, :delta,
			:confidence_level, :percentile, :breakdown, :test_count, :history_hash, :dataset_hash, :calculated_at)
	`, rec)
	return translate(err, "insert bioage calculation", nil)
}

const bioAgeColumns = `id, user_id, bio_age, chronological_age, delta, confidence_level, percentile,
	breakdown, test_count, history_hash, dataset_hash, calculated_at`

// LatestBioAge returns the most recent bio-age estimate of a user
func (r *ScoreRepositoryImpl) LatestBioAge(ctx context.Context, userID core.UserID) (*models.BioAgeRecord, error) {
	var rec models.BioAgeRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT `+bioAgeColumns+`
		FROM bioage_calculations
		WHERE user_id = $1
		ORDER BY calculated_at DESC
		LIMIT 1
	`, userID.String())
	if err != nil {
		return nil, translate(err, "get latest bioage",
			fmt.Errorf("%w: bioage for user %s", core.ErrRecordNotFound, userID))
	}
	return &rec, nil
}

// BioAgeHistory returns up to limit estimates, newest first
func (r *ScoreRepositoryImpl) BioAgeHistory(ctx context.Context, userID core.UserID, limit int) ([]*models.BioAgeRecord, error) {
	if limit <= 0 {
		limit = 30
	}
	var recs []*models.BioAgeRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT `+bioAgeColumns+`
		FROM bioage_calculations
		WHERE user_id = $1
		ORDER BY calculated_at DESC
		LIMIT $2
	`, userID.String(), limit)
	if err != nil {
		return nil, translate(err, "list bioage history", nil)
	}
	return recs, nil
}

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"hormoiq/domain/bioage"
	"hormoiq/domain/core"
	"hormoiq/domain/readiness"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// ReadyScoreRecord is a persisted readiness report
type ReadyScoreRecord struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	UserID        uuid.UUID      `json:"user_id" db:"user_id"`
	Score         *int           `json:"score" db:"score"`
	Confidence    int            `json:"confidence" db:"confidence"`
	PhysicalScore *int           `json:"physical_score" db:"physical_score"`
	MentalScore   *int           `json:"mental_score" db:"mental_score"`
	Stale         bool           `json:"stale" db:"stale"`
	Breakdown     types.JSONText `json:"breakdown" db:"breakdown"`
	HistoryHash   string         `json:"history_hash" db:"history_hash"`
	ComputedAt    time.Time      `json:"computed_at" db:"computed_at"`
}

// NewReadyScoreRecord captures a readiness report for storage
func NewReadyScoreRecord(userID core.UserID, report readiness.Report, history core.HistoryHash) (*ReadyScoreRecord, error) {
	uid, err := uuid.Parse(userID.String())
	if err != nil {
		return nil, core.NewValidationError("user_id", err.Error())
	}
	breakdown, err := json.Marshal(report.Ready.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to encode readiness breakdown: %w", err)
	}
	return &ReadyScoreRecord{
		ID:            uuid.MustParse(core.NewRecordID().String()),
		UserID:        uid,
		Score:         report.Ready.Score,
		Confidence:    report.Ready.Confidence,
		PhysicalScore: report.Physical.Score,
		MentalScore:   report.Mental.Score,
		Stale:         report.Ready.Stale,
		Breakdown:     types.JSONText(breakdown),
		HistoryHash:   history.String(),
		ComputedAt:    report.Ready.ComputedAt.UTC(),
	}, nil
}

// BioAgeRecord is a persisted, unlocked bio-age estimate
type BioAgeRecord struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	UserID           uuid.UUID      `json:"user_id" db:"user_id"`
	BioAge           int            `json:"bio_age" db:"bio_age"`
	ChronologicalAge int            `json:"chronological_age" db:"chronological_age"`
	Delta            int            `json:"delta" db:"delta"`
	ConfidenceLevel  string         `json:"confidence_level" db:"confidence_level"`
	Percentile       int            `json:"percentile" db:"percentile"`
	Breakdown        types.JSONText `json:"breakdown" db:"breakdown"`
	TestCount        int            `json:"test_count" db:"test_count"`
	HistoryHash      string         `json:"history_hash" db:"history_hash"`
	DatasetHash      string         `json:"dataset_hash" db:"dataset_hash"`
	CalculatedAt     time.Time      `json:"calculated_at" db:"calculated_at"`
}

// NewBioAgeRecord captures an unlocked estimate. Locked results are never stored.
func NewBioAgeRecord(userID core.UserID, res bioage.Result, history core.HistoryHash, dataset core.DatasetHash, at time.Time) (*BioAgeRecord, error) {
	if res.Locked || res.Breakdown == nil || res.Confidence == nil || res.Percentile == nil {
		return nil, core.NewValidationError("bioage", "locked results cannot be stored")
	}
	uid, err := uuid.Parse(userID.String())
	if err != nil {
		return nil, core.NewValidationError("user_id", err.Error())
	}
	breakdown, err := json.Marshal(res.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bioage breakdown: %w", err)
	}
	return &BioAgeRecord{
		ID:               uuid.MustParse(core.NewRecordID().String()),
		UserID:           uid,
		BioAge:           res.BioAge,
		ChronologicalAge: res.ChronologicalAge,
		Delta:            res.Delta,
		ConfidenceLevel:  res.Confidence.Level,
		Percentile:       res.Percentile.Percentile,
		Breakdown:        types.JSONText(breakdown),
		TestCount:        res.TestCount,
		HistoryHash:      history.String(),
		DatasetHash:      dataset.String(),
		CalculatedAt:     at.UTC(),
	}, nil
}

package ports

import (
	"context"

	"hormoiq/domain/core"
	"hormoiq/models"
)

// ScoreRepository defines the interface for computed score storage
type ScoreRepository interface {
	SaveReadyScore(ctx context.Context, rec *models.ReadyScoreRecord) error
	LatestReadyScore(ctx context.Context, userID core.UserID) (*models.ReadyScoreRecord, error)

	SaveBioAge(ctx context.Context, rec *models.BioAgeRecord) error
	LatestBioAge(ctx context.Context, userID core.UserID) (*models.BioAgeRecord, error)

	// BioAgeHistory returns up to limit records, newest first
	BioAgeHistory(ctx context.Context, userID core.UserID, limit int) ([]*models.BioAgeRecord, error)
}

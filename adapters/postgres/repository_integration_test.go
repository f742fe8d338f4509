//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/readiness"
	"hormoiq/internal/migration"
	"hormoiq/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and applies the schema
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("hormoiq"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(ctx, db))
	return db
}

func TestRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	profiles := NewProfileRepository(db)
	measurements := NewMeasurementRepository(db)
	scores := NewScoreRepository(db)

	userID := core.UserID("0190f7a4-2b7c-7d1e-9a3b-5c6d7e8f9a0b")

	_, err := profiles.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, core.ErrProfileNotFound)

	_, err = measurements.Create(ctx, hormone.Measurement{
		UserID: userID, Timestamp: time.Now(), TimeOfDay: hormone.Morning, Cortisol: hormone.Float(10),
	})
	assert.ErrorIs(t, err, core.ErrProfileNotFound, "foreign key violation maps to missing profile")

	require.NoError(t, profiles.UpsertProfile(ctx, userID, hormone.UserProfile{Age: 30, Gender: hormone.Male}))
	require.NoError(t, profiles.UpsertProfile(ctx, userID, hormone.UserProfile{Age: 31, Gender: hormone.Male}))
	p, err := profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 31, p.Age)

	base := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := measurements.Create(ctx, hormone.Measurement{
			UserID:        userID,
			Timestamp:     base.Add(time.Duration(i) * core.Day),
			TimeOfDay:     hormone.Morning,
			Cortisol:      hormone.Float(10 + float64(i)),
			Interventions: []string{"Vitamin D"},
		})
		require.NoError(t, err)
	}

	history, err := measurements.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].Timestamp.After(history[1].Timestamp), "newest first")
	assert.Equal(t, []string{"Vitamin D"}, history[0].Interventions)

	count, err := measurements.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.ErrorIs(t, measurements.Delete(ctx, core.UserID(core.NewID()), history[0].ID), core.ErrMeasurementNotFound)
	require.NoError(t, measurements.Delete(ctx, userID, history[0].ID))
	assert.ErrorIs(t, measurements.Delete(ctx, userID, history[0].ID), core.ErrMeasurementNotFound)

	score := 70
	rec, err := models.NewReadyScoreRecord(userID, readiness.Report{
		Ready: readiness.ReadyScoreResult{Score: &score, Confidence: 30, ComputedAt: time.Now()},
	}, hormone.Fingerprint(history))
	require.NoError(t, err)
	require.NoError(t, scores.SaveReadyScore(ctx, rec))

	latest, err := scores.LatestReadyScore(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, latest.Score)
	assert.Equal(t, 70, *latest.Score)
	assert.Nil(t, latest.MentalScore)

	_, err = scores.LatestBioAge(ctx, userID)
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
}

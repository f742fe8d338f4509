package migration

import (
	"context"

	"hormoiq/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// step is one idempotent schema change
type step struct {
	name string
	sql  string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	steps   []step
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		steps:   schema,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Steps lists the step names in execution order
func (r *MigrationRunner) Steps() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.name
	}
	return names
}

// Run executes all database migrations in the correct order. Every step is
// idempotent so Run is safe on an already migrated database.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, s := range r.steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return errors.Wrapf(errors.DatabaseError(s.name, err), "failed to %s", s.name)
		}
	}
	return nil
}

var schema = []step{
	{
		name: "create users table",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			age INTEGER NOT NULL CHECK (age BETWEEN 18 AND 100),
			gender VARCHAR(10) NOT NULL CHECK (gender IN ('male', 'female')),
			is_postmenopausal BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	},
	{
		name: "create hormone_tests table",
		sql: `
		CREATE TABLE IF NOT EXISTS hormone_tests (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			test_date TIMESTAMP WITH TIME ZONE NOT NULL,
			time_of_day VARCHAR(10) NOT NULL,
			cortisol DOUBLE PRECISION,
			testosterone DOUBLE PRECISION,
			progesterone DOUBLE PRECISION,
			supplements_taken TEXT[] NOT NULL DEFAULT '{}',
			exercise_today BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CHECK (cortisol IS NOT NULL OR testosterone IS NOT NULL OR progesterone IS NOT NULL)
		)`,
	},
	{
		name: "create ready_scores table",
		sql: `
		CREATE TABLE IF NOT EXISTS ready_scores (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			score INTEGER,
			confidence INTEGER NOT NULL,
			physical_score INTEGER,
			mental_score INTEGER,
			stale BOOLEAN NOT NULL DEFAULT false,
			breakdown JSONB NOT NULL,
			history_hash VARCHAR(64) NOT NULL,
			computed_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
	},
	{
		name: "create bioage_calculations table",
		sql: `
		CREATE TABLE IF NOT EXISTS bioage_calculations (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			bio_age INTEGER NOT NULL,
			chronological_age INTEGER NOT NULL,
			delta INTEGER NOT NULL,
			confidence_level VARCHAR(10) NOT NULL,
			percentile INTEGER NOT NULL,
			breakdown JSONB NOT NULL,
			test_count INTEGER NOT NULL,
			history_hash VARCHAR(64) NOT NULL,
			dataset_hash VARCHAR(64) NOT NULL,
			calculated_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
	},
	{
		name: "create indexes",
		sql: `
		CREATE INDEX IF NOT EXISTS idx_hormone_tests_user_date ON hormone_tests(user_id, test_date DESC);
		CREATE INDEX IF NOT EXISTS idx_ready_scores_user_computed ON ready_scores(user_id, computed_at DESC);
		CREATE INDEX IF NOT EXISTS idx_bioage_user_calculated ON bioage_calculations(user_id, calculated_at DESC)`,
	},
}

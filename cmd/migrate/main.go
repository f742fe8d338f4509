package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"hormoiq/adapters/excel"
	"hormoiq/adapters/postgres"
	"hormoiq/app"
	"hormoiq/domain/core"
	"hormoiq/domain/impact"
	"hormoiq/internal"
	"hormoiq/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) != 2 && len(os.Args) != 4 {
		log.Fatal("Usage: migrate <database_url> [<history.xlsx|history.csv> <user_id>]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema at version %s", runner.Version())

	if len(os.Args) == 4 {
		if err := backfill(ctx, db, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Backfill failed: %v", err)
		}
	}
}

// backfill loads a historical workbook for a user whose profile already exists
func backfill(ctx context.Context, db *sqlx.DB, file, rawUserID string) error {
	userID, err := core.ParseUserID(rawUserID)
	if err != nil {
		return err
	}

	logger := internal.NewDefaultLogger()
	catalog := impact.DefaultCatalog()
	svc, err := app.NewScoreService(app.ScoreServiceDeps{
		Measurements: postgres.NewMeasurementRepository(db),
		Profiles:     postgres.NewProfileRepository(db),
		Scores:       postgres.NewScoreRepository(db),
		Catalog:      catalog,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	cfg := excel.DefaultImportConfig()
	cfg.SkipInvalidRows = !strings.EqualFold(os.Getenv("IMPORT_STRICT"), "true")
	res, err := excel.NewImporter(cfg, catalog, logger).ImportFile(file, userID)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		log.Printf("Skipped row %d: %s", skipped.Row, skipped.Reason)
	}

	stored, err := svc.ImportMeasurements(ctx, userID, res.Measurements)
	if err != nil {
		return err
	}
	log.Printf("Backfill complete: %d stored, %d skipped from %s", stored, len(res.Skipped), filepath.Base(file))
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hormoiq/internal"
	"hormoiq/internal/config"
	"hormoiq/internal/container"
	"hormoiq/internal/errors"
	"hormoiq/internal/migration"
	"hormoiq/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and brings the schema up to date
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	if err := appContainer.ImportConfigured(ctx); err != nil {
		log.Fatalf("Failed to import %s: %v", appConfig.Import.File, err)
	}

	server := ui.NewServer(appContainer.ScoreService, appContainer.Importer, logger, appConfig.Server.GinMode)

	logger.Info("starting HormoIQ server on port %s (reference %s)", appConfig.Server.Port, appContainer.ScoreService.DatasetHash())
	if err := server.Start(ctx, ":"+appConfig.Server.Port, appConfig.Server.ShutdownTimeout); err != nil {
		logger.Error("server stopped: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}
	logger.Info("server stopped")
}

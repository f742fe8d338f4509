package container

import (
	"context"
	"fmt"

	"hormoiq/adapters/excel"
	"hormoiq/adapters/postgres"
	"hormoiq/app"
	"hormoiq/domain/core"
	"hormoiq/domain/impact"
	"hormoiq/domain/reference"
	"hormoiq/internal"
	"hormoiq/internal/config"
	"hormoiq/internal/errors"
	"hormoiq/internal/testkit"
	"hormoiq/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Reference data
	Resolver *reference.Resolver
	Catalog  *impact.Catalog

	// Repositories (data access layer)
	MeasurementRepo ports.MeasurementRepository
	ProfileRepo     ports.ProfileRepository
	ScoreRepo       ports.ScoreRepository

	// Services
	ScoreService *app.ScoreService
	Importer     *excel.Importer
}

// New creates a new dependency injection container and loads the reference dataset
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Catalog: impact.DefaultCatalog(),
	}

	if err := c.initReference(); err != nil {
		return nil, err
	}
	c.Importer = excel.NewImporter(excel.DefaultImportConfig(), c.Catalog, logger)
	return c, nil
}

func (c *Container) initReference() error {
	var ds *reference.Dataset
	if path := c.Config.Reference.DatasetPath; path != "" {
		loaded, err := reference.LoadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to load reference dataset %s", path)
		}
		ds = loaded
		c.Logger.Info("using reference dataset %s (version %s)", path, ds.Version)
	}

	resolver, err := reference.NewResolver(ds)
	if err != nil {
		return errors.Wrap(err, "invalid reference dataset")
	}
	c.Resolver = resolver
	return nil
}

// InitWithDatabase wires the PostgreSQL repositories and the score service
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.Ping(); err != nil {
		return errors.DatabaseError("database connection test failed", err)
	}

	c.MeasurementRepo = postgres.NewMeasurementRepository(db)
	c.ProfileRepo = postgres.NewProfileRepository(db)
	c.ScoreRepo = postgres.NewScoreRepository(db)

	if err := c.initService(core.SystemClock{}); err != nil {
		return err
	}
	c.Logger.Info("container initialized with database connection")
	return nil
}

// InitOffline wires in-memory repositories, for tools that never touch a database
func (c *Container) InitOffline(kit *testkit.TestKit) error {
	c.MeasurementRepo = kit.Measurements
	c.ProfileRepo = kit.Profiles
	c.ScoreRepo = kit.Scores
	return c.initService(kit.Clock)
}

func (c *Container) initService(clock core.Clock) error {
	svc, err := app.NewScoreService(app.ScoreServiceDeps{
		Measurements: c.MeasurementRepo,
		Profiles:     c.ProfileRepo,
		Scores:       c.ScoreRepo,
		Resolver:     c.Resolver,
		Catalog:      c.Catalog,
		Clock:        clock,
		Logger:       c.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create score service: %w", err)
	}
	c.ScoreService = svc
	return nil
}

// ImportConfigured imports the workbook named in the configuration, if any
func (c *Container) ImportConfigured(ctx context.Context) error {
	file := c.Config.Import.File
	if file == "" {
		return nil
	}
	userID, err := core.ParseUserID(c.Config.Import.UserID)
	if err != nil {
		return errors.Wrap(err, "IMPORT_USER_ID is invalid")
	}

	res, err := c.Importer.ImportFile(file, userID)
	if err != nil {
		return err
	}
	stored, err := c.ScoreService.ImportMeasurements(ctx, userID, res.Measurements)
	if err != nil {
		return errors.Wrapf(err, "stored %d of %d imported tests", stored, len(res.Measurements))
	}
	return nil
}

// Shutdown releases resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

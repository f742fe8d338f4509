package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hormoiq/internal/errors"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hormoiq?sslmode=disable")
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFERENCE_DATASET", "")
	t.Setenv("IMPORT_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hormoiq")

	t.Setenv("GIN_MODE", "loud")
	_, err := Load()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	t.Setenv("GIN_MODE", "release")

	t.Setenv("REFERENCE_DATASET", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
	t.Setenv("REFERENCE_DATASET", "")

	dir := t.TempDir()
	workbook := filepath.Join(dir, "history.csv")
	require.NoError(t, os.WriteFile(workbook, []byte("test_date\n"), 0o600))
	t.Setenv("IMPORT_FILE", workbook)
	t.Setenv("IMPORT_USER_ID", "")
	_, err = Load()
	assert.Error(t, err, "an import file needs a user id")

	t.Setenv("IMPORT_USER_ID", "0190f5c2-7d3e-7a4b-9c1d-2e3f4a5b6c7d")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, workbook, cfg.Import.File)
}

func TestLoadOffline(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REFERENCE_DATASET", "")
	t.Setenv("IMPORT_FILE", "")

	cfg, err := LoadOffline()
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load is a process-wide singleton, so one test drives both the env
// overrides and the defaults.
func TestLoad(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "ledger")
	t.Setenv("APP_DATA_DIR", dataDir)
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("DB_NAME", "flipledger_test")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("DRIVE_FOLDER_PATH", "backups/ledger-test")

	cfg := Load()
	require.NotNil(t, cfg)

	// Environment overrides.
	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, "flipledger_test", cfg.Database.DBName)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "backups/ledger-test", cfg.Drive.FolderPath)
	assert.Equal(t, dataDir, cfg.App.DataDir)

	// Defaults fill the rest.
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30, cfg.App.StaleThresholdDays)
	assert.InDelta(t, 0.67, cfg.App.DefaultMileageRate, 1e-9)
	assert.Equal(t, "flipledger-exports", cfg.Storage.Bucket)
	assert.Equal(t, 60, cfg.Cache.SnapshotTTLSeconds)
	assert.Equal(t, 60, cfg.Drive.SyncInterval)

	// The data directory is created on load.
	assert.DirExists(t, dataDir)

	// Subsequent loads return the same instance.
	assert.Same(t, cfg, Load())
}

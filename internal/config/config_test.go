package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url": "https://api.example.test", "limit": 20, "team_id": "team_1"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", cfg.APIURL)
	assert.Equal(t, 20, cfg.Limit)
	assert.Equal(t, "team_1", cfg.TeamID)
	assert.Equal(t, DefaultSnapshotPath, cfg.SnapshotPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZENFOLIO_LIMIT", "5")
	t.Setenv("ZENFOLIO_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Limit)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"limit": 500}`), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "limit must be between 1 and 100")

	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.APIURL = "api.vercel.com"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TimeoutSeconds = -1
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.TeamID = "team_2"
	cfg.Limit = 42

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFileIgnoresEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"limit": 20}`), 0644))
	t.Setenv("ZENFOLIO_LIMIT", "5")
	t.Setenv("ZENFOLIO_TEAM_ID", "team_env")

	withEnv, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, withEnv.Limit)

	fileOnly, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, fileOnly.Limit)
	assert.Empty(t, fileOnly.TeamID)
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg.TeamID = "team_3"
	require.NoError(t, SaveGlobalConfig(cfg))
	assert.FileExists(t, filepath.Join(home, DirName, FileName))

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, "team_3", loaded.TeamID)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, filepath.Join("data", "pdfs"), cfg.Data.PDFDir)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, filepath.Join("data", "shorttrack.db"), cfg.DB.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Data.Dir, cfg.Data.Dir)
}

func TestLoadOverridesFromFile(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))

	content := `
data:
  dir: /var/shorttrack
fetch:
  timeout_seconds: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)

	assert.Equal(t, "/var/shorttrack", cfg.Data.Dir)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout())
	// untouched sections keep their defaults
	assert.Equal(t, Default().DB.Path, cfg.DB.Path)
}

func TestLoadInvalidYAML(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("data: ["), 0644))

	_, err := Load(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHORTTRACK_DATA_DIR", "/tmp/st-data")
	t.Setenv("SHORTTRACK_DB_PATH", "/tmp/st.db")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/st-data", cfg.Data.Dir)
	assert.Equal(t, "/tmp/st.db", cfg.DB.Path)
}

func TestFetchTimeoutFallback(t *testing.T) {
	f := FetchConfig{TimeoutSeconds: 0}
	assert.Equal(t, 30*time.Second, f.Timeout())
}

func TestDataFilePaths(t *testing.T) {
	cfg := &Config{Data: DataConfig{Dir: "out"}}

	assert.Equal(t, filepath.Join("out", "raw_results.json"), cfg.RawResultsPath())
	assert.Equal(t, filepath.Join("out", "results.json"), cfg.ResultsPath())
	assert.Equal(t, filepath.Join("out", "skaters.json"), cfg.SkatersPath())
	assert.Equal(t, filepath.Join("out", "skaters_indexed.json"), cfg.IndexedSkatersPath())
	assert.Equal(t, filepath.Join("out", "trends.json"), cfg.TrendsPath())
	assert.Equal(t, filepath.Join("out", "catalog.json"), cfg.CatalogPath())
}

func TestWriteDefault(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, WriteDefault(base))
	assert.True(t, Exists(base))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, Default().Data.Dir, cfg.Data.Dir)

	// a second init must not clobber an existing config
	err = WriteDefault(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for shorttrack configuration.
	DefaultConfigDir = ".shorttrack"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Config holds static pipeline configuration (read-only after init).
type Config struct {
	Data  DataConfig  `yaml:"data,omitempty"`
	Fetch FetchConfig `yaml:"fetch,omitempty"`
	DB    DBConfig    `yaml:"db,omitempty"`
}

// DataConfig holds the on-disk layout of the pipeline's working files.
type DataConfig struct {
	// Dir is the root for every generated data file.
	Dir string `yaml:"dir,omitempty"`
	// PDFDir is where fetched result PDFs land.
	PDFDir string `yaml:"pdf_dir,omitempty"`
}

// FetchConfig holds configuration for the results-site scraper.
type FetchConfig struct {
	ListURL        string `yaml:"list_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the scraper HTTP timeout. A zero or negative value from a
// partial config file falls back to 30 seconds.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// DBConfig holds configuration for the SQLite results database.
type DBConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:    "data",
			PDFDir: filepath.Join("data", "pdfs"),
		},
		Fetch: FetchConfig{
			ListURL:        "https://www.usspeedskating.org/events/results",
			TimeoutSeconds: 30,
		},
		DB: DBConfig{
			Path: filepath.Join("data", "shorttrack.db"),
		},
	}
}

// Load loads configuration from the .shorttrack directory in the given path.
// A missing config file is not an error; the defaults stand.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("SHORTTRACK_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if dir := os.Getenv("SHORTTRACK_PDF_DIR"); dir != "" {
		c.Data.PDFDir = dir
	}
	if url := os.Getenv("SHORTTRACK_RESULTS_URL"); url != "" {
		c.Fetch.ListURL = url
	}
	if path := os.Getenv("SHORTTRACK_DB_PATH"); path != "" {
		c.DB.Path = path
	}
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a shorttrack config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// RawResultsPath is the output of the PDF parsing stage.
func (c *Config) RawResultsPath() string {
	return filepath.Join(c.Data.Dir, "raw_results.json")
}

// ResultsPath is the integrated, cleaned results file.
func (c *Config) ResultsPath() string {
	return filepath.Join(c.Data.Dir, "results.json")
}

// SkatersPath is the per-skater profile file.
func (c *Config) SkatersPath() string {
	return filepath.Join(c.Data.Dir, "skaters.json")
}

// IndexedSkatersPath is the roster with stable numeric IDs.
func (c *Config) IndexedSkatersPath() string {
	return filepath.Join(c.Data.Dir, "skaters_indexed.json")
}

// TrendsPath is the per-skater time-history file.
func (c *Config) TrendsPath() string {
	return filepath.Join(c.Data.Dir, "trends.json")
}

// CatalogPath is the scraped PDF catalog.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Data.Dir, "catalog.json")
}

// Package datafiles defines the canonical JSON file envelopes exchanged
// between pipeline stages. Field names are stable: downstream consumers
// read these files directly.
package datafiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

// DefaultSource labels records originating from the PDF archives.
const DefaultSource = "US Speed Skating PDF archives"

// ResultsFile is the canonical cleaned results file.
type ResultsFile struct {
	Source       string            `json:"source"`
	Generated    string            `json:"generated"`
	TotalResults int               `json:"total_results"`
	Seasons      []string          `json:"seasons"`
	Results      []entities.Result `json:"results"`
	QualityFixes *QualityFixRecord `json:"data_quality_fixes,omitempty"`
}

// QualityFixRecord documents the repair pass applied to a results file.
type QualityFixRecord struct {
	FixDate           string  `json:"fix_date"`
	TrailingDashFixed int     `json:"trailing_dash_fixed"`
	DistanceFixed     int     `json:"distance_fixed"`
	CategoryFixed     int     `json:"category_fixed"`
	DatesInferred     int     `json:"dates_inferred"`
	QualityScore      float64 `json:"quality_score"`
}

// SkatersFile maps canonical skater names to profiles.
type SkatersFile struct {
	Source       string                     `json:"source"`
	Generated    string                     `json:"generated"`
	TotalSkaters int                        `json:"total_skaters"`
	Skaters      map[string]entities.Skater `json:"skaters"`
}

// IndexedSkatersFile is the list-of-profiles variant carrying integer IDs,
// used as the identity side of trend matching.
type IndexedSkatersFile struct {
	Skaters []entities.IndexedSkater `json:"skaters"`
}

// RawResultsFile is the output of the PDF batch parser, pre-integration.
type RawResultsFile struct {
	Source            string                        `json:"source"`
	ScrapedAt         string                        `json:"scraped_at"`
	Seasons           []string                      `json:"seasons"`
	TotalResults      int                           `json:"total_results"`
	TotalCompetitions int                           `json:"total_competitions"`
	Competitions      []entities.CompetitionSummary `json:"competitions"`
	Results           []entities.RawResult          `json:"results"`
}

// TrendsFile maps skater ID and distance to a dated time history. Keys are
// strings because JSON objects require it; values keep insertion order
// within each distance list.
type TrendsFile struct {
	Generated    string                                      `json:"generated"`
	TotalSkaters int                                         `json:"total_skaters"`
	TotalEntries int                                         `json:"total_entries"`
	Trends       map[string]map[string][]entities.TrendEntry `json:"trends"`
}

// Load reads and decodes a JSON file into out.
func Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Save writes v to path as indented JSON, creating parent directories.
func Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

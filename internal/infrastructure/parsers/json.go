package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

// CompetitionsParser reads the nested catalog format:
// {"competitions": [{"name", "season", "date", "races": [...]}]}.
type CompetitionsParser struct{}

// Parse decodes the document and returns its competitions.
func (p *CompetitionsParser) Parse(r io.Reader) ([]entities.Competition, error) {
	var doc struct {
		Competitions []entities.Competition `json:"competitions"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing competitions JSON: %w", err)
	}
	return doc.Competitions, nil
}

// ResultsParser reads the flat format emitted by the PDF batch parser:
// {"results": [{"rank", "skater", "time", "distance", ...}]}.
type ResultsParser struct{}

// Parse decodes the document and returns its result rows.
func (p *ResultsParser) Parse(r io.Reader) ([]entities.RawResult, error) {
	var doc struct {
		Results []entities.RawResult `json:"results"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing results JSON: %w", err)
	}
	return doc.Results, nil
}

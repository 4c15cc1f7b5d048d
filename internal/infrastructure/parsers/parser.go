// Package parsers turns raw source material (extracted PDF text, JSON result
// feeds) into domain records before cleaning and integration.
package parsers

import (
	"io"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

// CompetitionSource parses a document whose top-level key is "competitions":
// the nested catalog format with per-race result lists.
type CompetitionSource interface {
	Parse(r io.Reader) ([]entities.Competition, error)
}

// ResultSource parses a document whose top-level key is "results": the flat
// per-row format emitted by the PDF batch parser.
type ResultSource interface {
	Parse(r io.Reader) ([]entities.RawResult, error)
}

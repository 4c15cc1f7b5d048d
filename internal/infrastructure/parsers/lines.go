package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

// Distances that appear as section markers in US short track result sheets.
// Anything else matching "<digits>m" on a line is a bib number, a point
// total or a misprint, never a section header.
var markerDistances = map[int]bool{
	222: true, 333: true, 500: true, 777: true,
	1000: true, 1500: true, 3000: true,
}

var (
	reDistanceMarker = regexp.MustCompile(`(\d{3,4})\s*[mM]`)
	reResultRow      = regexp.MustCompile(`^(\d{1,3})\.?\s+(.+)`)
	reTrailingTime   = regexp.MustCompile(`(\d{1,2}:\d{2}\.\d{2,3}|\d{1,2}\.\d{2,3})\s*$`)
	reStartsDigit    = regexp.MustCompile(`^\d`)
	reAllDigits      = regexp.MustCompile(`^\d+$`)
)

// Category header patterns, evaluated in order, first match wins. The
// captured group is uppercased as the category.
var categoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(JUNIOR\s+[A-G])\b`),
	regexp.MustCompile(`(?i)(SENIOR\s+(?:MEN|WOMEN))`),
	regexp.MustCompile(`(?i)(MASTERS?\s+(?:MEN|WOMEN)\s*\d*)`),
	regexp.MustCompile(`(?i)(DIVISION\s+\d+)`),
	regexp.MustCompile(`(?i)(NOVICE\s+[AB])\b`),
	regexp.MustCompile(`(?i)((?:MEN|WOMEN|BOYS|GIRLS))\b`),
}

// LineParser classifies lines of extracted result-sheet text. It carries the
// active distance and category across lines: result rows inherit whatever
// section header most recently preceded them, and rows seen before any
// distance marker are ignored.
type LineParser struct {
	Competition string
	Date        *string

	distance string
	category string
}

// NewLineParser returns a parser for one competition document.
func NewLineParser(competition string, date *string) *LineParser {
	return &LineParser{Competition: competition, Date: date}
}

// ParseLine consumes one line. It returns a result record when the line is a
// well-formed result row inside an active distance section, and nil for
// headers and noise.
func (p *LineParser) ParseLine(line string) *entities.RawResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if dist, ok := extractDistanceMarker(line); ok {
		p.distance = dist
		if cat, ok := extractCategory(line); ok {
			p.category = cat
		}
		return nil
	}

	if cat, ok := extractCategory(line); ok && !reStartsDigit.MatchString(line) {
		p.category = cat
		return nil
	}

	m := reResultRow.FindStringSubmatch(line)
	if m == nil || p.distance == "" {
		return nil
	}
	place, _ := strconv.Atoi(m[1])
	rest := m[2]

	tm := reTrailingTime.FindStringSubmatch(rest)
	if tm == nil {
		return nil
	}
	timeStr := tm[1]
	loc := reTrailingTime.FindStringIndex(rest)
	name := extractName(rest[:loc[0]])
	if name == "" || timeStr == "" {
		return nil
	}

	category := p.category
	if category == "" {
		category = "Unknown"
	}

	return &entities.RawResult{
		Rank:        place,
		Skater:      name,
		Time:        timeStr,
		Distance:    p.distance,
		Category:    category,
		Competition: p.Competition,
		Date:        p.Date,
	}
}

// extractDistanceMarker recognizes section headers like "500M JUNIOR A".
func extractDistanceMarker(line string) (string, bool) {
	m := reDistanceMarker.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || !markerDistances[num] {
		return "", false
	}
	return m[1] + "m", true
}

// extractCategory runs the header pattern cascade.
func extractCategory(line string) (string, bool) {
	for _, re := range categoryPatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.ToUpper(strings.TrimSpace(m[1])), true
		}
	}
	return "", false
}

// extractName strips bib numbers and short club codes from the text between
// the place and the time, keeping at most the first three remaining tokens.
func extractName(text string) string {
	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	var tokens []string
	for _, p := range parts {
		if reAllDigits.MatchString(p) || len(p) <= 3 {
			continue
		}
		tokens = append(tokens, p)
	}
	if len(tokens) == 0 {
		return text
	}
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, " ")
}

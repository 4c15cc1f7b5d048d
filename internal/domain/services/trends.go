package services

import (
	"sort"
	"strconv"
	"time"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/normalize"
)

// Distances worth charting; relays and novelty sprints carry too little
// comparable data.
var trendDistances = map[int]bool{500: true, 1000: true, 1500: true}

// TrendStats reports how matching went for one build.
type TrendStats struct {
	Matched        int
	UnmatchedNames []string
}

// TrendService cross-references two independently sourced result sets onto
// the indexed skater roster, using name variants to bridge the sources'
// inconsistent name rendering.
type TrendService struct {
	index map[string]int
}

// NewTrendService builds the variant lookup index for the roster. Every
// variant of every name maps to the skater's ID; when two skaters share a
// variant the first-registered one keeps it, so roster order defines match
// priority. The losing skater simply cannot be reached through that variant,
// an accepted limitation of name-based identity.
func NewTrendService(skaters []entities.IndexedSkater) *TrendService {
	index := make(map[string]int)
	for _, sk := range skaters {
		for _, variant := range normalize.NameVariants(sk.Name) {
			if _, exists := index[variant]; !exists {
				index[variant] = sk.ID
			}
		}
	}
	return &TrendService{index: index}
}

// IndexSize returns the number of distinct name variants indexed.
func (s *TrendService) IndexSize() int {
	return len(s.index)
}

// Match resolves a source-rendered name to a skater ID through its variants.
func (s *TrendService) Match(name string) (int, bool) {
	for _, variant := range normalize.NameVariants(name) {
		if id, ok := s.index[variant]; ok {
			return id, true
		}
	}
	return 0, false
}

// Build folds results into per-skater, per-distance time histories. Rows
// without a parseable time, outside the charted distances, or whose skater
// cannot be matched are skipped; each distance list is sorted by date
// (undated entries last) then time.
func (s *TrendService) Build(results []entities.Result, source string) (map[int]map[int][]entities.TrendEntry, TrendStats) {
	trends := make(map[int]map[int][]entities.TrendEntry)
	stats := TrendStats{}
	unmatched := make(map[string]bool)

	for i := range results {
		r := &results[i]
		if r.Time == nil {
			continue
		}
		secs, ok := normalize.ParseSeconds(*r.Time)
		if !ok {
			continue
		}

		dist, ok := parseDistanceMeters(r.Distance)
		if !ok || !trendDistances[dist] {
			continue
		}

		id, ok := s.Match(r.Skater)
		if !ok {
			if !unmatched[r.Skater] {
				unmatched[r.Skater] = true
				stats.UnmatchedNames = append(stats.UnmatchedNames, r.Skater)
			}
			continue
		}
		stats.Matched++

		date := r.Date
		if date != nil {
			if _, err := time.Parse("2006-01-02", *date); err != nil {
				date = nil
			}
		}

		competition := r.Competition
		if competition == "" {
			competition = "Unknown"
		}

		if trends[id] == nil {
			trends[id] = make(map[int][]entities.TrendEntry)
		}
		trends[id][dist] = append(trends[id][dist], entities.TrendEntry{
			Time:        secs,
			TimeStr:     *r.Time,
			Date:        date,
			Competition: competition,
			Place:       r.Place,
			Source:      source,
		})
	}

	for _, distances := range trends {
		for _, entries := range distances {
			sort.SliceStable(entries, func(i, j int) bool {
				di, dj := sortDate(entries[i].Date), sortDate(entries[j].Date)
				if di != dj {
					return di < dj
				}
				return entries[i].Time < entries[j].Time
			})
		}
	}

	return trends, stats
}

// parseDistanceMeters extracts the numeric meters from a canonical label.
func parseDistanceMeters(label string) (int, bool) {
	digits := ""
	for _, r := range label {
		if r < '0' || r > '9' {
			break
		}
		digits += string(r)
	}
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortDate orders undated entries after every dated one.
func sortDate(d *string) string {
	if d == nil {
		return "9999-99-99"
	}
	return *d
}

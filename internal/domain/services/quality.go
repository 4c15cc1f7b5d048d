package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/normalize"
)

// expectedBand is the plausible finish-time window for a distance, in
// seconds.
type expectedBand struct {
	min, max float64
}

var expectedBands = map[string]expectedBand{
	"500m":  {35, 65},
	"1000m": {65, 130},
	"1500m": {130, 200},
}

// dateRule maps a recurring competition-name fragment to its habitual spot
// in the season calendar. Months of June or earlier fall in the season's end
// year, later months in its start year.
type dateRule struct {
	fragment string
	month    int
	day      int
}

var dateRules = []dateRule{
	{"amcup 1", 10, 15},
	{"amcup 2", 11, 15},
	{"amcup 3", 12, 15},
	{"amcup 4", 1, 15},
	{"amcup 5", 2, 15},
	{"amcup 6", 3, 15},
	{"fall wc", 10, 1},
	{"us championship", 12, 20},
	{"us nationals", 12, 20},
	{"american cup final", 3, 20},
}

var reYearInName = regexp.MustCompile(`20(\d{2})`)

// abnormal category markers produced by header misparses.
var abnormalCategories = map[string]bool{"U1000": true, "U8000": true, "Unknown": true, "": true}

// FixStats counts the repairs applied in one pass.
type FixStats struct {
	TrailingDash  int
	Distance      int
	RelayMarked   int
	Category      int
	DatesInferred int
}

// QualityService is the post-integration repair pass. Each fix runs exactly
// once over the results, in place.
type QualityService struct{}

// NewQualityService creates a new quality service.
func NewQualityService() *QualityService {
	return &QualityService{}
}

// FixAll applies every repair in order and returns the counts.
func (s *QualityService) FixAll(results []entities.Result) FixStats {
	stats := FixStats{}
	stats.TrailingDash = s.FixTrailingDash(results)
	stats.Distance, stats.RelayMarked = s.FixDistances(results)
	stats.Category = s.FixCategories(results)
	stats.DatesInferred = s.InferDates(results)
	return stats
}

// FixTrailingDash removes the " -" suffix PDF extraction leaves on some
// names.
func (s *QualityService) FixTrailingDash(results []entities.Result) int {
	fixed := 0
	for i := range results {
		name := results[i].Skater
		if strings.HasSuffix(name, " -") {
			results[i].Skater = strings.TrimSpace(strings.TrimRight(name, " -"))
			fixed++
		}
	}
	return fixed
}

// FixDistances reclassifies records whose time is implausible for their
// recorded distance. A 500m row over 65 seconds is always wrong and is
// reassigned outright; other individual distances are reassigned only when
// the time falls outside their band stretched by twenty percent. Times over
// 200 seconds on a non-relay row are marked as relay legs.
func (s *QualityService) FixDistances(results []entities.Result) (fixed, relays int) {
	for i := range results {
		r := &results[i]
		if r.Time == nil {
			continue
		}
		secs, ok := normalize.ParseSeconds(*r.Time)
		if !ok || secs < 35 {
			continue
		}

		var suggested string
		switch {
		case secs <= 65:
			suggested = "500m"
		case secs <= 130:
			suggested = "1000m"
		case secs <= 200:
			suggested = "1500m"
		default:
			if !strings.Contains(strings.ToLower(r.Distance), "relay") {
				suggested = "relay"
				relays++
			}
		}

		if suggested == "" || suggested == r.Distance {
			continue
		}

		if r.Distance == "500m" && secs > 65 {
			r.Distance = suggested
			r.DistanceFixed = true
			fixed++
			continue
		}

		band, known := expectedBands[r.Distance]
		if known && (secs < band.min*0.8 || secs > band.max*1.2) {
			r.Distance = suggested
			r.DistanceFixed = true
			fixed++
		}
	}
	return fixed, relays
}

// FixCategories repairs abnormal category codes, inferring the real
// category from the competition name where possible and falling back to
// Senior for outright parse artifacts.
func (s *QualityService) FixCategories(results []entities.Result) int {
	fixed := 0
	for i := range results {
		r := &results[i]
		if !abnormalCategories[r.Category] {
			continue
		}

		comp := strings.ToLower(r.Competition)
		switch {
		case strings.Contains(comp, "junior") || strings.Contains(comp, "jr "):
			r.Category = "Junior"
		case strings.Contains(comp, "u16") || strings.Contains(comp, "u-16"):
			r.Category = "U16"
		case strings.Contains(comp, "u14") || strings.Contains(comp, "u-14"):
			r.Category = "U14"
		case strings.Contains(comp, "master"):
			r.Category = "Masters"
		default:
			r.Category = "Senior"
			r.CategoryInferred = true
		}
		fixed++
	}
	return fixed
}

// InferDates estimates missing dates. Known recurring events map to a fixed
// month and day within the season; otherwise a four-digit year in the
// competition name anchors January 1 of that year, and the final fallback
// is mid-season, January 15 of the season's end year.
func (s *QualityService) InferDates(results []entities.Result) int {
	fixed := 0
	for i := range results {
		r := &results[i]
		if r.Date != nil {
			continue
		}
		if r.Season == "" || r.Season == "unknown" {
			continue
		}

		startYear, endYear, ok := entities.SeasonYears(r.Season)
		if !ok {
			continue
		}

		comp := strings.ToLower(r.Competition)
		var estimated string
		for _, rule := range dateRules {
			if strings.Contains(comp, rule.fragment) {
				year := startYear
				if rule.month <= 6 {
					year = endYear
				}
				estimated = fmt.Sprintf("%d-%02d-%02d", year, rule.month, rule.day)
				break
			}
		}

		if estimated == "" {
			if m := reYearInName.FindStringSubmatch(comp); m != nil {
				estimated = fmt.Sprintf("20%s-01-01", m[1])
			} else {
				estimated = fmt.Sprintf("%d-01-15", endYear)
			}
		}

		r.Date = &estimated
		r.DateInferred = true
		fixed++
	}
	return fixed
}

// Score rates the overall health of a results set from 0 to 100. Missing
// fields are weighted by how much they hurt downstream use.
func (s *QualityService) Score(results []entities.Result) float64 {
	if len(results) == 0 {
		return 0
	}

	issues := 0.0
	for i := range results {
		r := &results[i]
		if strings.HasSuffix(r.Skater, " -") {
			issues++
		}
		if r.Date == nil {
			issues += 0.5
		}
		if abnormalCategories[r.Category] {
			issues += 0.5
		}
		if r.Time == nil {
			issues += 0.3
		}
	}

	score := 100 - issues/float64(len(results))*100
	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}

package services

import (
	"regexp"
	"sort"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/normalize"
)

var (
	reFormatMinSec  = regexp.MustCompile(`^\d+:\d{2}\.\d{2,3}$`)
	reFormatHourMin = regexp.MustCompile(`^\d+:\d{2}:\d{2}\.\d{2,3}$`)
	reFormatSec     = regexp.MustCompile(`^\d+\.\d{2,3}$`)
)

// plausibleRanges are tighter windows than the repair bands, used only to
// flag suspicious times in the report.
var plausibleRanges = map[string]expectedBand{
	"500m":  {35, 60},
	"1000m": {70, 120},
	"1500m": {120, 180},
}

// FieldStats counts missing values for one field.
type FieldStats struct {
	Null  int
	Empty int
}

// RangeIssue is one result whose time falls outside the plausible window
// for its distance.
type RangeIssue struct {
	Skater      string
	Distance    string
	Time        string
	Seconds     float64
	Competition string
}

// Report is the outcome of validating a results set.
type Report struct {
	TotalRecords int

	Fields        map[string]FieldStats
	UnknownSeason int
	InvalidPlace  int

	TimeFormats map[string]int

	OutOfRange []RangeIssue
	Duplicates int
	NameIssues []string
	Categories map[string]int
	Seasons    map[string]int

	Score float64
	Grade string
}

// ValidateService checks a results set for completeness, consistency and
// plausibility and scores it.
type ValidateService struct{}

// NewValidateService creates a new validation service.
func NewValidateService() *ValidateService {
	return &ValidateService{}
}

// Validate builds the full report for a results set.
func (s *ValidateService) Validate(results []entities.Result) *Report {
	rep := &Report{
		TotalRecords: len(results),
		Fields:       make(map[string]FieldStats),
		TimeFormats:  make(map[string]int),
		Categories:   make(map[string]int),
		Seasons:      make(map[string]int),
	}

	s.checkFields(results, rep)
	s.checkTimeFormats(results, rep)
	s.checkRanges(results, rep)
	s.checkNames(results, rep)
	s.checkDuplicates(results, rep)
	s.checkDistributions(results, rep)
	s.score(results, rep)

	return rep
}

func (s *ValidateService) checkFields(results []entities.Result, rep *Report) {
	for i := range results {
		r := &results[i]
		s.tally(rep, "skater", r.Skater)
		s.tally(rep, "competition", r.Competition)
		s.tally(rep, "season", r.Season)
		s.tally(rep, "distance", r.Distance)
		s.tally(rep, "category", r.Category)

		if r.Season == "unknown" {
			rep.UnknownSeason++
		}
		if r.Date == nil {
			fs := rep.Fields["date"]
			fs.Null++
			rep.Fields["date"] = fs
		}
		switch {
		case r.Place == nil:
			fs := rep.Fields["place"]
			fs.Null++
			rep.Fields["place"] = fs
		case *r.Place < 1:
			rep.InvalidPlace++
		}
		if r.Time == nil {
			fs := rep.Fields["time"]
			fs.Null++
			rep.Fields["time"] = fs
		}
	}
}

func (s *ValidateService) tally(rep *Report, field, value string) {
	if value == "" {
		fs := rep.Fields[field]
		fs.Empty++
		rep.Fields[field] = fs
	}
}

func (s *ValidateService) checkTimeFormats(results []entities.Result, rep *Report) {
	for i := range results {
		if results[i].Time == nil {
			continue
		}
		t := *results[i].Time
		switch {
		case reFormatMinSec.MatchString(t):
			rep.TimeFormats["M:SS.mmm"]++
		case reFormatHourMin.MatchString(t):
			rep.TimeFormats["H:MM:SS.mmm"]++
		case reFormatSec.MatchString(t):
			rep.TimeFormats["SS.mmm"]++
		default:
			rep.TimeFormats["other"]++
		}
	}
}

func (s *ValidateService) checkRanges(results []entities.Result, rep *Report) {
	for i := range results {
		r := &results[i]
		if r.Time == nil {
			continue
		}
		band, known := plausibleRanges[r.Distance]
		if !known {
			continue
		}
		secs, ok := normalize.ParseSeconds(*r.Time)
		if !ok {
			continue
		}
		if secs < band.min || secs > band.max {
			rep.OutOfRange = append(rep.OutOfRange, RangeIssue{
				Skater:      r.Skater,
				Distance:    r.Distance,
				Time:        *r.Time,
				Seconds:     secs,
				Competition: r.Competition,
			})
		}
	}
}

func (s *ValidateService) checkNames(results []entities.Result, rep *Report) {
	seen := make(map[string]bool)
	for i := range results {
		name := results[i].Skater
		if seen[name] {
			continue
		}
		seen[name] = true
		if name == "" {
			continue
		}
		if name[len(name)-1] == '-' || normalize.IsStatusCode(name) {
			rep.NameIssues = append(rep.NameIssues, name)
		}
	}
	sort.Strings(rep.NameIssues)
}

func (s *ValidateService) checkDuplicates(results []entities.Result, rep *Report) {
	seen := make(map[entities.DedupKey]bool, len(results))
	for i := range results {
		key := results[i].Key()
		if seen[key] {
			rep.Duplicates++
		}
		seen[key] = true
	}
}

func (s *ValidateService) checkDistributions(results []entities.Result, rep *Report) {
	for i := range results {
		cat := results[i].Category
		if cat == "" {
			cat = "null"
		}
		rep.Categories[cat]++

		season := results[i].Season
		if season == "" {
			season = "unknown"
		}
		rep.Seasons[season]++
	}
}

// score combines field completeness, name consistency, duplication and time
// plausibility into a 0-100 score with a letter grade.
func (s *ValidateService) score(results []entities.Result, rep *Report) {
	total := float64(rep.TotalRecords)
	if total == 0 {
		rep.Grade = "F"
		return
	}

	complete := func(field string) float64 {
		fs := rep.Fields[field]
		return (total - float64(fs.Null) - float64(fs.Empty)) / total
	}
	completeness := (complete("skater") + complete("competition") + complete("distance") + complete("time")) / 4 * 40

	uniqueNames := make(map[string]bool)
	for i := range results {
		uniqueNames[results[i].Skater] = true
	}
	nameRate := 0.0
	if len(uniqueNames) > 0 {
		nameRate = float64(len(rep.NameIssues)) / float64(len(uniqueNames))
	}
	consistency := clamp01(1-nameRate*5) * 25

	dupRate := float64(rep.Duplicates) / total
	noDupes := clamp01(1-dupRate*10) * 15

	checked := 0
	for i := range results {
		r := &results[i]
		if r.Time == nil {
			continue
		}
		if _, known := plausibleRanges[r.Distance]; !known {
			continue
		}
		if _, ok := normalize.ParseSeconds(*r.Time); ok {
			checked++
		}
	}
	plausibility := 20.0
	if checked > 0 {
		plausibility = float64(checked-len(rep.OutOfRange)) / float64(checked) * 20
	}

	rep.Score = completeness + consistency + noDupes + plausibility
	rep.Grade = gradeFor(rep.Score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

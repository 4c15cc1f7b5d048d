// Package services implements the pipeline stages between parsing and the
// output files: integration, trend building, quality repair, validation and
// the store load.
package services

import (
	"sort"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/normalize"
)

// IntegrateResult is the output of one integration run.
type IntegrateResult struct {
	Results []entities.Result
	Skaters map[string]entities.Skater
	Dropped int // records rejected by a normalizer
}

// IntegrateService merges raw parsed competition data into the canonical
// cleaned results and per-skater profiles.
type IntegrateService struct{}

// NewIntegrateService creates a new integration service.
func NewIntegrateService() *IntegrateService {
	return &IntegrateService{}
}

// ProcessCompetitions cleans and flattens nested competition data. Records
// whose distance cannot be normalized or whose name does not survive
// cleaning are dropped rather than persisted half-parsed.
func (s *IntegrateService) ProcessCompetitions(comps []entities.Competition) IntegrateResult {
	out := IntegrateResult{Skaters: make(map[string]entities.Skater)}

	for _, comp := range comps {
		season := comp.Season
		if season == "" {
			season = "unknown"
		}

		for _, race := range comp.Races {
			distance, ok := normalize.Distance(race.Distance)
			if !ok {
				out.Dropped += len(race.Results)
				continue
			}
			category := normalize.Category(race.Category)

			for _, rr := range race.Results {
				name, ok := normalize.CleanName(rr.Name)
				if !ok {
					out.Dropped++
					continue
				}

				var timePtr *string
				if rr.Time != nil {
					if cleaned, ok := normalize.CleanTime(*rr.Time); ok {
						timePtr = &cleaned
					}
				}

				out.Results = append(out.Results, entities.Result{
					Skater:      name,
					Competition: comp.Name,
					Season:      season,
					Date:        comp.Date,
					Distance:    distance,
					Category:    category,
					Place:       rr.Place,
					Time:        timePtr,
				})

				s.updateSkater(out.Skaters, name, season, distance, timePtr)
			}
		}
	}

	return out
}

// ProcessRawResults cleans flat per-row results from the PDF batch parser.
func (s *IntegrateService) ProcessRawResults(raw []entities.RawResult, season func(r *entities.RawResult) string) IntegrateResult {
	out := IntegrateResult{Skaters: make(map[string]entities.Skater)}

	for i := range raw {
		rr := &raw[i]

		distance, ok := normalize.Distance(rr.Distance)
		if !ok {
			out.Dropped++
			continue
		}
		name, ok := normalize.CleanName(rr.Skater)
		if !ok {
			out.Dropped++
			continue
		}
		category := normalize.Category(rr.Category)

		var timePtr *string
		if cleaned, ok := normalize.CleanTime(rr.Time); ok {
			timePtr = &cleaned
		}

		place := rr.Rank
		seasonLabel := season(rr)

		out.Results = append(out.Results, entities.Result{
			Skater:      name,
			Competition: rr.Competition,
			Season:      seasonLabel,
			Date:        rr.Date,
			Distance:    distance,
			Category:    category,
			Place:       &place,
			Time:        timePtr,
		})

		s.updateSkater(out.Skaters, name, seasonLabel, distance, timePtr)
	}

	return out
}

// Merge combines several integration runs: results are concatenated then
// deduplicated (first occurrence wins), skater profiles are unioned with
// best times kept per distance.
func (s *IntegrateService) Merge(runs ...IntegrateResult) IntegrateResult {
	merged := IntegrateResult{Skaters: make(map[string]entities.Skater)}

	var all []entities.Result
	for _, run := range runs {
		all = append(all, run.Results...)
		merged.Dropped += run.Dropped

		for name, sk := range run.Skaters {
			existing, ok := merged.Skaters[name]
			if !ok {
				merged.Skaters[name] = cloneSkater(sk)
				continue
			}
			existing.Seasons = unionSeasons(existing.Seasons, sk.Seasons)
			for dist, t := range sk.BestTimes {
				if better(t, existing.BestTimes[dist]) {
					existing.BestTimes[dist] = t
				}
			}
			merged.Skaters[name] = existing
		}
	}

	merged.Results = Deduplicate(all)
	return merged
}

// Deduplicate drops later records sharing a composite key with an earlier
// one.
func Deduplicate(results []entities.Result) []entities.Result {
	seen := make(map[entities.DedupKey]bool, len(results))
	unique := make([]entities.Result, 0, len(results))
	for _, r := range results {
		key := r.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique
}

// Seasons returns the sorted set of season labels present in results.
func Seasons(results []entities.Result) []string {
	set := make(map[string]bool)
	for _, r := range results {
		if r.Season != "" {
			set[r.Season] = true
		}
	}
	seasons := make([]string, 0, len(set))
	for s := range set {
		seasons = append(seasons, s)
	}
	sort.Strings(seasons)
	return seasons
}

// updateSkater folds one result into a skater profile.
func (s *IntegrateService) updateSkater(skaters map[string]entities.Skater, name, season, distance string, timePtr *string) {
	sk, ok := skaters[name]
	if !ok {
		sk = entities.Skater{Name: name, BestTimes: make(map[string]string)}
	}
	sk.Seasons = unionSeasons(sk.Seasons, []string{season})

	if timePtr != nil && better(*timePtr, sk.BestTimes[distance]) {
		sk.BestTimes[distance] = *timePtr
	}
	skaters[name] = sk
}

// better reports whether candidate beats current as a best time. Times are
// compared as parsed seconds; comparing the raw strings breaks as soon as a
// sub-minute time meets an over-minute one. Unparseable candidates never
// win; anything beats an empty current.
func better(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}
	cs, ok1 := normalize.ParseSeconds(candidate)
	xs, ok2 := normalize.ParseSeconds(current)
	if ok1 && ok2 {
		return cs < xs
	}
	if ok1 {
		return true
	}
	if ok2 {
		return false
	}
	return candidate < current
}

func cloneSkater(sk entities.Skater) entities.Skater {
	clone := entities.Skater{
		Name:      sk.Name,
		Seasons:   append([]string(nil), sk.Seasons...),
		BestTimes: make(map[string]string, len(sk.BestTimes)),
	}
	for d, t := range sk.BestTimes {
		clone.BestTimes[d] = t
	}
	return clone
}

func unionSeasons(a, b []string) []string {
	set := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		set[s] = true
	}
	union := make([]string, 0, len(set))
	for s := range set {
		union = append(union, s)
	}
	sort.Strings(union)
	return union
}

package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/ports"
)

// BuildStats summarizes a store load.
type BuildStats struct {
	Skaters        int
	PersonalBests  int
	Results        int
	SkippedResults int
}

// BuildService loads the integrated results and skater records into a
// relational store.
type BuildService struct {
	store ports.Store
}

// NewBuildService creates a new build service backed by the given store.
func NewBuildService(store ports.Store) *BuildService {
	return &BuildService{store: store}
}

// Build recreates the schema and loads skaters, their personal bests and all
// results. Results whose skater has no record are skipped and counted.
func (s *BuildService) Build(ctx context.Context, skaters map[string]*entities.Skater, results []entities.Result) (*BuildStats, error) {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("preparing schema: %w", err)
	}

	stats := &BuildStats{}

	names := make([]string, 0, len(skaters))
	for name := range skaters {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]int64, len(names))
	for _, name := range names {
		skater := skaters[name]
		id, err := s.store.SaveSkater(ctx, skater)
		if err != nil {
			return nil, fmt.Errorf("saving skater %q: %w", name, err)
		}
		ids[name] = id
		stats.Skaters++

		distances := make([]string, 0, len(skater.BestTimes))
		for distance := range skater.BestTimes {
			distances = append(distances, distance)
		}
		sort.Strings(distances)
		for _, distance := range distances {
			if err := s.store.SavePersonalBest(ctx, id, distance, skater.BestTimes[distance]); err != nil {
				return nil, fmt.Errorf("saving personal best for %q: %w", name, err)
			}
			stats.PersonalBests++
		}
	}

	for i := range results {
		r := &results[i]
		id, ok := ids[r.Skater]
		if !ok {
			stats.SkippedResults++
			continue
		}
		if err := s.store.SaveResult(ctx, id, r); err != nil {
			return nil, fmt.Errorf("saving result for %q: %w", r.Skater, err)
		}
		stats.Results++
	}

	return stats, nil
}

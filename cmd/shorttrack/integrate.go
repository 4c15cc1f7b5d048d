package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/services"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
	"github.com/skatedata/shorttrack/internal/infrastructure/parsers"
)

func newIntegrateCmd() *cobra.Command {
	var (
		rawPath     string
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Clean and merge parsed results",
		Long:  "Normalizes the raw parsed results, merges in the legacy competition catalog when present, deduplicates, and writes the canonical results, skaters and indexed roster files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(cmd, rawPath, catalogPath)
		},
	}

	cmd.Flags().StringVarP(&rawPath, "raw", "r", "", "Raw results file (default from config)")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Legacy competition catalog file (default from config, skipped when absent)")

	return cmd
}

func runIntegrate(cmd *cobra.Command, rawPath, catalogPath string) error {
	return withConfig(func(cfg *config.Config) error {
		if rawPath == "" {
			rawPath = cfg.RawResultsPath()
		}
		if catalogPath == "" {
			catalogPath = cfg.CatalogPath()
		}

		raw, err := loadRawResults(rawPath)
		if err != nil {
			return err
		}

		svc := services.NewIntegrateService()

		runs := []services.IntegrateResult{
			svc.ProcessRawResults(raw, func(r *entities.RawResult) string {
				if r.Date != nil {
					if season, ok := entities.SeasonForDate(*r.Date); ok {
						return season
					}
				}
				return "unknown"
			}),
		}

		if _, err := os.Stat(catalogPath); err == nil {
			comps, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			runs = append(runs, svc.ProcessCompetitions(comps))
			fmt.Printf("Merged %d catalog competitions\n", len(comps))
		}

		merged := svc.Merge(runs...)
		generated := time.Now().Format(time.RFC3339)

		resultsFile := datafiles.ResultsFile{
			Source:       datafiles.DefaultSource,
			Generated:    generated,
			TotalResults: len(merged.Results),
			Seasons:      services.Seasons(merged.Results),
			Results:      merged.Results,
		}
		if err := datafiles.Save(cfg.ResultsPath(), &resultsFile); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}

		skatersFile := datafiles.SkatersFile{
			Source:       datafiles.DefaultSource,
			Generated:    generated,
			TotalSkaters: len(merged.Skaters),
			Skaters:      merged.Skaters,
		}
		if err := datafiles.Save(cfg.SkatersPath(), &skatersFile); err != nil {
			return fmt.Errorf("saving skaters: %w", err)
		}

		indexed := indexSkaters(merged.Skaters)
		if err := datafiles.Save(cfg.IndexedSkatersPath(), &datafiles.IndexedSkatersFile{Skaters: indexed}); err != nil {
			return fmt.Errorf("saving indexed skaters: %w", err)
		}

		color.Green("Integrated %d results for %d skaters (%d records dropped)",
			len(merged.Results), len(merged.Skaters), merged.Dropped)
		return nil
	})
}

func loadRawResults(path string) ([]entities.RawResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raw results: %w", err)
	}
	defer f.Close()

	var source parsers.ResultSource = &parsers.ResultsParser{}
	raw, err := source.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading raw results: %w", err)
	}
	return raw, nil
}

func loadCatalog(path string) ([]entities.Competition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	var source parsers.CompetitionSource = &parsers.CompetitionsParser{}
	comps, err := source.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return comps, nil
}

// indexSkaters assigns stable numeric IDs in name order.
func indexSkaters(skaters map[string]entities.Skater) []entities.IndexedSkater {
	names := make([]string, 0, len(skaters))
	for name := range skaters {
		names = append(names, name)
	}
	sort.Strings(names)

	indexed := make([]entities.IndexedSkater, 0, len(names))
	for i, name := range names {
		indexed = append(indexed, entities.IndexedSkater{ID: i + 1, Name: name})
	}
	return indexed
}

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/services"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
)

func newTrendsCmd() *cobra.Command {
	var (
		resultsPath string
		extraPath   string
		extraSource string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Build per-skater time histories",
		Long:  "Matches results onto the indexed roster through name variants and writes per-skater, per-distance time histories. A second results file from another source can be folded in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(cmd, resultsPath, extraPath, extraSource, verbose)
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Results file (default from config)")
	cmd.Flags().StringVarP(&extraPath, "extra", "e", "", "Additional results file from another source")
	cmd.Flags().StringVar(&extraSource, "extra-source", "site", "Source label for the additional results file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List names that could not be matched")

	return cmd
}

func runTrends(cmd *cobra.Command, resultsPath, extraPath, extraSource string, verbose bool) error {
	return withConfig(func(cfg *config.Config) error {
		if resultsPath == "" {
			resultsPath = cfg.ResultsPath()
		}

		var roster datafiles.IndexedSkatersFile
		if err := datafiles.Load(cfg.IndexedSkatersPath(), &roster); err != nil {
			return fmt.Errorf("loading indexed skaters: %w", err)
		}

		var resultsFile datafiles.ResultsFile
		if err := datafiles.Load(resultsPath, &resultsFile); err != nil {
			return fmt.Errorf("loading results: %w", err)
		}

		svc := services.NewTrendService(roster.Skaters)
		fmt.Printf("Indexed %d skaters (%d name variants)\n", len(roster.Skaters), svc.IndexSize())

		trends, stats := svc.Build(resultsFile.Results, "pdf")
		unmatched := stats.UnmatchedNames

		if extraPath != "" {
			if _, err := os.Stat(extraPath); err != nil {
				return fmt.Errorf("additional results file: %w", err)
			}
			var extra datafiles.ResultsFile
			if err := datafiles.Load(extraPath, &extra); err != nil {
				return fmt.Errorf("loading additional results: %w", err)
			}
			extraTrends, extraStats := svc.Build(extra.Results, extraSource)
			mergeTrends(trends, extraTrends)
			stats.Matched += extraStats.Matched
			unmatched = append(unmatched, extraStats.UnmatchedNames...)
		}

		file := datafiles.TrendsFile{
			Generated:    time.Now().Format(time.RFC3339),
			TotalSkaters: len(trends),
			Trends:       make(map[string]map[string][]entities.TrendEntry, len(trends)),
		}
		for id, distances := range trends {
			byDistance := make(map[string][]entities.TrendEntry, len(distances))
			for dist, entries := range distances {
				byDistance[strconv.Itoa(dist)] = entries
				file.TotalEntries += len(entries)
			}
			file.Trends[strconv.Itoa(id)] = byDistance
		}

		if err := datafiles.Save(cfg.TrendsPath(), &file); err != nil {
			return fmt.Errorf("saving trends: %w", err)
		}

		if verbose && len(unmatched) > 0 {
			fmt.Printf("Unmatched names (%d):\n", len(unmatched))
			for _, name := range unmatched {
				fmt.Printf("  %s\n", name)
			}
		}

		color.Green("Built trends for %d skaters: %d entries from %d matched results",
			file.TotalSkaters, file.TotalEntries, stats.Matched)
		return nil
	})
}

// mergeTrends folds src into dst, keeping each distance list ordered by date
// then time.
func mergeTrends(dst, src map[int]map[int][]entities.TrendEntry) {
	for id, distances := range src {
		if dst[id] == nil {
			dst[id] = distances
			continue
		}
		for dist, entries := range distances {
			combined := append(dst[id][dist], entries...)
			sort.SliceStable(combined, func(i, j int) bool {
				di, dj := trendSortDate(combined[i].Date), trendSortDate(combined[j].Date)
				if di != dj {
					return di < dj
				}
				return combined[i].Time < combined[j].Time
			})
			dst[id][dist] = combined
		}
	}
}

func trendSortDate(d *string) string {
	if d == nil {
		return "9999-99-99"
	}
	return *d
}

package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/services"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
)

func newValidateCmd() *cobra.Command {
	var (
		resultsPath string
		minScore    float64
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the integrated results",
		Long:  "Checks the results file for completeness, consistency and plausibility and prints a scored report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, resultsPath, minScore)
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Results file (default from config)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Fail when the quality score drops below this value")

	return cmd
}

func runValidate(cmd *cobra.Command, resultsPath string, minScore float64) error {
	return withConfig(func(cfg *config.Config) error {
		if resultsPath == "" {
			resultsPath = cfg.ResultsPath()
		}

		var file datafiles.ResultsFile
		if err := datafiles.Load(resultsPath, &file); err != nil {
			return fmt.Errorf("loading results: %w", err)
		}

		rep := services.NewValidateService().Validate(file.Results)
		printReport(rep)

		if minScore > 0 && rep.Score < minScore {
			return fmt.Errorf("quality score %.1f is below the required %.1f", rep.Score, minScore)
		}
		return nil
	})
}

func printReport(rep *services.Report) {
	fmt.Printf("Total records: %d\n\n", rep.TotalRecords)

	if len(rep.Fields) > 0 {
		fmt.Println("Missing fields:")
		for _, field := range sortedKeys(rep.Fields) {
			fs := rep.Fields[field]
			if fs.Null == 0 && fs.Empty == 0 {
				continue
			}
			fmt.Printf("  %-12s null=%d empty=%d\n", field, fs.Null, fs.Empty)
		}
	}
	if rep.UnknownSeason > 0 {
		fmt.Printf("  unknown season: %d\n", rep.UnknownSeason)
	}
	if rep.InvalidPlace > 0 {
		fmt.Printf("  invalid place:  %d\n", rep.InvalidPlace)
	}

	fmt.Println("\nTime formats:")
	for _, format := range sortedKeys(rep.TimeFormats) {
		fmt.Printf("  %-12s %d\n", format, rep.TimeFormats[format])
	}

	if len(rep.OutOfRange) > 0 {
		color.Yellow("\nImplausible times: %d", len(rep.OutOfRange))
		for i, issue := range rep.OutOfRange {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(rep.OutOfRange)-5)
				break
			}
			fmt.Printf("  %s  %s %s (%s)\n", issue.Skater, issue.Distance, issue.Time, issue.Competition)
		}
	}

	if rep.Duplicates > 0 {
		color.Yellow("Duplicate records: %d", rep.Duplicates)
	}
	if len(rep.NameIssues) > 0 {
		color.Yellow("Suspicious names: %d", len(rep.NameIssues))
	}

	fmt.Println("\nSeasons:")
	for _, season := range sortedKeys(rep.Seasons) {
		fmt.Printf("  %-12s %d\n", season, rep.Seasons[season])
	}

	fmt.Println()
	line := fmt.Sprintf("Quality score: %.1f (grade %s)", rep.Score, rep.Grade)
	switch rep.Grade {
	case "A", "B":
		color.Green(line)
	case "C", "D":
		color.Yellow(line)
	default:
		color.Red(line)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

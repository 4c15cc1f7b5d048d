package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/services"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
)

func newFixCmd() *cobra.Command {
	var resultsPath string

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair known data quality issues",
		Long:  "Runs the repair pass over the integrated results: trailing-dash names, implausible distances, abnormal categories and missing dates. The file is updated in place with a record of what was fixed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, resultsPath)
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Results file (default from config)")

	return cmd
}

func runFix(cmd *cobra.Command, resultsPath string) error {
	return withConfig(func(cfg *config.Config) error {
		if resultsPath == "" {
			resultsPath = cfg.ResultsPath()
		}

		var file datafiles.ResultsFile
		if err := datafiles.Load(resultsPath, &file); err != nil {
			return fmt.Errorf("loading results: %w", err)
		}

		svc := services.NewQualityService()
		before := svc.Score(file.Results)
		stats := svc.FixAll(file.Results)
		score := svc.Score(file.Results)

		file.QualityFixes = &datafiles.QualityFixRecord{
			FixDate:           time.Now().Format(time.RFC3339),
			TrailingDashFixed: stats.TrailingDash,
			DistanceFixed:     stats.Distance,
			CategoryFixed:     stats.Category,
			DatesInferred:     stats.DatesInferred,
			QualityScore:      score,
		}

		if err := datafiles.Save(resultsPath, &file); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}

		fmt.Printf("Trailing dashes fixed:  %d\n", stats.TrailingDash)
		fmt.Printf("Distances reassigned:   %d (%d marked as relay legs)\n", stats.Distance, stats.RelayMarked)
		fmt.Printf("Categories repaired:    %d\n", stats.Category)
		fmt.Printf("Dates inferred:         %d\n", stats.DatesInferred)
		color.Green("Quality score: %.2f -> %.2f", before, score)
		return nil
	})
}

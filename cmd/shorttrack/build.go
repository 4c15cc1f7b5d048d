package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/ports"
	"github.com/skatedata/shorttrack/internal/domain/services"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
)

func newBuildCmd() *cobra.Command {
	var (
		dbPath string
		top    int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Load results into the SQLite database",
		Long:  "Recreates the SQLite schema and loads skaters, personal bests and results, then prints the fastest 500m personal bests.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, dbPath, top)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().IntVarP(&top, "top", "t", DefaultTopLimit, "Number of leaderboard rows to print")

	return cmd
}

func runBuild(cmd *cobra.Command, dbPath string, top int) error {
	ctx := cmd.Context()

	return withConfig(func(cfg *config.Config) error {
		if dbPath != "" {
			cfg.DB.Path = dbPath
		}

		var resultsFile datafiles.ResultsFile
		if err := datafiles.Load(cfg.ResultsPath(), &resultsFile); err != nil {
			return fmt.Errorf("loading results: %w", err)
		}

		var skatersFile datafiles.SkatersFile
		if err := datafiles.Load(cfg.SkatersPath(), &skatersFile); err != nil {
			return fmt.Errorf("loading skaters: %w", err)
		}

		skaters := make(map[string]*entities.Skater, len(skatersFile.Skaters))
		for name := range skatersFile.Skaters {
			sk := skatersFile.Skaters[name]
			skaters[name] = &sk
		}

		return withStore(cfg, func(store ports.Store) error {
			svc := services.NewBuildService(store)

			stats, err := svc.Build(ctx, skaters, resultsFile.Results)
			if err != nil {
				return fmt.Errorf("loading database: %w", err)
			}

			counts, err := store.Counts(ctx)
			if err != nil {
				return fmt.Errorf("counting rows: %w", err)
			}

			fmt.Printf("Skaters:        %d\n", counts.Skaters)
			fmt.Printf("Results:        %d (%d skipped, unknown skater)\n", counts.Results, stats.SkippedResults)
			fmt.Printf("Personal bests: %d\n", counts.PersonalBests)

			bests, err := store.TopPersonalBests(ctx, "500m", top)
			if err != nil {
				return fmt.Errorf("querying leaderboard: %w", err)
			}
			if len(bests) > 0 {
				fmt.Printf("\nFastest 500m personal bests:\n")
				for i, pb := range bests {
					fmt.Printf("  %2d. %-30s %s\n", i+1, pb.Skater, pb.Time)
				}
			}

			color.Green("Database written to %s", cfg.DB.Path)
			return nil
		})
	})
}

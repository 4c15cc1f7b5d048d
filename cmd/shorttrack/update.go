package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var skipFetch bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run the full pipeline",
		Long:  "Fetches new PDFs, parses them, integrates and repairs the results, rebuilds trends and reloads the database in one run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, skipFetch)
		},
	}

	cmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Work from already-downloaded PDFs")

	return cmd
}

func runUpdate(cmd *cobra.Command, skipFetch bool) error {
	type stage struct {
		name string
		run  func() error
	}

	stages := []stage{
		{"fetch", func() error { return runFetch(cmd, "", 0, false) }},
		{"parse", func() error { return runParse(cmd, "", "", false) }},
		{"integrate", func() error { return runIntegrate(cmd, "", "") }},
		{"fix", func() error { return runFix(cmd, "") }},
		{"trends", func() error { return runTrends(cmd, "", "", "site", false) }},
		{"build", func() error { return runBuild(cmd, "", DefaultTopLimit) }},
	}
	if skipFetch {
		stages = stages[1:]
	}

	for _, st := range stages {
		fmt.Printf("==> %s\n", st.name)
		if err := st.run(); err != nil {
			return fmt.Errorf("%s stage: %w", st.name, err)
		}
	}

	color.Green("Pipeline complete")
	return nil
}

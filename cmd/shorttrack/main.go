// Package main provides the entry point for the shorttrack CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "shorttrack",
		Short:   "A results pipeline for US short track speed skating competitions",
		Version: version,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newFetchCmd(),
		newParseCmd(),
		newIntegrateCmd(),
		newFixCmd(),
		newTrendsCmd(),
		newBuildCmd(),
		newValidateCmd(),
		newUpdateCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

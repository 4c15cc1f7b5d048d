package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/fetch"
)

func newFetchCmd() *cobra.Command {
	var (
		listURL string
		limit   int
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download short track result PDFs",
		Long:  "Scrapes the results listing page and downloads every short track result PDF that is not already on disk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, listURL, limit, dryRun)
		},
	}

	cmd.Flags().StringVarP(&listURL, "url", "u", "", "Results listing URL (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of PDFs to download (0 = all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List matching PDFs without downloading")

	return cmd
}

func runFetch(cmd *cobra.Command, listURL string, limit int, dryRun bool) error {
	ctx := cmd.Context()

	return withConfig(func(cfg *config.Config) error {
		if listURL == "" {
			listURL = cfg.Fetch.ListURL
		}

		scraper := fetch.NewScraper(listURL, cfg.Fetch.Timeout())

		links, err := scraper.ListPDFs(ctx)
		if err != nil {
			return fmt.Errorf("listing result PDFs: %w", err)
		}
		if len(links) == 0 {
			return errors.New("no short track result PDFs found on listing page")
		}

		fmt.Printf("Found %d short track result PDFs\n", len(links))
		if limit > 0 && limit < len(links) {
			links = links[:limit]
		}

		if dryRun {
			for _, link := range links {
				date := ""
				if link.Date != nil {
					date = *link.Date + "  "
				}
				fmt.Printf("  %s%s\n", date, link.Name)
			}
			return nil
		}

		downloaded, failed := 0, 0
		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return err
			}

			path, err := scraper.Download(ctx, link, cfg.Data.PDFDir)
			if err != nil {
				color.Red("  failed: %s (%v)", link.Name, err)
				failed++
				continue
			}
			fmt.Printf("  saved: %s\n", path)
			downloaded++
		}

		color.Green("Downloaded %d PDFs (%d failed) to %s", downloaded, failed, cfg.Data.PDFDir)
		return nil
	})
}

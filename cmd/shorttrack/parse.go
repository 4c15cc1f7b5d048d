package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/datafiles"
	"github.com/skatedata/shorttrack/internal/infrastructure/parsers"
	"github.com/skatedata/shorttrack/internal/infrastructure/pdftext"
)

// reDatedFilename recovers the date and competition name that SafeFilename
// folded into the stored file name.
var reDatedFilename = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) - (.+)$`)

func newParseCmd() *cobra.Command {
	var (
		pdfDir string
		output string
		fresh  bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse downloaded result PDFs",
		Long:  "Extracts text from every downloaded PDF and parses result rows into the raw results file. Interrupted runs resume from a checkpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, pdfDir, output, fresh)
		},
	}

	cmd.Flags().StringVarP(&pdfDir, "pdf-dir", "d", "", "Directory of downloaded PDFs (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Raw results output file (default from config)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore any existing checkpoint and reparse everything")

	return cmd
}

func runParse(cmd *cobra.Command, pdfDir, output string, fresh bool) error {
	ctx := cmd.Context()

	return withConfig(func(cfg *config.Config) error {
		if pdfDir == "" {
			pdfDir = cfg.Data.PDFDir
		}
		if output == "" {
			output = cfg.RawResultsPath()
		}

		paths, err := filepath.Glob(filepath.Join(pdfDir, "*.pdf"))
		if err != nil {
			return fmt.Errorf("listing PDFs: %w", err)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDFs found in %s (run 'shorttrack fetch' first)", pdfDir)
		}
		sort.Strings(paths)

		if fresh {
			os.Remove(datafiles.CheckpointPath(output))
		}
		checkpoint, err := datafiles.LoadCheckpoint(output)
		if err != nil {
			return fmt.Errorf("loading checkpoint: %w", err)
		}

		var results []entities.RawResult
		if len(checkpoint.Processed) > 0 {
			var existing datafiles.RawResultsFile
			if err := datafiles.Load(output, &existing); err == nil {
				results = existing.Results
				fmt.Printf("Resuming run %s: %d PDFs already parsed\n", checkpoint.RunID, len(checkpoint.Processed))
			}
		}

		parsed, failed, sinceSave := 0, 0, 0
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}

			base := filepath.Base(path)
			if checkpoint.Done(base) {
				continue
			}

			competition, date := competitionFromFilename(base)
			rows, err := parsePDF(path, competition, date)
			if err != nil {
				color.Red("  failed: %s (%v)", base, err)
				failed++
			} else {
				results = append(results, rows...)
				fmt.Printf("  parsed: %s (%d rows)\n", base, len(rows))
				parsed++
			}

			// Failed documents are marked too; a rerun should not grind
			// on the same broken file.
			checkpoint.Mark(base)
			sinceSave++

			if sinceSave >= SaveEvery {
				if err := saveRawResults(output, results); err != nil {
					return err
				}
				if err := checkpoint.Save(output); err != nil {
					return fmt.Errorf("saving checkpoint: %w", err)
				}
				sinceSave = 0
			}
		}

		if err := saveRawResults(output, results); err != nil {
			return err
		}
		checkpoint.Clear(output)

		color.Green("Parsed %d PDFs (%d failed), %d result rows -> %s", parsed, failed, len(results), output)
		return nil
	})
}

// parsePDF extracts the text lines of one document and runs the line parser
// over them.
func parsePDF(path, competition string, date *string) ([]entities.RawResult, error) {
	lines, err := pdftext.ExtractLines(path)
	if err != nil {
		return nil, err
	}

	parser := parsers.NewLineParser(competition, date)
	var rows []entities.RawResult
	for _, line := range lines {
		if rr := parser.ParseLine(line); rr != nil {
			rows = append(rows, *rr)
		}
	}
	return rows, nil
}

// competitionFromFilename recovers a competition name, and a date when the
// file name carries one, from a stored PDF file name.
func competitionFromFilename(base string) (string, *string) {
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "_", " ")

	if m := reDatedFilename.FindStringSubmatch(name); m != nil {
		date := m[1]
		return m[2], &date
	}
	return name, nil
}

func saveRawResults(output string, results []entities.RawResult) error {
	file := datafiles.RawResultsFile{
		Source:       datafiles.DefaultSource,
		ScrapedAt:    time.Now().Format(time.RFC3339),
		TotalResults: len(results),
		Results:      results,
	}

	seasonSet := make(map[string]bool)
	compCounts := make(map[string]int)
	compDates := make(map[string]*string)
	var compOrder []string
	for i := range results {
		r := &results[i]
		if r.Date != nil {
			if season, ok := entities.SeasonForDate(*r.Date); ok {
				seasonSet[season] = true
			}
		}
		if _, seen := compCounts[r.Competition]; !seen {
			compOrder = append(compOrder, r.Competition)
			compDates[r.Competition] = r.Date
		}
		compCounts[r.Competition]++
	}

	for season := range seasonSet {
		file.Seasons = append(file.Seasons, season)
	}
	sort.Strings(file.Seasons)

	for _, name := range compOrder {
		file.Competitions = append(file.Competitions, entities.CompetitionSummary{
			Name:        name,
			Date:        compDates[name],
			ResultCount: compCounts[name],
		})
	}
	file.TotalCompetitions = len(file.Competitions)

	if err := datafiles.Save(output, &file); err != nil {
		return fmt.Errorf("saving raw results: %w", err)
	}
	return nil
}

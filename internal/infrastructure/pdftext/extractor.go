// Package pdftext extracts result-sheet text from PDF documents page by
// page, line by line.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MaxPages caps per-document processing; result sheets longer than this are
// truncated rather than allowed to dominate a batch run.
const MaxPages = 200

// ExtractLines returns the text of a PDF as trimmed, non-empty lines in page
// order. The document is structurally validated first so that a corrupt
// download fails here, as one skippable document error, instead of producing
// garbage rows downstream.
func ExtractLines(path string) ([]string, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("validating PDF structure: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > MaxPages {
		pages = MaxPages
	}

	var lines []string
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		for _, row := range rows {
			line := joinRow(row)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	return lines, nil
}

// joinRow flattens one positioned text row into a single spaced line.
func joinRow(row *pdf.Row) string {
	var sb strings.Builder
	for _, text := range row.Content {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSpace(text.S))
	}
	return strings.TrimSpace(strings.Join(strings.Fields(sb.String()), " "))
}

// Package fetch retrieves the external results listing page and downloads
// the result-sheet PDFs it links to.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// minPDFSize guards against saving error pages served with a 200 status.
const minPDFSize = 1000

var (
	reLink    = regexp.MustCompile(`(?i)<a[^>]+href="(https://[^"]+\.pdf)"[^>]*>([^<]+)</a>`)
	reDated   = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*-\s*(.+)`)
	reUnsafe  = regexp.MustCompile(`[<>:"/\\|?*]`)
	reSpaces  = regexp.MustCompile(`\s+`)
	reSchemes = regexp.MustCompile(`https?://`)
)

// Listing-page entries are a mix of disciplines. Names matching one of
// these fragments are short track; entries naming another discipline are
// dropped, and the undated remainder is too ambiguous to keep.
var shortTrackKeywords = []string{
	"short track", "st ", " st ", "silver skates", "heartland", "nest",
	"mast", "masa", "buffalo", "great lakes", "badger", "land of lincoln",
	"age group", "junior", "park ridge", "gateway", "thaw", "january",
	"amcup", "champions challenge", "empire state", "baystate", "bay state",
	"presidential", "adirondack", "northburke", "ohio", "michigan",
}

// PDFLink is one downloadable result sheet found on the listing page.
type PDFLink struct {
	URL  string
	Date *string
	Name string
}

// Scraper fetches the listing page and downloads linked PDFs.
type Scraper struct {
	client  *http.Client
	listURL string
}

// NewScraper creates a scraper for the given results listing URL.
func NewScraper(listURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		listURL: listURL,
	}
}

// ListPDFs fetches the listing page and returns the short track PDF links,
// deduplicated by URL.
func (s *Scraper) ListPDFs(ctx context.Context) ([]PDFLink, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building listing request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching listing page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading listing page: %w", err)
	}

	return filterShortTrack(extractLinks(string(body))), nil
}

// extractLinks pulls dated PDF links out of the listing HTML.
func extractLinks(html string) []PDFLink {
	var links []PDFLink
	seen := make(map[string]bool)

	for _, m := range reLink.FindAllStringSubmatch(html, -1) {
		url, text := m[1], strings.TrimSpace(m[2])
		if seen[url] {
			continue
		}
		seen[url] = true

		text = strings.ReplaceAll(text, "&amp;", "&")
		text = strings.ReplaceAll(text, "&nbsp;", " ")

		if dm := reDated.FindStringSubmatch(text); dm != nil {
			date := dm[1]
			links = append(links, PDFLink{URL: url, Date: &date, Name: strings.TrimSpace(dm[2])})
		} else {
			links = append(links, PDFLink{URL: url, Name: text})
		}
	}
	return links
}

// filterShortTrack keeps entries that name a short track event, plus dated
// entries that at least do not name another discipline.
func filterShortTrack(links []PDFLink) []PDFLink {
	var kept []PDFLink
	for _, l := range links {
		lower := strings.ToLower(l.Name)

		matched := false
		for _, kw := range shortTrackKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}

		switch {
		case matched:
			kept = append(kept, l)
		case strings.Contains(lower, "long track") || strings.Contains(lower, "marathon"):
			// Explicitly another discipline.
		case l.Date != nil:
			kept = append(kept, l)
		}
	}
	return kept
}

// Download fetches one PDF into dir, returning its path. Files already
// present with a plausible size are reused so re-runs only fetch what is
// new. Listing pages occasionally concatenate two URLs; the trailing one is
// the real asset.
func (s *Scraper) Download(ctx context.Context, link PDFLink, dir string) (string, error) {
	stem := link.Name
	if link.Date != nil {
		// Keep the date in the stored name; the parse stage reads it back.
		stem = *link.Date + " - " + link.Name
	}
	path := filepath.Join(dir, SafeFilename(stem)+".pdf")

	if fi, err := os.Stat(path); err == nil && fi.Size() > minPDFSize {
		return path, nil
	}

	url := link.URL
	if strings.Count(url, "http") > 1 {
		if idx := reSchemes.FindAllStringIndex(url, -1); len(idx) > 1 {
			url = url[idx[len(idx)-1][0]:]
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", link.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: unexpected status %d", link.Name, resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("saving %s: %w", link.Name, err)
	}
	if n <= minPDFSize {
		os.Remove(path)
		return "", fmt.Errorf("downloading %s: response too small (%d bytes)", link.Name, n)
	}

	return path, nil
}

// SafeFilename sanitizes a competition name into a filesystem-safe stem,
// truncated to keep paths manageable.
func SafeFilename(name string) string {
	safe := reUnsafe.ReplaceAllString(name, "_")
	safe = reSpaces.ReplaceAllString(safe, "_")
	if len(safe) > 80 {
		safe = safe[:80]
	}
	return safe
}

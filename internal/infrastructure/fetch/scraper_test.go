package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `
<html><body>
<a href="https://assets.example.com/a.pdf">2023-11-04 - AmCup 2 Short Track</a>
<a href="https://assets.example.com/a.pdf">2023-11-04 - AmCup 2 Short Track</a>
<a href="https://assets.example.com/b.pdf">2023-12-02 - Lake Placid Marathon</a>
<a href="https://assets.example.com/c.pdf">Silver Skates Invitational</a>
<a href="https://assets.example.com/d.pdf">2024-01-13 - Winter Open</a>
<a href="https://assets.example.com/e.pdf">Undated Unknown Meet</a>
</body></html>`

func TestScraper_ListPDFs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingHTML)
	}))
	defer srv.Close()

	s := NewScraper(srv.URL, 5*time.Second)
	links, err := s.ListPDFs(context.Background())

	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, "AmCup 2 Short Track", links[0].Name)
	require.NotNil(t, links[0].Date)
	assert.Equal(t, "2023-11-04", *links[0].Date)

	// "Silver Skates" is a known short track event even without a date;
	// the dated "Winter Open" is kept because it names no other discipline;
	// long track and undated unknowns are dropped.
	assert.Equal(t, "Silver Skates Invitational", links[1].Name)
	assert.Nil(t, links[1].Date)
	assert.Equal(t, "Winter Open", links[2].Name)
}

func TestScraper_ListPDFs_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewScraper(srv.URL, 5*time.Second).ListPDFs(context.Background())
	assert.Error(t, err)
}

func TestScraper_Download(t *testing.T) {
	payload := strings.Repeat("x", 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewScraper(srv.URL, 5*time.Second)
	link := PDFLink{URL: srv.URL + "/sheet.pdf", Name: "AmCup 2: Short/Track"}

	path, err := s.Download(context.Background(), link, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AmCup_2__Short_Track.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 2048)
}

func TestScraper_Download_DatedName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 2048))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewScraper(srv.URL, 5*time.Second)
	date := "2023-11-04"
	link := PDFLink{URL: srv.URL + "/sheet.pdf", Name: "AmCup 2 Short Track", Date: &date}

	path, err := s.Download(context.Background(), link, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2023-11-04_-_AmCup_2_Short_Track.pdf"), path)
}

func TestScraper_Download_SkipsExisting(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, strings.Repeat("x", 2048))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewScraper(srv.URL, 5*time.Second)
	link := PDFLink{URL: srv.URL + "/sheet.pdf", Name: "Cached Meet"}

	_, err := s.Download(context.Background(), link, dir)
	require.NoError(t, err)
	_, err = s.Download(context.Background(), link, dir)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestScraper_Download_TooSmall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "tiny")
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewScraper(srv.URL, 5*time.Second)

	_, err := s.Download(context.Background(), PDFLink{URL: srv.URL + "/x.pdf", Name: "Tiny"}, dir)

	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "Tiny.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestScraper_Download_RepairsDoubledURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 2048))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewScraper(srv.URL, 5*time.Second)
	doubled := PDFLink{URL: "https://www.example.org/page" + srv.URL + "/real.pdf", Name: "Doubled"}

	_, err := s.Download(context.Background(), doubled, dir)
	require.NoError(t, err)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", SafeFilename(`a/b c`))
	long := strings.Repeat("n", 100)
	assert.Len(t, SafeFilename(long), 80)
}

package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// distanceBand maps an inclusive numeric range onto a canonical label.
// Sources render distances sloppily (523m, "1,000 M"), so each standard
// distance gets a tolerance band; anything between bands is rejected rather
// than guessed at. Relay distances share a band with the individual distance
// and are told apart by the word "relay" in the source text.
type distanceBand struct {
	min, max   int
	label      string
	relayLabel string
}

var distanceBands = []distanceBand{
	{450, 550, "500m", ""},
	{900, 1100, "1000m", ""},
	{1400, 1600, "1500m", ""},
	{1900, 2100, "2000m relay", "2000m relay"},
	{2900, 3100, "3000m", "3000m relay"},
	{4900, 5100, "5000m", "5000m relay"},
}

var reDigits = regexp.MustCompile(`\d+`)

// Distance maps a raw distance token to one of the canonical short track
// labels. Values outside every band are rejected: a dropped record beats a
// silently misparsed distance.
func Distance(raw string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	digits := reDigits.FindString(lower)
	if digits == "" {
		return "", false
	}
	num, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}

	relay := strings.Contains(lower, "relay")
	for _, b := range distanceBands {
		if num < b.min || num > b.max {
			continue
		}
		if relay && b.relayLabel != "" {
			return b.relayLabel, true
		}
		return b.label, true
	}
	return "", false
}

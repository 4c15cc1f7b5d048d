package normalize

import (
	"regexp"
	"strings"
)

// Club names that PDF extraction glues onto the end of skater names.
var knownClubs = []string{
	"Direct", "Potomac", "Garden State", "Bay State", "Northbrook",
	"Oval Speed", "Cleveland Heights", "Danbury", "Puget Sound",
	"Conneticut", "Connecticut", "GSSC", "PSSC", "Salt Lake",
	"Utah Olympic", "Milwaukee", "Pettit", "Twin Cities", "Minnesota",
}

var (
	reTrailingNumbers = regexp.MustCompile(`\s+\d+(\s+\d+)*\s*$`)
	reTrailingJunk    = regexp.MustCompile(`\s+\d+.*$`)
	reNameToken       = regexp.MustCompile(`^[A-Za-z\-'\.]+$`)
)

// CleanName strips bib numbers, point totals and trailing club names from a
// raw extracted name, then validates that what remains still looks like a
// two-part personal name. Rejected input returns ok=false.
func CleanName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}

	name = reTrailingNumbers.ReplaceAllString(name, "")

	for _, club := range knownClubs {
		if strings.HasSuffix(name, " "+club) {
			name = strings.TrimSpace(name[:len(name)-len(club)-1])
		}
	}

	name = reTrailingJunk.ReplaceAllString(name, "")

	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", false
	}

	for _, p := range parts {
		if !reNameToken.MatchString(p) {
			// Keep the longest valid prefix of tokens; a name that loses
			// its second token is no longer a name.
			var valid []string
			for _, q := range parts {
				if !reNameToken.MatchString(q) {
					break
				}
				valid = append(valid, q)
			}
			if len(valid) < 2 {
				return "", false
			}
			return strings.Join(valid, " "), true
		}
	}

	return strings.Join(parts, " "), true
}

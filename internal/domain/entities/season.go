package entities

import (
	"fmt"
	"regexp"
	"strconv"
)

var reSeason = regexp.MustCompile(`^(\d{4})-(\d{4})`)

// SeasonForDate derives a "YYYY-YYYY" season label from a YYYY-MM-DD date.
// A competitive season spans roughly August through July, so dates from
// August onward open a new season. Returns false if the date is unusable.
func SeasonForDate(date string) (string, bool) {
	if len(date) < 7 {
		return "", false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	if month >= 8 {
		return fmt.Sprintf("%d-%d", year, year+1), true
	}
	return fmt.Sprintf("%d-%d", year-1, year), true
}

// SeasonYears splits a "YYYY-YYYY" season label into its start and end years.
func SeasonYears(season string) (start, end int, ok bool) {
	m := reSeason.FindStringSubmatch(season)
	if m == nil {
		return 0, 0, false
	}
	start, _ = strconv.Atoi(m[1])
	end, _ = strconv.Atoi(m[2])
	return start, end, true
}

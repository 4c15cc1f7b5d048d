package entities

// TrendEntry is one timed race in a skater's per-distance history.
type TrendEntry struct {
	Time        float64 `json:"time"`
	TimeStr     string  `json:"time_str"`
	Date        *string `json:"date"`
	Competition string  `json:"competition"`
	Place       *int    `json:"place"`
	Source      string  `json:"source"`
}

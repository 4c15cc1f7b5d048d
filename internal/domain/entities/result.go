// Package entities defines the core data types of the results pipeline.
package entities

// Result is one row per skater-race-event in the canonical results file.
// Nullable fields are pointers so that absent values serialize as JSON null,
// which downstream consumers rely on.
type Result struct {
	Skater      string  `json:"skater"`
	Competition string  `json:"competition"`
	Season      string  `json:"season"`
	Date        *string `json:"date"`
	Distance    string  `json:"distance"`
	Category    string  `json:"category"`
	Place       *int    `json:"place"`
	Time        *string `json:"time"`

	// Repair-pass markers. Omitted unless a fix touched the record.
	DistanceFixed    bool `json:"distance_fixed,omitempty"`
	CategoryInferred bool `json:"category_inferred,omitempty"`
	DateInferred     bool `json:"date_inferred,omitempty"`
}

// DedupKey is the composite identity of a result. Two records with the same
// key are the same race outcome; the first occurrence wins.
type DedupKey struct {
	Skater      string
	Competition string
	Distance    string
	Category    string
	Place       int
	HasPlace    bool
}

// Key returns the deduplication key for the result.
func (r *Result) Key() DedupKey {
	k := DedupKey{
		Skater:      r.Skater,
		Competition: r.Competition,
		Distance:    r.Distance,
		Category:    r.Category,
	}
	if r.Place != nil {
		k.Place = *r.Place
		k.HasPlace = true
	}
	return k
}

// RawResult is a single row parsed out of a PDF result sheet, before
// cleaning. Field names follow the raw results file schema.
type RawResult struct {
	Rank        int     `json:"rank"`
	Skater      string  `json:"skater"`
	Time        string  `json:"time"`
	Distance    string  `json:"distance"`
	Category    string  `json:"category"`
	Competition string  `json:"competition"`
	Date        *string `json:"date"`
}

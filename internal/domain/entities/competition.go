package entities

// RaceResult is one line of a race as extracted from a PDF, before name
// cleaning or time validation.
type RaceResult struct {
	Place *int    `json:"place"`
	Name  string  `json:"name"`
	Club  *string `json:"club"`
	Time  *string `json:"time"`
}

// Race groups the results of one distance/category section of a competition.
type Race struct {
	Distance string       `json:"distance"`
	Category string       `json:"category"`
	Results  []RaceResult `json:"results"`
}

// Competition is one parsed competition document with its races.
type Competition struct {
	Date   *string `json:"date"`
	Name   string  `json:"name"`
	Season string  `json:"season"`
	Type   string  `json:"type,omitempty"`
	PDFURL string  `json:"pdf_url,omitempty"`
	Races  []Race  `json:"races"`
}

// CompetitionSummary is the per-document entry recorded in the raw results
// file so a batch run can skip documents it already processed.
type CompetitionSummary struct {
	Name        string  `json:"name"`
	Date        *string `json:"date"`
	ResultCount int     `json:"result_count"`
}

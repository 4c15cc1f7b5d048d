package entities

// Skater is a per-name profile accumulated during integration.
type Skater struct {
	Name      string            `json:"name"`
	Seasons   []string          `json:"seasons"`
	BestTimes map[string]string `json:"best_times"`
}

// IndexedSkater is a skater with a stable integer identity, as produced by
// the newer pipeline. Names are reconciled to IDs through variant matching.
type IndexedSkater struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

package datafiles

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Checkpoint is the sidecar file the batch parser writes alongside its
// output so an interrupted run can resume without reprocessing completed
// documents.
type Checkpoint struct {
	RunID     string   `json:"run_id"`
	UpdatedAt string   `json:"updated_at"`
	Processed []string `json:"processed"`
}

// CheckpointPath derives the sidecar path for an output file.
func CheckpointPath(outputPath string) string {
	return outputPath + ".checkpoint.json"
}

// LoadCheckpoint reads the sidecar for outputPath. A missing sidecar starts
// a fresh run with a new run ID.
func LoadCheckpoint(outputPath string) (*Checkpoint, error) {
	path := CheckpointPath(outputPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Checkpoint{RunID: uuid.New().String()}, nil
	}

	var cp Checkpoint
	if err := Load(path, &cp); err != nil {
		return nil, err
	}
	if cp.RunID == "" {
		cp.RunID = uuid.New().String()
	}
	return &cp, nil
}

// Done reports whether a competition was already processed in this run.
func (c *Checkpoint) Done(name string) bool {
	for _, p := range c.Processed {
		if p == name {
			return true
		}
	}
	return false
}

// Mark records a processed competition.
func (c *Checkpoint) Mark(name string) {
	if !c.Done(name) {
		c.Processed = append(c.Processed, name)
	}
}

// Save writes the sidecar next to outputPath.
func (c *Checkpoint) Save(outputPath string) error {
	c.UpdatedAt = time.Now().Format(time.RFC3339)
	return Save(CheckpointPath(outputPath), c)
}

// Clear removes the sidecar after a completed run.
func (c *Checkpoint) Clear(outputPath string) {
	os.Remove(CheckpointPath(outputPath))
}

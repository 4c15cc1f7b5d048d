// Package ports defines the interfaces between domain services and
// infrastructure.
package ports

import (
	"context"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

// Counts summarizes the loaded store.
type Counts struct {
	Skaters       int
	Results       int
	PersonalBests int
}

// PersonalBest is one row of the personal_bests table joined to its skater.
type PersonalBest struct {
	Skater   string
	Distance string
	Time     string
}

// Store is the queryable relational store the pipeline loads into. The load
// is destructive and idempotent: EnsureSchema drops and recreates every
// table, so running the build twice against the same input yields the same
// rows.
type Store interface {
	// EnsureSchema drops and recreates the destination schema.
	EnsureSchema(ctx context.Context) error

	// SaveSkater inserts a skater and returns its generated ID.
	SaveSkater(ctx context.Context, skater *entities.Skater) (int64, error)

	// SavePersonalBest inserts one distance/time pair for a skater. A second
	// insert for the same (skater, distance) is ignored.
	SavePersonalBest(ctx context.Context, skaterID int64, distance, time string) error

	// SaveResult inserts one result row referencing an already-saved skater.
	SaveResult(ctx context.Context, skaterID int64, result *entities.Result) error

	// Counts returns row counts for the loaded store.
	Counts(ctx context.Context) (Counts, error)

	// TopPersonalBests returns the fastest personal bests for a distance.
	TopPersonalBests(ctx context.Context, distance string, limit int) ([]PersonalBest, error)

	// Close releases the underlying connection.
	Close() error
}

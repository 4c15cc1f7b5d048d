// Package sqlite provides the SQLite implementation of the results store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/skatedata/shorttrack/internal/domain/entities"
	"github.com/skatedata/shorttrack/internal/domain/ports"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository opens (or creates) the SQLite database at path.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema drops and recreates the destination schema. The load is
// run-once and deterministic, so a clean slate beats migration logic.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	DROP TABLE IF EXISTS personal_bests;
	DROP TABLE IF EXISTS results;
	DROP TABLE IF EXISTS skaters;

	CREATE TABLE skaters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		seasons TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		skater_id INTEGER NOT NULL,
		competition TEXT,
		season TEXT,
		date TEXT,
		distance TEXT NOT NULL,
		category TEXT,
		place INTEGER,
		time TEXT,
		FOREIGN KEY (skater_id) REFERENCES skaters(id)
	);

	CREATE TABLE personal_bests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		skater_id INTEGER NOT NULL,
		distance TEXT NOT NULL,
		time TEXT NOT NULL,
		FOREIGN KEY (skater_id) REFERENCES skaters(id),
		UNIQUE(skater_id, distance)
	);

	CREATE INDEX idx_results_skater ON results(skater_id);
	CREATE INDEX idx_results_distance ON results(distance);
	CREATE INDEX idx_results_season ON results(season);
	CREATE INDEX idx_skaters_name ON skaters(name);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveSkater inserts a skater and returns its generated ID.
func (r *Repository) SaveSkater(ctx context.Context, skater *entities.Skater) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO skaters (name, seasons) VALUES (?, ?)`,
		skater.Name,
		strings.Join(skater.Seasons, ","),
	)
	if err != nil {
		return 0, fmt.Errorf("saving skater %q: %w", skater.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading skater id: %w", err)
	}
	return id, nil
}

// SavePersonalBest inserts one personal best; duplicates for the same
// (skater, distance) are ignored.
func (r *Repository) SavePersonalBest(ctx context.Context, skaterID int64, distance, time string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO personal_bests (skater_id, distance, time) VALUES (?, ?, ?)`,
		skaterID, distance, time,
	)
	if err != nil {
		return fmt.Errorf("saving personal best: %w", err)
	}
	return nil
}

// SaveResult inserts one result row.
func (r *Repository) SaveResult(ctx context.Context, skaterID int64, result *entities.Result) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO results (skater_id, competition, season, date, distance, category, place, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		skaterID,
		result.Competition,
		result.Season,
		result.Date,
		result.Distance,
		result.Category,
		result.Place,
		result.Time,
	)
	if err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// Counts returns row counts for the loaded store.
func (r *Repository) Counts(ctx context.Context) (ports.Counts, error) {
	var c ports.Counts
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM skaters", &c.Skaters},
		{"SELECT COUNT(*) FROM results", &c.Results},
		{"SELECT COUNT(*) FROM personal_bests", &c.PersonalBests},
	}
	for _, q := range queries {
		if err := r.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return ports.Counts{}, fmt.Errorf("counting rows: %w", err)
		}
	}
	return c, nil
}

// TopPersonalBests returns the fastest personal bests for a distance,
// ordered by time.
func (r *Repository) TopPersonalBests(ctx context.Context, distance string, limit int) ([]ports.PersonalBest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.name, pb.distance, pb.time
		FROM personal_bests pb
		JOIN skaters s ON pb.skater_id = s.id
		WHERE pb.distance = ?
		ORDER BY pb.time
		LIMIT ?`,
		distance, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying personal bests: %w", err)
	}
	defer rows.Close()

	var bests []ports.PersonalBest
	for rows.Next() {
		var pb ports.PersonalBest
		if err := rows.Scan(&pb.Skater, &pb.Distance, &pb.Time); err != nil {
			return nil, fmt.Errorf("scanning personal best: %w", err)
		}
		bests = append(bests, pb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading personal bests: %w", err)
	}
	return bests, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/skatedata/shorttrack/internal/domain/ports"
	"github.com/skatedata/shorttrack/internal/infrastructure/config"
	"github.com/skatedata/shorttrack/internal/infrastructure/relationaldb/sqlite"
)

// withConfig loads config from the working directory and calls the provided
// function.
func withConfig(fn func(*config.Config) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	return fn(cfg)
}

// withStore opens the SQLite store for a loaded config and handles cleanup.
func withStore(cfg *config.Config, fn func(ports.Store) error) error {
	repo, err := sqlite.NewRepository(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer repo.Close()

	return fn(repo)
}

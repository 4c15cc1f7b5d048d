package main

// Default limits for CLI commands.
const (
	// DefaultTopLimit caps the leaderboard printed after a store build.
	DefaultTopLimit = 10
	// SaveEvery is how many parsed documents go by between checkpoint
	// writes.
	SaveEvery = 10
)

package pipeline

import (
	"context"
	"time"
)

// Pipeline defines the interface that all file import flows must implement
type Pipeline interface {
	// Name returns the unique identifier for this pipeline
	Name() string

	// Validate checks if the input file is valid for this pipeline
	Validate(inputFile string) error

	// Process imports a single input file
	Process(ctx context.Context, inputFile string) error
}

// Config holds configuration for a pipeline instance
type Config struct {
	Name          string
	WorkerCount   int           // Number of concurrent workers per batch
	RetryAttempts int           // Number of attempts per file
	RetryBackoff  time.Duration // Backoff duration between attempts
}

// DefaultConfig returns sensible defaults
func DefaultConfig(name string) Config {
	return Config{
		Name:          name,
		WorkerCount:   4,
		RetryAttempts: 3,
		RetryBackoff:  30 * time.Second,
	}
}

// BatchResult summarizes one batch run
type BatchResult struct {
	TotalFiles     int
	ProcessedFiles int
	FailedFiles    []string
	StartedAt      time.Time
	CompletedAt    time.Time
}

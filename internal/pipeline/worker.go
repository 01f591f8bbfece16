package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Worker processes files for a specific pipeline
type Worker struct {
	pipeline Pipeline
	config   Config
}

// NewWorker creates a new pipeline worker
func NewWorker(pipeline Pipeline, config Config) *Worker {
	return &Worker{
		pipeline: pipeline,
		config:   config,
	}
}

// ProcessBatch processes a batch of files concurrently
func (w *Worker) ProcessBatch(ctx context.Context, files []string) (*BatchResult, error) {
	log.Printf("[%s] Starting batch processing: %d files", w.pipeline.Name(), len(files))

	result := &BatchResult{
		TotalFiles: len(files),
		StartedAt:  time.Now(),
	}

	workerCount := w.config.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}

	jobChan := make(chan string, len(files))
	errChan := make(chan error, workerCount)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	// Start workers
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for file := range jobChan {
				if err := w.processFile(ctx, file); err != nil {
					log.Printf("[%s] Worker %d failed to process %s: %v",
						w.pipeline.Name(), workerID, file, err)
					mu.Lock()
					result.FailedFiles = append(result.FailedFiles, file)
					mu.Unlock()
					select {
					case errChan <- err:
					default:
					}
					continue
				}
				mu.Lock()
				result.ProcessedFiles++
				mu.Unlock()
			}
		}(i)
	}

	// Enqueue jobs
	for _, file := range files {
		select {
		case <-ctx.Done():
			close(jobChan)
			return result, ctx.Err()
		case jobChan <- file:
		}
	}
	close(jobChan)

	// Wait for all workers
	wg.Wait()
	close(errChan)

	result.CompletedAt = time.Now()

	// Check for errors
	if err := <-errChan; err != nil {
		return result, err
	}

	log.Printf("[%s] Batch processing completed: %d/%d files",
		w.pipeline.Name(), result.ProcessedFiles, result.TotalFiles)

	return result, nil
}

// processFile validates and imports a single file, retrying failures
func (w *Worker) processFile(ctx context.Context, file string) error {
	startTime := time.Now()

	log.Printf("[%s] Processing file: %s", w.pipeline.Name(), file)

	// Validate file
	if err := w.pipeline.Validate(file); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	attempts := w.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = w.pipeline.Process(ctx, file); err == nil {
			break
		}
		if attempt < attempts {
			log.Printf("[%s] Will retry %s (attempt %d/%d): %v",
				w.pipeline.Name(), file, attempt, attempts, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.RetryBackoff):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	log.Printf("[%s] Completed %s in %v", w.pipeline.Name(), file, time.Since(startTime))

	return nil
}

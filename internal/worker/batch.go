package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pvolkov/koiscope/internal/pipeline"
)

// Loader defines the interface for loading one catalog source
type Loader interface {
	LoadCatalog(ctx context.Context, source string) (*pipeline.LoadOutcome, error)
}

// LoadJob loads one catalog through the shared loader, pacing remote fetches
// with the batch limiter
type LoadJob struct {
	Source  string
	Loader  Loader
	Limiter *Limiter
}

// Execute executes the load job
func (j *LoadJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &LoadResult{Source: j.Source, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	outcome, err := j.Loader.LoadCatalog(ctx, j.Source)
	if err != nil {
		return &LoadResult{Source: j.Source, Error: err}
	}
	return &LoadResult{Source: j.Source, Outcome: outcome}
}

// LoadResult represents the result of a catalog load job
type LoadResult struct {
	Source  string
	Outcome *pipeline.LoadOutcome
	Error   error
}

// GetError returns the error from the load result
func (r *LoadResult) GetError() error {
	return r.Error
}

// BatchProcessor loads multiple catalog sources concurrently
type BatchProcessor struct {
	loader      Loader
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. A non-positive rate
// disables fetch pacing.
func NewBatchProcessor(loader Loader, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		loader:      loader,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessSources loads the given catalog sources concurrently. Cancelling
// ctx stops further submissions and aborts in-flight loads.
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*LoadResult {
	if len(sources) == 0 {
		return []*LoadResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, source := range sources {
		queued := pool.Submit(&LoadJob{
			Source:  source,
			Loader:  b.loader,
			Limiter: b.limiter,
		})
		if !queued {
			break
		}
	}

	results := pool.Wait()

	loadResults := make([]*LoadResult, len(results))
	for i, result := range results {
		loadResults[i] = result.(*LoadResult)
	}

	return loadResults
}

// ProcessFile reads catalog sources from a file and loads them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*LoadResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads catalog paths or URLs from a file, one per line,
// skipping blank lines and '#' comments and deduplicating repeats
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

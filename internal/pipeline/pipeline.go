package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pvolkov/koiscope/internal/cache"
	"github.com/pvolkov/koiscope/internal/model"
	"github.com/pvolkov/koiscope/internal/snapshot"
)

// Pipeline orchestrates one catalog load: fetch the blob (through the cache
// for remote sources), build the immutable snapshot, assemble the report.
type Pipeline struct {
	fetcher  *Fetcher
	cache    cache.Cache // nil when caching is disabled
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a new pipeline from the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var blobCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".koiscope", "cache")
			}
		}
		if dir != "" {
			blobCache = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
		}
	}

	return &Pipeline{
		fetcher:  NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.InsecureTLS),
		cache:    blobCache,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// LoadOutcome contains the snapshot and report for one loaded catalog
type LoadOutcome struct {
	Snapshot *snapshot.Snapshot
	Report   *model.CatalogReport
}

// LoadCatalog loads one catalog source end to end. Remote blobs are served
// from the cache when possible; local files always come from disk. Row-level
// defects are dropped and counted inside the snapshot build; only total
// failures (unreachable source, empty dataset) surface as errors.
func (p *Pipeline) LoadCatalog(ctx context.Context, source string) (*LoadOutcome, error) {
	fetched, err := p.fetchCached(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	snap, err := snapshot.Build(fetched.Text)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	report := &model.CatalogReport{
		Source:    fetched.Source,
		Subject:   fetched.Subject,
		LoadedAt:  time.Now().UTC(),
		Fetch:     fetched.Meta,
		Summary:   snap.Summary,
		Featured:  snap.Featured(p.config.Catalog.FeaturedCount),
		Drops:     snap.Drops,
		StarCount: len(snap.Stars),
		Bounds:    snap.Bounds,
	}

	return &LoadOutcome{Snapshot: snap, Report: report}, nil
}

// fetchCached wraps the fetcher with the blob cache for remote sources
func (p *Pipeline) fetchCached(ctx context.Context, source string) (*FetchResult, error) {
	if p.cache == nil || !IsRemote(source) {
		return p.fetcher.Fetch(ctx, source)
	}

	key := cache.Key(source)
	if data, found := p.cache.Get(key); found {
		return &FetchResult{
			Text:    string(data),
			Source:  source,
			Subject: subjectFromSource(source),
			Meta:    &model.FetchMeta{FromCache: true},
		}, nil
	}

	result, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(key, []byte(result.Text), p.config.Cache.TTL); err != nil {
		// Cache failures never fail the load
		fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
	}

	return result, nil
}

// RenderReport renders the report to the configured outputs: JSON and
// Markdown files when paths are given, plus the stdout summary.
func (p *Pipeline) RenderReport(report *model.CatalogReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// Renderer exposes the pipeline's renderer for callers that write other
// payloads (star maps, feature exports) alongside reports
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

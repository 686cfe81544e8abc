package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options as long as the
// cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	a, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Album = a
	result.Stats.Items = a.Len()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Debug("loaded album",
		"title", a.Title,
		"items", a.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	doc, layoutHit, err := r.LayoutWithCacheInfo(ctx, a, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = doc
	result.Stats.Columns = doc.Columns
	result.Stats.Height = doc.Height
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	if hash, err := cache.HashJSON(doc); err == nil {
		result.LayoutHash = hash
	}

	r.Logger.Info("computed layout",
		"items", a.Len(),
		"columns", doc.Columns,
		"height", doc.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the album's layout with caching and reports
// whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, a *album.Album, opts Options) (layout.Document, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Document{}, false, err
	}

	itemsHash, err := cache.HashJSON(struct {
		Title string        `json:"title"`
		Items []album.Entry `json:"items"`
	}{a.Title, a.Items})
	if err != nil {
		return layout.Document{}, false, fmt.Errorf("hash album: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(itemsHash, opts.LayoutKeyOpts(opts.GridConfig(a)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := layout.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return doc, true, nil
			}
			// Unreadable entries fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	doc, err := ComputeLayout(ctx, a, opts)
	if err != nil {
		return layout.Document{}, false, err
	}

	if data, err := doc.MarshalIndented(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return doc, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, a *album.Album, opts Options) (layout.Document, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, a, opts)
	return doc, err
}

// RenderWithCacheInfo renders every requested format with caching and reports
// whether all of them came from the cache. Only formats missing from the
// cache are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash layout: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := renderFormats(ctx, doc, missing, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

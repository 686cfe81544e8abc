// Package pipeline runs the album → layout → render pipeline shared by the
// CLI and the HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate an album manifest, or take one inline
//  2. Layout: place the album's items with a [flexgrid.Grid]
//  3. Render: produce the requested formats (JSON, SVG, text) concurrently
//
// Layouts and artifacts are cached by content hash, so re-running with the
// same items, grid settings and width is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    AlbumPath: "album.toml",
//	    Width:     1200,
//	    Formats:   []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/cache"
	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200.0

	// MaxWidth bounds the container width accepted by the pipeline.
	MaxWidth = 100_000.0
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{string(render.FormatJSON)}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// Layout and render settings support JSON serialization for API requests.
type Options struct {
	// Load options
	AlbumPath string       `json:"-"`
	Album     *album.Album `json:"-"`

	// Layout options
	Width float64          `json:"width,omitempty"`
	Grid  *flexgrid.Config `json:"grid,omitempty"` // replaces the album's grid settings
	// MinColumnWidth overrides a single grid setting when positive.
	MinColumnWidth float64 `json:"min_column_width,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	ImageBase   string   `json:"image_base,omitempty"`
	Background  string   `json:"background,omitempty"`
	TextColumns int      `json:"text_columns,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Album is the loaded album.
	Album *album.Album

	// Layout is the computed layout.
	Layout layout.Document

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Columns    int
	Height     float64
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateWidth checks that a container width is usable.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || w <= 0 || w > MaxWidth {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "width must be in (0, %g], got %v", MaxWidth, w)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	_, err := render.ParseFormats(formats)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that an album source is set.
func (o *Options) ValidateForLoad() error {
	if o.Album == nil && o.AlbumPath == "" {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "album or album path is required")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateWidth(o.Width); err != nil {
		return err
	}
	if o.MinColumnWidth < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "min_column_width must be >= 0, got %v", o.MinColumnWidth)
	}
	if o.Grid != nil {
		return o.Grid.Validate()
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.TextColumns == 0 {
		o.TextColumns = render.DefaultTextColumns
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering. Formats are
// normalized to their canonical names.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	formats, err := render.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = make([]string, len(formats))
	for i, f := range formats {
		o.Formats[i] = string(f)
	}
	if o.TextColumns < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "text_columns must be positive, got %d", o.TextColumns)
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// GridConfig returns the grid settings for a: the album's own, replaced by
// Grid if set, with MinColumnWidth applied on top.
func (o *Options) GridConfig(a *album.Album) flexgrid.Config {
	cfg := a.Grid
	if o.Grid != nil {
		cfg = *o.Grid
	}
	if o.MinColumnWidth > 0 {
		cfg.MinColumnWidth = o.MinColumnWidth
	}
	return cfg
}

// RenderOptions translates the render settings for pkg/render.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithTextColumns(o.TextColumns)}
	if o.Labels {
		opts = append(opts, render.WithLabels())
	}
	if o.ImageBase != "" {
		opts = append(opts, render.WithImages(o.ImageBase))
	}
	if o.Background != "" {
		opts = append(opts, render.WithBackground(o.Background))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(cfg flexgrid.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Config: cfg,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch render.Format(format) {
	case render.FormatSVG:
		k.Labels = o.Labels
		k.ImageBase = o.ImageBase
		k.Background = o.Background
	case render.FormatText:
		k.TextColumns = o.TextColumns
	}
	return k
}

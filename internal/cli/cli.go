// Package cli implements the flexgrid command-line interface.
//
// Commands:
//   - layout: lay out an album and write the layout document
//   - render: lay out an album and write SVG, text or JSON artifacts
//   - preview: resize a layout interactively in the terminal
//   - serve: run the HTTP layout service
//   - cache: inspect and clear the local layout cache
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/buildinfo"
	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// appName names the cache directory and the binary.
const appName = "flexgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flexgrid packs photos into gap-free masonry columns",
		Long: `Flexgrid lays out an ordered album of images in equal-width columns.
Wide images may span several columns; the columns beneath them are cropped
slightly so the spanning image sits flush.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flexgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// gridFlags binds the layout settings shared by layout, render and preview.
func gridFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64VarP(&opts.Width, "width", "w", pipeline.DefaultWidth, "container width in pixels")
	cmd.Flags().Float64Var(&opts.MinColumnWidth, "min-column-width", 0, "minimum column width (default: from album)")
}

// parseFormats splits the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	return strings.Split(s, ",")
}

// outputPath derives the path for one artifact. With a single format an
// explicit output is used as is; otherwise it is treated as a base path.
// Layout documents get a ".layout.json" suffix so they never overwrite an
// album.json input.
func outputPath(output, input string, format render.Format, single bool) string {
	if output != "" && single {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if format == render.FormatJSON {
		return base + ".layout" + format.Ext()
	}
	return base + format.Ext()
}

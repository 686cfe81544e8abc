package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [album.toml|album.json|album.layout.json]",
		Short: "Render an album or a computed layout",
		Long: `Render an album or a computed layout.

Given an album, render lays it out first. Given a layout document written by
'layout' (*.layout.json), it renders the stored geometry as is; the layout
flags are then ignored.

Formats: svg (default), txt, json. Several formats can be given as a
comma-separated list, in which case --output is used as a base path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if strings.HasSuffix(args[0], layoutSuffix) {
				return c.runRenderLayout(cmd.Context(), args[0], opts, output)
			}
			opts.AlbumPath = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), txt, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	gridFlags(cmd, &opts)

	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw item ids on blocks (svg)")
	cmd.Flags().StringVar(&opts.ImageBase, "images", "", "embed images, resolving src against this base URL or path (svg)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color (svg)")
	cmd.Flags().IntVar(&opts.TextColumns, "text-columns", render.DefaultTextColumns, "character width (txt)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.AlbumPath+"...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, opts.AlbumPath, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", res.Album.Title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Items, res.Stats.Columns, res.Stats.Height, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}

func (c *CLI) runRenderLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	doc, err := layout.ReadFile(input)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	artifacts, err := pipeline.RenderAll(ctx, doc, opts)
	if err != nil {
		return err
	}
	prog.done("rendered layout", "formats", opts.Formats)

	base := strings.TrimSuffix(input, layoutSuffix) + ".json"
	paths, err := writeArtifacts(artifacts, opts.Formats, base, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(doc.Blocks), doc.Columns, doc.Height, false)
	return nil
}

// writeArtifacts writes each format's bytes and returns the paths in format
// order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		format := render.Format(f)
		path := outputPath(output, input, format, len(formats) == 1)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

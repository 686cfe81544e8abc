package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [album.toml|album.json]",
		Short: "Compute the masonry layout of an album",
		Long: `Compute the masonry layout of an album.

The album lists images in display order with their intrinsic sizes. The output
is a layout document (<album>.layout.json) holding the final position and size
of every image, which 'render' can turn into SVG or text without laying out
again.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AlbumPath = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <album>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	gridFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateForLoad(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	a, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d items...", a.Len()))
	spinner.Start()

	doc, cached, err := runner.LayoutWithCacheInfo(ctx, a, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done("laid out album", "items", a.Len(), "columns", doc.Columns)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(output, opts.AlbumPath, render.FormatJSON, true)
	if err := doc.WriteFile(path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(a.Len(), doc.Columns, doc.Height, cached)
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/render"
)

// RenderAll renders doc in every format of opts.Formats concurrently.
func RenderAll(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, error) {
	return renderFormats(ctx, doc, opts.Formats, opts)
}

func renderFormats(ctx context.Context, doc layout.Document, formats []string, opts Options) (map[string][]byte, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	renderOpts := opts.RenderOptions()

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := render.Render(doc, render.Format(format), renderOpts...)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/observability"
)

// Load returns the inline album from opts, validated, or reads the one at
// opts.AlbumPath.
func Load(ctx context.Context, opts Options) (*album.Album, error) {
	source := opts.AlbumPath
	if opts.Album != nil {
		source = "inline"
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	a, err := load(opts)

	items := 0
	if a != nil {
		items = a.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, source, items, time.Since(start), err)
	return a, err
}

func load(opts Options) (*album.Album, error) {
	if opts.Album != nil {
		if err := opts.Album.Validate(); err != nil {
			return nil, err
		}
		return opts.Album, nil
	}
	a, err := album.Load(opts.AlbumPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.AlbumPath, err)
	}
	return a, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/observability"
)

// ComputeLayout lays out the album's items at opts.Width and annotates the
// blocks with each entry's src and caption.
func ComputeLayout(ctx context.Context, a *album.Album, opts Options) (layout.Document, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, a.Len(), opts.Width)

	cfg := opts.GridConfig(a)
	doc, err := layout.Build(a.FlexItems(), opts.Width, cfg)
	observability.Pipeline().OnLayoutComplete(ctx, doc.Columns, time.Since(start), err)
	if err != nil {
		return layout.Document{}, err
	}

	doc.ID = layoutID(a, opts.Width, cfg)
	doc.Title = a.Title
	doc.Annotate(func(id string) (string, string, bool) {
		e, ok := a.Entry(id)
		return e.Src, e.Caption, ok
	})
	return doc, nil
}

// layoutID derives a name-based UUID from the layout inputs, so the same
// album at the same width always yields the same document id.
func layoutID(a *album.Album, width float64, cfg flexgrid.Config) string {
	data, err := json.Marshal(struct {
		Items  []album.Entry   `json:"items"`
		Width  float64         `json:"width"`
		Config flexgrid.Config `json:"config"`
	}{a.Items, width, cfg})
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, data).String()
}

// Package pkg holds the public libraries of flexgrid, a masonry layout
// engine for ordered image albums.
//
// # Overview
//
// Flexgrid packs a top-to-bottom sequence of images into equal-width columns
// without gaps and without reordering. An image whose aspect ratio allows it
// may span several adjacent columns; the columns beneath it are cropped
// slightly so it sits flush.
//
// # Architecture
//
// The data flow from album to artifacts:
//
//	album.toml / album.json
//	         ↓
//	    [album] package (load and validate entries)
//	         ↓
//	    [flexgrid] package (column sizing, placement, cropping)
//	         ↓
//	    [layout] package (serializable document)
//	         ↓
//	    [render] package (JSON, SVG, text)
//
// [pipeline] runs those stages with caching through [cache] and reports
// through [observability]. The CLI and the HTTP service under internal/ both
// sit on top of [pipeline].
//
// # Quick Start
//
//	a, _ := album.Load("album.toml")
//	doc, _ := layout.Build(a.FlexItems(), 1200, a.Grid)
//	svg, _ := render.Render(doc, render.FormatSVG, render.WithLabels())
//
// Driving a live grid from a resizable container:
//
//	rec := flexgrid.NewRecorder()
//	g, _ := flexgrid.New(flexgrid.WidthFunc(container.Width), rec, items, cfg)
//	// on resize
//	_ = g.Rescale()
//
// [album]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/album
// [flexgrid]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/flexgrid
// [layout]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/flexgrid/pkg/observability
package pkg

// Package flexgrid packs an ordered sequence of items into equal-width columns.
//
// # Overview
//
// A [Grid] places items top to bottom, always into the currently shortest
// column, so that reading order (left to right, top to bottom) matches the
// order in which items were submitted. Each item keeps its intrinsic aspect
// ratio; its displayed width is the column width and its height follows.
//
// Items that are wide enough may span several adjacent columns. To give such
// a "multi-column item" a straight top edge, the columns underneath are
// cropped or stretched by a common factor until they share one height. The
// amount of cropping per column is bounded by [Config.MaxColumnCrop], and the
// height of a spanning item is bounded by
// [Config.MaxMultiColumnHeightMultiplier] times the column width.
//
// # Sizing
//
// [ResolveSizing] picks the largest column count in
// [Config.MinColumns, Config.MaxColumns] whose columns are at least
// [Config.MinColumnWidth] wide, falling back to MinColumns as long as the
// resulting columns have positive width.
//
// # Placement
//
// For each item the planner scans start columns from left to right and, for
// each, grows the span one column at a time while the columns' crop ranges
// still intersect. A span is rejected when a column outside it is shorter
// than the range allows (that would leave a gap) or when the same exact span
// has already been stacked [Config.MaxSequentialMulti] times in a row. The
// first start column with any feasible span wins, using its widest span.
//
// # Collaborators
//
// The grid does not measure or draw anything itself. It asks a
// [WidthProvider] for the available width and reports geometry to a
// [Renderer]:
//
//	rec := flexgrid.NewRecorder()
//	g, err := flexgrid.New(flexgrid.FixedWidth(1200), rec, items, flexgrid.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, p := range rec.Placements() {
//	    fmt.Println(p.ID, p.X, p.Y, p.Width, p.Height)
//	}
//
// # Relayout
//
// [Grid.Rescale] and [Grid.SetMinColumnWidth] recompute the sizing and, when
// the column count or width changed, replay every item from scratch. A replay
// is committed only if every item places successfully; otherwise the grid and
// the renderer keep the previous layout.
//
// A Grid is not safe for concurrent use.
package flexgrid

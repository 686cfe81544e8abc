package flexgrid

import (
	"fmt"
	"math"
	"slices"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Grid lays out items into columns and keeps that layout current as items are
// added or the available width changes.
type Grid struct {
	cfg      Config
	width    WidthProvider
	renderer Renderer
	out      Renderer // renderer, or a batch during relayout

	items       []Item
	sizing      Sizing
	ledger      *ledger
	totalHeight float64

	lastWidth float64
	laidOut   bool
}

// New creates a grid over the given items and lays it out immediately using
// the width reported by width. A nil renderer discards all output.
func New(width WidthProvider, r Renderer, items []Item, cfg Config) (*Grid, error) {
	if width == nil {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "width provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	if r == nil {
		r = Discard
	}

	g := &Grid{
		cfg:      cfg,
		width:    width,
		renderer: r,
		out:      r,
		items:    slices.Clone(items),
		ledger:   newLedger(0),
	}
	if err := g.Rescale(); err != nil {
		return nil, err
	}
	return g, nil
}

// AddItem places one more item after all existing ones. Earlier items keep
// their columns but may be cropped to line up a multi-column item.
// On error the grid is unchanged.
func (g *Grid) AddItem(it Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if err := g.place(it); err != nil {
		return err
	}
	g.items = append(g.items, it)
	g.renderer.Resize(g.totalHeight)
	return nil
}

// Rescale re-reads the available width. If the resolved column count or
// column width changed, every item is laid out again from scratch.
func (g *Grid) Rescale() error {
	w := g.width.Width()
	if g.laidOut && w == g.lastWidth {
		return nil
	}

	s, err := ResolveSizing(w, g.cfg)
	if err != nil {
		return err
	}
	if !g.laidOut || s != g.sizing {
		if err := g.relayout(s); err != nil {
			return err
		}
	}
	g.lastWidth = w
	return nil
}

// SetMinColumnWidth changes Config.MinColumnWidth and lays the grid out again
// if that changes the column sizing.
func (g *Grid) SetMinColumnWidth(v float64) error {
	if v == g.cfg.MinColumnWidth {
		return nil
	}

	cfg := g.cfg
	cfg.MinColumnWidth = v
	if err := cfg.Validate(); err != nil {
		return err
	}
	s, err := ResolveSizing(g.lastWidth, cfg)
	if err != nil {
		return err
	}

	prev := g.cfg
	g.cfg = cfg
	if s == g.sizing {
		return nil
	}
	if err := g.relayout(s); err != nil {
		g.cfg = prev
		return err
	}
	return nil
}

// relayout replays every item onto fresh columns. The new state and the
// buffered placements are committed only if every item places.
func (g *Grid) relayout(s Sizing) error {
	prevSizing, prevLedger, prevHeight := g.sizing, g.ledger, g.totalHeight

	buf := &batch{}
	g.sizing = s
	g.ledger = newLedger(s.Columns)
	g.totalHeight = 0
	g.out = buf
	defer func() { g.out = g.renderer }()

	for i, it := range g.items {
		if err := g.place(it); err != nil {
			g.sizing, g.ledger, g.totalHeight = prevSizing, prevLedger, prevHeight
			return fmt.Errorf("relayout item %d (%q): %w", i, it.ID, err)
		}
	}

	buf.flush(g.renderer)
	g.renderer.Resize(g.totalHeight)
	g.laidOut = true
	return nil
}

// place runs one item through the planner, crops the spanned columns if
// needed, emits its placement and updates the ledger.
func (g *Grid) place(it Item) error {
	sp, err := g.largestColumnRange(it)
	if err != nil {
		return err
	}

	if sp.numCols > 1 {
		// Check every column before touching any of them.
		scales := make([]float64, sp.numCols)
		for i := range scales {
			s, err := g.columnScale(sp.col+i, sp.cropHeight)
			if err != nil {
				return err
			}
			scales[i] = s
		}
		for i, s := range scales {
			g.applyColumnScale(sp.col+i, s)
		}
	}

	col := &g.ledger.columns[sp.col]
	x := g.sizing.ColumnX(sp.col, g.cfg.Padding)
	y := col.total()
	w := g.sizing.SpanWidth(sp.numCols, g.cfg.Padding)
	h := it.Height * (w / it.Width)
	if sp.numCols > 1 {
		h = math.Min(h, g.sizing.ColumnWidth*g.cfg.MaxMultiColumnHeightMultiplier)
	}

	g.out.Place(Placement{ID: it.ID, X: x, Y: y, Width: w, Height: h, Column: sp.col, Span: sp.numCols})

	if sp.numCols == 1 {
		col.items = append(col.items, it)
		col.height += h + g.cfg.Padding
	} else {
		g.ledger.stack(sp.col, sp.numCols)
		g.ledger.resetSpan(sp.col, sp.numCols, y+h+g.cfg.Padding)
	}

	g.totalHeight = math.Max(g.totalHeight, col.total())
	return nil
}

// Config returns the grid's current configuration.
func (g *Grid) Config() Config { return g.cfg }

// Sizing returns the resolved column count and width.
func (g *Grid) Sizing() Sizing { return g.sizing }

// ColumnWidth returns the current width of a single column.
func (g *Grid) ColumnWidth() float64 { return g.sizing.ColumnWidth }

// TotalHeight returns the height of the tallest column.
func (g *Grid) TotalHeight() float64 { return g.totalHeight }

// Width returns the available width the current layout was computed for.
func (g *Grid) Width() float64 { return g.lastWidth }

// Items returns every item in submission order.
func (g *Grid) Items() []Item { return slices.Clone(g.items) }

// Len returns the number of items in the grid.
func (g *Grid) Len() int { return len(g.items) }

// Columns returns a snapshot of every column.
func (g *Grid) Columns() []ColumnState { return g.ledger.snapshot() }

// Stack returns the stack descriptor with the given id, as found in
// ColumnState.Stack.
func (g *Grid) Stack(id int) (StackDescriptor, bool) {
	if id < 0 || id >= len(g.ledger.stacks) {
		return StackDescriptor{}, false
	}
	return g.ledger.stacks[id], true
}

// Stacks returns a copy of every stack descriptor created since the last
// relayout, indexed by the ids found in ColumnState.Stack.
func (g *Grid) Stacks() []StackDescriptor { return slices.Clone(g.ledger.stacks) }

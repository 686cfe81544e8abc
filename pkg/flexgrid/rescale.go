package flexgrid

import (
	"math"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// columnScale returns the factor that brings column c's total height to
// target by scaling every item in its segment. It does not modify anything.
func (g *Grid) columnScale(c int, target float64) (float64, error) {
	col := &g.ledger.columns[c]
	if len(col.items) == 0 {
		return 1, nil
	}

	height := target - col.yBase
	padHeight := g.cfg.Padding * float64(len(col.items))
	itemsHeight := col.height - padHeight

	if height == col.height {
		return 1, nil
	}
	// Items rounded down to 0px by an earlier crop cannot be stretched back.
	scale := (height - padHeight) / itemsHeight
	if scale == 1 {
		return 1, nil
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0, ferrors.New(ferrors.ErrCodeCrop,
			"cannot crop column %d to height %.2f: padding alone needs %.2f", c, target, col.yBase+padHeight)
	}
	return scale, nil
}

// applyColumnScale resizes every item in column c's segment by scale,
// re-stacks them from the segment's top and emits their new placements.
func (g *Grid) applyColumnScale(c int, scale float64) {
	if scale == 1 {
		return
	}

	col := &g.ledger.columns[c]
	x := g.sizing.ColumnX(c, g.cfg.Padding)
	w := g.sizing.ColumnWidth

	col.height = 0
	for _, it := range col.items {
		h := math.Round(it.Height * (w / it.Width) * scale)
		g.out.Place(Placement{ID: it.ID, X: x, Y: col.yBase + col.height, Width: w, Height: h, Column: c, Span: 1})
		col.height += h + g.cfg.Padding
	}
}

// cropColumnToHeight forces column c's total height to target.
// On error the column is left untouched.
func (g *Grid) cropColumnToHeight(c int, target float64) error {
	scale, err := g.columnScale(c, target)
	if err != nil {
		return err
	}
	g.applyColumnScale(c, scale)
	return nil
}

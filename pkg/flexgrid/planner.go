package flexgrid

import (
	"math"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// span is the planner's decision for one item.
type span struct {
	col        int
	numCols    int
	cropHeight float64 // only meaningful when numCols > 1
}

// itemMaxCols returns the widest span the item's aspect ratio can justify,
// allowing it to be cropped by up to MaxMultiCrop, clamped to [1, columns].
func (g *Grid) itemMaxCols(it Item) int {
	n := len(g.ledger.columns)
	f := math.Trunc(g.cfg.MaxMultiColumnHeightMultiplier / (it.AspectRatio() * (1 - g.cfg.MaxMultiCrop)))
	switch {
	case !(f >= 1):
		return 1
	case f >= float64(n):
		return n
	}
	return int(f)
}

// largestColumnRange finds where the item goes: the first start column, left
// to right, that admits any span, together with the widest span it admits.
//
// A span [col, col+numCols) is feasible when the crop ranges of its columns
// intersect, the intersection reaches no lower than any column outside the
// span (so no gap is left above a shorter column), and it would not stack a
// (MaxSequentialMulti+1)-th item on exactly the same range. The shortest
// column always admits a single-column span, so a well-formed grid always has
// an answer.
func (g *Grid) largestColumnRange(it Item) (span, error) {
	cols := g.ledger.columns
	n := len(cols)
	itemMaxCols := g.itemMaxCols(it)

	ranges := make([]cropRange, n)
	minEnd := math.Inf(1)
	for c := range cols {
		ranges[c] = g.ledger.cropRange(c, g.cfg)
		if ranges[c].end < minEnd {
			minEnd = ranges[c].end
		}
	}

	for col := 0; col < n; col++ {
		// Every span starting here either includes the column with the
		// smallest end or is capped by its height, which is no larger.
		if ranges[col].start > minEnd {
			continue
		}

		best := 0
		var cropHeight float64

		r := ranges[col]
		for numCols := 1; numCols <= itemMaxCols && col+numCols <= n; numCols++ {
			if numCols > 1 {
				r = r.intersect(ranges[col+numCols-1])
			}
			if r.empty() {
				break
			}

			bounded := r
			for c := 0; c < n && !bounded.empty(); c++ {
				if c >= col && c < col+numCols {
					continue
				}
				bounded.end = min(bounded.end, cols[c].total())
			}
			if bounded.empty() {
				continue
			}

			if g.ledger.stackBlocked(col, numCols, g.cfg.MaxSequentialMulti) {
				continue
			}

			best = numCols
			cropHeight = bounded.mid()
		}

		if best > 0 {
			return span{col: col, numCols: best, cropHeight: cropHeight}, nil
		}
	}

	return span{}, ferrors.New(ferrors.ErrCodePlacement,
		"no column range fits item %q (%gx%g) in %d columns", it.ID, it.Width, it.Height, n)
}

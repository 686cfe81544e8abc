package flexgrid

// cropRange is the inclusive range of total column heights reachable by
// scaling a column's current segment.
type cropRange struct {
	start, end float64
}

// empty also holds for NaN bounds.
func (r cropRange) empty() bool { return !(r.start <= r.end) }

func (r cropRange) intersect(o cropRange) cropRange {
	return cropRange{start: max(r.start, o.start), end: min(r.end, o.end)}
}

func (r cropRange) mid() float64 { return (r.start + r.end) / 2 }

// cropRange returns the heights column c can be cropped or stretched to while
// no item in its segment loses more than maxCrop of a dimension.
//
// Stretching divides by (1 - maxCrop) rather than multiplying by (1 + maxCrop)
// so that it is the exact inverse of the largest crop: an item stretched this
// far loses at most maxCrop of its width.
//
// Items cropped earlier to line up a multi-column item above are not
// reconsidered; they belong to a previous segment.
func (l *ledger) cropRange(c int, cfg Config) cropRange {
	col := &l.columns[c]
	if len(col.items) == 0 {
		h := col.total()
		return cropRange{start: h, end: h}
	}

	// height includes trailing padding after every item
	padHeight := cfg.Padding * float64(len(col.items))
	itemsHeight := col.height - padHeight

	return cropRange{
		start: col.yBase + itemsHeight*(1-cfg.MaxColumnCrop) + padHeight,
		end:   col.yBase + itemsHeight/(1-cfg.MaxColumnCrop) + padHeight,
	}
}

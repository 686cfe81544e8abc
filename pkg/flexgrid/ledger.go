package flexgrid

// noStack marks a column that is not sitting on a multi-column item.
const noStack = -1

// StackDescriptor describes the multi-column item range a set of columns is
// currently built on top of. SeqCount counts how many items with exactly this
// range have been stacked in a row.
type StackDescriptor struct {
	Start    int `json:"start"`
	NumCols  int `json:"num_cols"`
	SeqCount int `json:"seq_count"`
}

// column is one column's current segment. Placing a multi-column item over a
// column starts a new segment: yBase moves below the item and height and
// items reset. The column's total height is yBase + height.
type column struct {
	yBase  float64
	height float64 // includes trailing padding
	items  []Item
	after  int // index into ledger.stacks, or noStack
}

func (c *column) total() float64 { return c.yBase + c.height }

// ledger holds the per-column state of a grid. Stack descriptors live in an
// arena; columns refer to them by index so that every column under the same
// multi-column item sees the same SeqCount.
type ledger struct {
	columns []column
	stacks  []StackDescriptor
}

func newLedger(n int) *ledger {
	l := &ledger{columns: make([]column, n)}
	for i := range l.columns {
		l.columns[i].after = noStack
	}
	return l
}

// stackOf returns the descriptor column c currently sits on.
func (l *ledger) stackOf(c int) (*StackDescriptor, bool) {
	id := l.columns[c].after
	if id == noStack {
		return nil, false
	}
	return &l.stacks[id], true
}

// stackBlocked reports whether another item over exactly [col, col+numCols)
// would exceed maxSeq consecutive multi-column items on the same range.
func (l *ledger) stackBlocked(col, numCols, maxSeq int) bool {
	if len(l.columns[col].items) > 0 {
		return false
	}
	s, ok := l.stackOf(col)
	return ok && s.Start == col && s.NumCols == numCols && s.SeqCount >= maxSeq
}

// stack records a multi-column item over [col, col+numCols). It must be
// called before the spanned segments are reset. The shared descriptor is
// bumped only when the item lands directly on the previous one; anything else
// starts a new descriptor shared by all spanned columns.
func (l *ledger) stack(col, numCols int) {
	id := l.columns[col].after
	if s, ok := l.stackOf(col); ok && len(l.columns[col].items) == 0 && s.Start == col && s.NumCols == numCols {
		s.SeqCount++
	} else {
		l.stacks = append(l.stacks, StackDescriptor{Start: col, NumCols: numCols, SeqCount: 1})
		id = len(l.stacks) - 1
	}
	for c := col; c < col+numCols; c++ {
		l.columns[c].after = id
	}
}

// resetSpan starts a new, empty segment at yBase in every spanned column.
func (l *ledger) resetSpan(col, numCols int, yBase float64) {
	for c := col; c < col+numCols; c++ {
		l.columns[c].yBase = yBase
		l.columns[c].height = 0
		l.columns[c].items = nil
	}
}

// ColumnState is a read-only snapshot of one column.
type ColumnState struct {
	Index int     `json:"index"`
	YBase float64 `json:"y_base"`
	// Height of the current segment, including trailing padding.
	Height float64 `json:"height"`
	// ItemIDs lists the items in the current segment.
	ItemIDs []string `json:"item_ids,omitempty"`
	// Stack is the id of the shared StackDescriptor, or -1.
	Stack int `json:"stack"`
}

// Total returns YBase + Height.
func (s ColumnState) Total() float64 { return s.YBase + s.Height }

func (l *ledger) snapshot() []ColumnState {
	out := make([]ColumnState, len(l.columns))
	for i, c := range l.columns {
		ids := make([]string, len(c.items))
		for j, it := range c.items {
			ids[j] = it.ID
		}
		out[i] = ColumnState{Index: i, YBase: c.yBase, Height: c.height, ItemIDs: ids, Stack: c.after}
	}
	return out
}

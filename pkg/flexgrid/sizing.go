package flexgrid

import (
	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Sizing is the resolved column count and per-column width.
type Sizing struct {
	Columns     int     `json:"columns"`
	ColumnWidth float64 `json:"column_width"`
}

// ResolveSizing picks the number of columns and their width for the given
// available width.
//
// Candidates are tried from cfg.MaxColumns down to cfg.MinColumns. The first
// count whose columns are at least cfg.MinColumnWidth wide is used; if none
// is, cfg.MinColumns is used as long as its columns still have positive
// width. Otherwise a SIZING_ERROR is returned.
func ResolveSizing(width float64, cfg Config) (Sizing, error) {
	for n := cfg.MaxColumns; n >= max(cfg.MinColumns, 1); n-- {
		w := width - cfg.Padding*float64(n-1)
		colWidth := w / float64(n)
		if !(colWidth > 0) {
			continue
		}
		if colWidth >= cfg.MinColumnWidth || n == cfg.MinColumns {
			return Sizing{Columns: n, ColumnWidth: colWidth}, nil
		}
	}
	return Sizing{}, ferrors.New(ferrors.ErrCodeSizing,
		"no column count in [%d, %d] fits width %.1f with padding %.1f",
		cfg.MinColumns, cfg.MaxColumns, width, cfg.Padding)
}

// TotalWidth returns the width covered by all columns and the padding between them.
func (s Sizing) TotalWidth(padding float64) float64 {
	return s.SpanWidth(s.Columns, padding)
}

// SpanWidth returns the width of an item spanning n columns.
func (s Sizing) SpanWidth(n int, padding float64) float64 {
	return s.ColumnWidth*float64(n) + padding*float64(n-1)
}

// ColumnX returns the left edge of column c.
func (s Sizing) ColumnX(c int, padding float64) float64 {
	return (s.ColumnWidth + padding) * float64(c)
}

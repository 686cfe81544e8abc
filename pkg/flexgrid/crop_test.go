package flexgrid

import (
	"math"
	"testing"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// columnWith builds a single-column ledger whose segment holds items of the
// given displayed heights, starting at yBase.
func columnWith(yBase float64, heights []float64, padding float64) *ledger {
	l := newLedger(1)
	col := &l.columns[0]
	col.yBase = yBase
	for i, h := range heights {
		col.items = append(col.items, Item{ID: string(rune('a' + i)), Width: 100, Height: h})
		col.height += h + padding
	}
	return l
}

func TestCropRangeEmptyColumn(t *testing.T) {
	l := newLedger(1)
	l.columns[0].yBase = 42

	r := l.cropRange(0, testConfig())
	if r.start != 42 || r.end != 42 {
		t.Errorf("cropRange() = %+v, want point at 42", r)
	}
}

func TestCropRange(t *testing.T) {
	cfg := testConfig()
	l := columnWith(50, []float64{100, 120, 80}, cfg.Padding)

	r := l.cropRange(0, cfg)

	// items: 300, padding: 30
	wantStart := 50 + 300*0.9 + 30
	wantEnd := 50 + 300/0.9 + 30
	if math.Abs(r.start-wantStart) > 1e-9 {
		t.Errorf("start = %v, want %v", r.start, wantStart)
	}
	if math.Abs(r.end-wantEnd) > 1e-9 {
		t.Errorf("end = %v, want %v", r.end, wantEnd)
	}
	if total := l.columns[0].total(); total < r.start || total > r.end {
		t.Errorf("current height %v outside crop range %+v", total, r)
	}
}

func TestCropRangeRoundTrip(t *testing.T) {
	cfg := testConfig()
	heights := []float64{100, 120, 80}
	original := columnWith(50, heights, cfg.Padding)
	full := original.cropRange(0, cfg)

	// Compress every item by the maximum crop, then stretch back.
	compressed := make([]float64, len(heights))
	for i, h := range heights {
		compressed[i] = h * (1 - cfg.MaxColumnCrop)
	}
	cropped := columnWith(50, compressed, cfg.Padding)

	if got, want := cropped.columns[0].total(), full.start; math.Abs(got-want) > 1e-9 {
		t.Errorf("fully cropped height = %v, want range start %v", got, want)
	}
	if got, want := cropped.cropRange(0, cfg).end, original.columns[0].total(); math.Abs(got-want) > 1e-9 {
		t.Errorf("stretching a fully cropped column reaches %v, want original height %v", got, want)
	}
	for i, h := range compressed {
		if back := h / (1 - cfg.MaxColumnCrop); math.Abs(back-heights[i]) > 1e-9 {
			t.Errorf("item %d round trip = %v, want %v", i, back, heights[i])
		}
	}
}

func TestCropRangeIntersect(t *testing.T) {
	tests := []struct {
		name  string
		a, b  cropRange
		want  cropRange
		empty bool
	}{
		{"overlap", cropRange{0, 10}, cropRange{5, 15}, cropRange{5, 10}, false},
		{"contained", cropRange{0, 10}, cropRange{2, 3}, cropRange{2, 3}, false},
		{"touching", cropRange{0, 10}, cropRange{10, 12}, cropRange{10, 10}, false},
		{"disjoint", cropRange{0, 10}, cropRange{11, 12}, cropRange{11, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.intersect(tt.b)
			if got != tt.want {
				t.Errorf("intersect() = %+v, want %+v", got, tt.want)
			}
			if got.empty() != tt.empty {
				t.Errorf("empty() = %v, want %v", got.empty(), tt.empty)
			}
		})
	}

	if !(cropRange{math.NaN(), 1}).empty() {
		t.Error("range with NaN bound should be empty")
	}
}

func TestColumnScale(t *testing.T) {
	cfg := testConfig()
	g := &Grid{cfg: cfg, sizing: Sizing{Columns: 1, ColumnWidth: 100}, out: Discard, renderer: Discard}
	g.ledger = columnWith(0, []float64{100, 100}, cfg.Padding)

	scale, err := g.columnScale(0, 220)
	if err != nil {
		t.Fatalf("columnScale() error: %v", err)
	}
	if scale != 1 {
		t.Errorf("scale at current height = %v, want 1", scale)
	}

	scale, err = g.columnScale(0, 200)
	if err != nil {
		t.Fatalf("columnScale() error: %v", err)
	}
	if math.Abs(scale-0.9) > 1e-9 {
		t.Errorf("scale = %v, want 0.9", scale)
	}
}

func TestCropColumnToHeight(t *testing.T) {
	cfg := testConfig()
	rec := NewRecorder()
	g := &Grid{cfg: cfg, sizing: Sizing{Columns: 1, ColumnWidth: 100}, out: rec, renderer: rec}
	g.ledger = columnWith(30, []float64{100, 100}, cfg.Padding)

	if err := g.cropColumnToHeight(0, 230); err != nil {
		t.Fatalf("cropColumnToHeight() error: %v", err)
	}

	// (230 - 30 - 20) / 200 = 0.9
	col := g.ledger.columns[0]
	if col.total() != 230 {
		t.Errorf("total = %v, want 230", col.total())
	}
	ps := rec.Placements()
	if len(ps) != 2 {
		t.Fatalf("placements = %d, want 2", len(ps))
	}
	if ps[0].Y != 30 || ps[0].Height != 90 {
		t.Errorf("first item = %+v, want y=30 height=90", ps[0])
	}
	if ps[1].Y != 130 || ps[1].Height != 90 {
		t.Errorf("second item = %+v, want y=130 height=90", ps[1])
	}
}

func TestCropColumnToHeightUnsatisfiable(t *testing.T) {
	cfg := testConfig()
	rec := NewRecorder()
	g := &Grid{cfg: cfg, sizing: Sizing{Columns: 1, ColumnWidth: 100}, out: rec, renderer: rec}
	g.ledger = columnWith(30, []float64{100, 100}, cfg.Padding)
	before := g.ledger.columns[0].height

	// padding alone needs 30 + 20
	err := g.cropColumnToHeight(0, 45)
	if !ferrors.Is(err, ferrors.ErrCodeCrop) {
		t.Fatalf("cropColumnToHeight() error = %v, want %s", err, ferrors.ErrCodeCrop)
	}
	if g.ledger.columns[0].height != before {
		t.Errorf("height changed to %v after failed crop, want %v", g.ledger.columns[0].height, before)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("failed crop emitted %d placements", len(rec.Events()))
	}
}

func TestColumnScaleZeroHeightItems(t *testing.T) {
	cfg := testConfig()
	g := &Grid{cfg: cfg, sizing: Sizing{Columns: 1, ColumnWidth: 100}, out: Discard, renderer: Discard}
	g.ledger = columnWith(0, []float64{0, 0}, cfg.Padding)

	scale, err := g.columnScale(0, 20)
	if err != nil || scale != 1 {
		t.Errorf("columnScale(current height) = %v, %v; want 1, nil", scale, err)
	}

	for _, target := range []float64{50, 15} {
		_, err := g.columnScale(0, target)
		if !ferrors.Is(err, ferrors.ErrCodeCrop) {
			t.Errorf("columnScale(%v) error = %v, want %s", target, err, ferrors.ErrCodeCrop)
		}
	}
}

func TestCropEmptyColumnIsNoop(t *testing.T) {
	g := &Grid{cfg: testConfig(), ledger: newLedger(1), out: Discard, renderer: Discard}
	g.ledger.columns[0].yBase = 10

	if err := g.cropColumnToHeight(0, 10); err != nil {
		t.Fatalf("cropColumnToHeight() error: %v", err)
	}
	if g.ledger.columns[0].total() != 10 {
		t.Errorf("total = %v, want 10", g.ledger.columns[0].total())
	}
}

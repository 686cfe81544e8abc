package render

import (
	"math"
	"strings"

	"github.com/matzehuels/flexgrid/pkg/layout"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// RenderText sketches the layout in a grid of characters cols wide. Each
// block is drawn as a box labelled with its id; multi-column blocks use '='
// for their horizontal edges.
func RenderText(doc layout.Document, cols int) string {
	if cols <= 0 || doc.Width <= 0 {
		return ""
	}

	sx := float64(cols) / doc.Width
	sy := sx / cellAspect
	rows := int(math.Ceil(doc.Height * sy))
	if rows == 0 {
		return ""
	}

	c := newCanvas(cols, rows)
	for _, b := range doc.Blocks {
		x0, x1 := c.span(b.X*sx, (b.X+b.Width)*sx, cols)
		y0, y1 := c.span(b.Y*sy, (b.Y+b.Height)*sy, rows)
		edge := '-'
		if b.Span > 1 {
			edge = '='
		}
		c.box(x0, y0, x1, y1, edge)
		c.label(x0, y0, x1, y1, b.ID)
	}
	return c.String()
}

type canvas struct {
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{cells: cells}
}

// span maps a scaled [from, to) interval to inclusive cell indices.
func (c *canvas) span(from, to float64, limit int) (int, int) {
	a := min(max(int(math.Round(from)), 0), limit-1)
	b := min(max(int(math.Round(to))-1, a), limit-1)
	return a, b
}

func (c *canvas) box(x0, y0, x1, y1 int, edge rune) {
	for x := x0; x <= x1; x++ {
		c.cells[y0][x] = edge
		c.cells[y1][x] = edge
	}
	for y := y0; y <= y1; y++ {
		c.cells[y][x0] = '|'
		c.cells[y][x1] = '|'
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.cells[p[1]][p[0]] = '+'
	}
}

func (c *canvas) label(x0, y0, x1, y1 int, id string) {
	room := x1 - x0 - 1
	if room <= 0 || y1-y0 < 2 {
		return
	}
	text := []rune(id)
	if len(text) > room {
		text = text[:room]
	}
	copy(c.cells[y0+1][x0+1:], text)
}

func (c *canvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

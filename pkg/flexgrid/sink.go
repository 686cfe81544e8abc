package flexgrid

// WidthProvider reports the width currently available to the grid, in pixels.
type WidthProvider interface {
	Width() float64
}

// FixedWidth is a WidthProvider that always reports the same width.
type FixedWidth float64

// Width implements WidthProvider.
func (w FixedWidth) Width() float64 { return float64(w) }

// WidthFunc adapts a function to a WidthProvider.
type WidthFunc func() float64

// Width implements WidthProvider.
func (f WidthFunc) Width() float64 { return f() }

// Renderer receives the geometry computed by a Grid.
//
// Place may be called several times for the same item: cropping a column to
// line up a multi-column item re-emits every item in that column. The last
// placement for an item wins. Resize is called once after each AddItem and
// once after each relayout with the new total height of the grid.
type Renderer interface {
	Place(p Placement)
	Resize(totalHeight float64)
}

// RendererFuncs adapts a pair of functions to a Renderer. Nil fields are ignored.
type RendererFuncs struct {
	PlaceFunc  func(Placement)
	ResizeFunc func(float64)
}

// Place implements Renderer.
func (r RendererFuncs) Place(p Placement) {
	if r.PlaceFunc != nil {
		r.PlaceFunc(p)
	}
}

// Resize implements Renderer.
func (r RendererFuncs) Resize(h float64) {
	if r.ResizeFunc != nil {
		r.ResizeFunc(h)
	}
}

// Discard is a Renderer that drops everything.
var Discard Renderer = RendererFuncs{}

// Recorder is an in-memory Renderer that keeps the last placement of every
// item along with the full event history.
type Recorder struct {
	order   []string
	last    map[string]Placement
	events  []Placement
	height  float64
	resizes int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{last: make(map[string]Placement)}
}

// Place implements Renderer.
func (r *Recorder) Place(p Placement) {
	if _, ok := r.last[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.last[p.ID] = p
	r.events = append(r.events, p)
}

// Resize implements Renderer.
func (r *Recorder) Resize(h float64) {
	r.height = h
	r.resizes++
}

// Placements returns the current placement of every item, ordered by the
// first time each item was placed.
func (r *Recorder) Placements() []Placement {
	out := make([]Placement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.last[id])
	}
	return out
}

// Placement returns the current placement of the item with the given id.
func (r *Recorder) Placement(id string) (Placement, bool) {
	p, ok := r.last[id]
	return p, ok
}

// Events returns every placement received, in order.
func (r *Recorder) Events() []Placement {
	return append([]Placement(nil), r.events...)
}

// TotalHeight returns the last height passed to Resize.
func (r *Recorder) TotalHeight() float64 { return r.height }

// Resizes returns how many times Resize was called.
func (r *Recorder) Resizes() int { return r.resizes }

// ClearEvents drops the event history but keeps the current placement of
// every item and the last height.
func (r *Recorder) ClearEvents() {
	r.events = nil
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.order = nil
	r.last = make(map[string]Placement)
	r.events = nil
	r.height = 0
	r.resizes = 0
}

var _ Renderer = (*Recorder)(nil)

// batch buffers placements during a relayout so they reach the renderer only
// if the whole replay succeeds.
type batch struct {
	events []Placement
}

func (b *batch) Place(p Placement) { b.events = append(b.events, p) }
func (b *batch) Resize(float64)    {}

func (b *batch) flush(r Renderer) {
	for _, p := range b.events {
		r.Place(p)
	}
	b.events = nil
}

package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
)

// Document is a finished layout.
type Document struct {
	ID          string                 `json:"id,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Width       float64                `json:"width"`
	Height      float64                `json:"height"`
	Columns     int                    `json:"columns"`
	ColumnWidth float64                `json:"column_width"`
	Config      flexgrid.Config        `json:"config"`
	Blocks      []Block                `json:"blocks"`
	State       []flexgrid.ColumnState `json:"column_state,omitempty"`
}

// Block is the final geometry of one item.
type Block struct {
	flexgrid.Placement
	Src     string `json:"src,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Build lays out items at the given width and captures the result.
func Build(items []flexgrid.Item, width float64, cfg flexgrid.Config) (Document, error) {
	rec := flexgrid.NewRecorder()
	g, err := flexgrid.New(flexgrid.FixedWidth(width), rec, items, cfg)
	if err != nil {
		return Document{}, err
	}
	return Capture(g, rec), nil
}

// Capture snapshots a grid whose output went to rec. Blocks follow the order
// in which items were first placed, which is submission order.
func Capture(g *flexgrid.Grid, rec *flexgrid.Recorder) Document {
	placements := rec.Placements()
	blocks := make([]Block, len(placements))
	for i, p := range placements {
		blocks[i] = Block{Placement: p}
	}

	s := g.Sizing()
	return Document{
		Width:       g.Width(),
		Height:      g.TotalHeight(),
		Columns:     s.Columns,
		ColumnWidth: s.ColumnWidth,
		Config:      g.Config(),
		Blocks:      blocks,
		State:       g.Columns(),
	}
}

// Block returns the block for the given item id.
func (d *Document) Block(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Annotate fills in Src and Caption for every block that fn knows about.
func (d *Document) Annotate(fn func(id string) (src, caption string, ok bool)) {
	for i := range d.Blocks {
		if src, caption, ok := fn(d.Blocks[i].ID); ok {
			d.Blocks[i].Src, d.Blocks[i].Caption = src, caption
		}
	}
}

// Validate checks the document is something a renderer can draw.
func (d *Document) Validate() error {
	if d.Width <= 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "layout width must be positive, got %v", d.Width)
	}
	if d.Height < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "layout height must be >= 0, got %v", d.Height)
	}
	for i, b := range d.Blocks {
		if b.ID == "" {
			return ferrors.New(ferrors.ErrCodeInvalidInput, "block %d has no id", i)
		}
		if b.Width < 0 || b.Height < 0 {
			return ferrors.New(ferrors.ErrCodeInvalidInput, "block %q has negative size", b.ID)
		}
	}
	return nil
}

// WriteJSON writes the document as indented JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// MarshalIndented returns the document as indented JSON.
func (d *Document) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ReadJSON decodes and validates a document. It does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadFile reads a document written by WriteFile.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteFile writes the document to path as JSON.
func (d *Document) WriteFile(path string) error {
	data, err := d.MarshalIndented()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

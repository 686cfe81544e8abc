package album

import (
	"fmt"
	"path/filepath"
	"strings"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the manifest format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", ferrors.New(ferrors.ErrCodeInvalidFormat, "unsupported manifest extension %q (want .toml or .json)", filepath.Ext(path))
}

// Album is a decoded manifest.
type Album struct {
	Title string          `json:"title,omitempty" toml:"title,omitempty"`
	Grid  flexgrid.Config `json:"grid" toml:"grid"`
	Items []Entry         `json:"items" toml:"items"`
}

// Entry is one item of an album.
type Entry struct {
	ID      string  `json:"id" toml:"id"`
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	Src     string  `json:"src,omitempty" toml:"src,omitempty"`
	Caption string  `json:"caption,omitempty" toml:"caption,omitempty"`
}

// New returns an empty album with the default grid settings.
func New(title string) *Album {
	return &Album{Title: title, Grid: flexgrid.DefaultConfig()}
}

// Add appends an entry.
func (a *Album) Add(e Entry) { a.Items = append(a.Items, e) }

// Len returns the number of entries.
func (a *Album) Len() int { return len(a.Items) }

// FlexItems converts the entries to grid items, preserving order.
func (a *Album) FlexItems() []flexgrid.Item {
	out := make([]flexgrid.Item, len(a.Items))
	for i, e := range a.Items {
		out[i] = flexgrid.Item{ID: e.ID, Width: e.Width, Height: e.Height}
	}
	return out
}

// Entry returns the entry with the given id.
func (a *Album) Entry(id string) (Entry, bool) {
	for _, e := range a.Items {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Validate checks the grid settings and every entry.
func (a *Album) Validate() error {
	if err := a.Grid.Validate(); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidManifest, err, "grid")
	}

	seen := make(map[string]int, len(a.Items))
	for i, e := range a.Items {
		if err := e.validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if j, dup := seen[e.ID]; dup {
			return ferrors.New(ferrors.ErrCodeInvalidManifest, "item %d: id %q already used by item %d", i, e.ID, j)
		}
		seen[e.ID] = i
	}
	return nil
}

func (e Entry) validate() error {
	if err := ferrors.ValidateItemID(e.ID); err != nil {
		return err
	}
	if err := ferrors.ValidateDimension("width", e.Width); err != nil {
		return fmt.Errorf("%s: %w", e.ID, err)
	}
	if err := ferrors.ValidateDimension("height", e.Height); err != nil {
		return fmt.Errorf("%s: %w", e.ID, err)
	}
	if e.Src != "" {
		if err := ferrors.ValidatePath(e.Src); err != nil {
			return fmt.Errorf("%s: %w", e.ID, err)
		}
	}
	return nil
}

package flexgrid

import (
	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Item is an element to lay out, identified by ID, with its intrinsic size.
// Only the ratio of Width to Height matters for placement.
type Item struct {
	ID     string  `json:"id" toml:"id"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// AspectRatio returns Height/Width.
func (it Item) AspectRatio() float64 { return it.Height / it.Width }

// Validate checks that the item has positive, finite dimensions.
func (it Item) Validate() error {
	if err := ferrors.ValidateDimension("width", it.Width); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidItem, err, "item %q", it.ID)
	}
	if err := ferrors.ValidateDimension("height", it.Height); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidItem, err, "item %q", it.ID)
	}
	return nil
}

// Placement is the computed geometry of one item.
// Coordinates have their origin at the top-left of the grid, Y growing down.
type Placement struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Column int     `json:"column"`
	Span   int     `json:"span"`
}

// Bottom returns Y + Height.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// Right returns X + Width.
func (p Placement) Right() float64 { return p.X + p.Width }

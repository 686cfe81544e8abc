package flexgrid

import (
	"math"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Default configuration values, tuned for photo albums.
const (
	DefaultMinColumns                     = 1
	DefaultMaxColumns                     = 5
	DefaultMinColumnWidth                 = 300.0
	DefaultPadding                        = 10.0
	DefaultMaxColumnCrop                  = 0.15
	DefaultMaxMultiCrop                   = 0.15
	DefaultMaxMultiColumnHeightMultiplier = 1.5
	DefaultMaxSequentialMulti             = 2
)

// Config bounds the column sizing and the cropping the grid may apply.
type Config struct {
	// MinColumns is the required minimum number of columns.
	MinColumns int `json:"min_columns" toml:"min_columns"`
	// MaxColumns is the maximum allowed number of columns.
	MaxColumns int `json:"max_columns" toml:"max_columns"`
	// MinColumnWidth is the minimum width of a single column, in pixels.
	MinColumnWidth float64 `json:"min_column_width" toml:"min_column_width"`
	// Padding is the blank space left between items, in pixels.
	Padding float64 `json:"padding" toml:"padding"`

	// MaxColumnCrop is the largest fraction of a single dimension that column
	// items may be cropped by to line up a multi-column item.
	MaxColumnCrop float64 `json:"max_column_crop" toml:"max_column_crop"`
	// MaxMultiCrop is the largest fraction a multi-column item may itself be
	// cropped by to fit under MaxMultiColumnHeightMultiplier.
	MaxMultiCrop float64 `json:"max_multi_crop" toml:"max_multi_crop"`
	// MaxMultiColumnHeightMultiplier caps the height of a multi-column item as
	// a multiple of the column width. Zero disables multi-column items.
	MaxMultiColumnHeightMultiplier float64 `json:"max_multi_column_height_multiplier" toml:"max_multi_column_height_multiplier"`
	// MaxSequentialMulti is how many multi-column items may be stacked over the
	// exact same columns in a row.
	MaxSequentialMulti int `json:"max_sequential_multi" toml:"max_sequential_multi"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MinColumns:                     DefaultMinColumns,
		MaxColumns:                     DefaultMaxColumns,
		MinColumnWidth:                 DefaultMinColumnWidth,
		Padding:                        DefaultPadding,
		MaxColumnCrop:                  DefaultMaxColumnCrop,
		MaxMultiCrop:                   DefaultMaxMultiCrop,
		MaxMultiColumnHeightMultiplier: DefaultMaxMultiColumnHeightMultiplier,
		MaxSequentialMulti:             DefaultMaxSequentialMulti,
	}
}

// Validate reports the first configuration field that is out of range.
func (c Config) Validate() error {
	switch {
	case c.MinColumns <= 0:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "min_columns must be positive, got %d", c.MinColumns)
	case c.MaxColumns < c.MinColumns:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "max_columns (%d) must be >= min_columns (%d)", c.MaxColumns, c.MinColumns)
	case !nonNegative(c.MinColumnWidth):
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "min_column_width must be >= 0, got %v", c.MinColumnWidth)
	case !nonNegative(c.Padding):
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "padding must be >= 0, got %v", c.Padding)
	case !fraction(c.MaxColumnCrop):
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "max_column_crop must be in [0, 1), got %v", c.MaxColumnCrop)
	case !fraction(c.MaxMultiCrop):
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "max_multi_crop must be in [0, 1), got %v", c.MaxMultiCrop)
	case !nonNegative(c.MaxMultiColumnHeightMultiplier):
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "max_multi_column_height_multiplier must be >= 0, got %v", c.MaxMultiColumnHeightMultiplier)
	case c.MaxSequentialMulti <= 0:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "max_sequential_multi must be positive, got %d", c.MaxSequentialMulti)
	}
	return nil
}

// MultiColumnEnabled reports whether items may span more than one column.
func (c Config) MultiColumnEnabled() bool {
	return c.MaxMultiColumnHeightMultiplier > 0
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func fraction(v float64) bool {
	return v >= 0 && v < 1
}

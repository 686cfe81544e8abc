package flexgrid

import ferrors "github.com/matzehuels/flexgrid/pkg/errors"

// IsSizingError reports whether err means no column count fits the width.
func IsSizingError(err error) bool { return ferrors.Is(err, ferrors.ErrCodeSizing) }

// IsPlacementError reports whether err means the planner found no column
// range for an item.
func IsPlacementError(err error) bool { return ferrors.Is(err, ferrors.ErrCodePlacement) }

// IsCropError reports whether err means a column could not be cropped to the
// requested height.
func IsCropError(err error) bool { return ferrors.Is(err, ferrors.ErrCodeCrop) }

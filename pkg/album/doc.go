// Package album reads and writes album manifests: ordered lists of items with
// their intrinsic dimensions, plus optional grid settings.
//
// # Formats
//
// Manifests are TOML or JSON. Both carry the same fields:
//
//	title = "Lisbon"
//
//	[grid]
//	min_column_width = 240
//	max_columns = 4
//
//	[[items]]
//	id = "tram"
//	width = 4032
//	height = 3024
//	src = "img/tram.jpg"
//
// The [grid] table is optional. Keys it sets override [flexgrid.DefaultConfig];
// keys it omits keep their defaults. Unknown keys are rejected in both formats.
//
// # Validation
//
// [Load], [ReadTOML] and [ReadJSON] validate what they decode: item ids must be
// non-empty and unique, dimensions finite and positive, src paths relative,
// and the grid settings in range. Validation errors carry the
// INVALID_MANIFEST or INVALID_ITEM codes from pkg/errors.
//
// Item order in the manifest is the layout order.
package album

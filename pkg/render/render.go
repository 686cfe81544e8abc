package render

import (
	"fmt"
	"slices"
	"strings"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/layout"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatText Format = "txt"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatSVG, FormatText}

// DefaultTextColumns is the default character width of FormatText output.
const DefaultTextColumns = 80

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "text/plain; charset=utf-8"
}

// ParseFormats parses a list of format names, accepting comma-separated
// entries. Duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			f := Format(strings.ToLower(strings.TrimSpace(part)))
			if f == "text" {
				f = FormatText
			}
			if f == "" {
				continue
			}
			if !slices.Contains(AllFormats, f) {
				return nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown format %q (want json, svg or txt)", part)
			}
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// Render draws doc in the given format. Options that do not apply to the
// format are ignored.
func Render(doc layout.Document, f Format, opts ...Option) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := doc.MarshalIndented()
		if err != nil {
			return nil, fmt.Errorf("marshal layout: %w", err)
		}
		return append(data, '\n'), nil
	case FormatSVG:
		return RenderSVG(doc, opts...), nil
	case FormatText:
		return []byte(RenderText(doc, newSettings(opts).textColumns)), nil
	}
	return nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown format %q", f)
}

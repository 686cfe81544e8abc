package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"

	"github.com/matzehuels/flexgrid/pkg/layout"
)

const (
	fontHeightRatio = 0.3
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

const blockCSS = `
    .block { fill: #e8e8e8; stroke: #555; stroke-width: 1; }
    .block.multi { fill: #d0dcef; }
    .block-text { font-family: sans-serif; fill: #333; }`

// Option configures rendering.
type Option func(*settings)

type settings struct {
	labels      bool
	imageBase   string
	images      bool
	background  string
	textColumns int
}

func newSettings(opts []Option) settings {
	s := settings{textColumns: DefaultTextColumns}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLabels draws each block's id in its centre (SVG).
func WithLabels() Option { return func(s *settings) { s.labels = true } }

// WithImages draws each block's Src, resolved against base, cropped to fill
// the block (SVG).
func WithImages(base string) Option {
	return func(s *settings) { s.images = true; s.imageBase = base }
}

// WithBackground fills the canvas with the given CSS colour (SVG).
func WithBackground(color string) Option { return func(s *settings) { s.background = color } }

// WithTextColumns sets the character width of text output. Values <= 0 keep
// DefaultTextColumns.
func WithTextColumns(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.textColumns = n
		}
	}
}

// RenderSVG draws one rectangle per block, in document order.
func RenderSVG(doc layout.Document, opts ...Option) []byte {
	r := newSettings(opts)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		doc.Width, doc.Height, doc.Width, doc.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", blockCSS)
	if doc.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(doc.Title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	for _, b := range doc.Blocks {
		r.renderBlock(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *settings) renderBlock(buf *bytes.Buffer, b layout.Block) {
	class := "block"
	if b.Span > 1 {
		class += " multi"
	}

	fmt.Fprintf(buf, `  <g id="block-%s">`+"\n", escapeXML(b.ID))
	fmt.Fprintf(buf, `    <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		class, b.X, b.Y, b.Width, b.Height)

	if r.images && b.Src != "" {
		fmt.Fprintf(buf, `    <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			escapeXML(r.resolve(b.Src)), b.X, b.Y, b.Width, b.Height)
	}
	if r.labels {
		fmt.Fprintf(buf, `    <text class="block-text" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			b.X+b.Width/2, b.Y+b.Height/2, fontSize(b.Width, b.Height, len(b.ID)), escapeXML(b.ID))
	}
	if b.Caption != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(b.Caption))
	}
	buf.WriteString("  </g>\n")
}

func (r *settings) resolve(src string) string {
	if r.imageBase == "" {
		return src
	}
	return path.Join(r.imageBase, src)
}

func fontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRatio
	byWidth := w / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

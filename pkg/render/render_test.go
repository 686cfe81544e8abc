package render

import (
	"encoding/json"
	"strings"
	"testing"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
	"github.com/matzehuels/flexgrid/pkg/layout"
)

func twoBlocks() layout.Document {
	return layout.Document{
		Title:  "pair",
		Width:  40,
		Height: 20,
		Blocks: []layout.Block{
			{Placement: flexgrid.Placement{ID: "a", X: 0, Y: 0, Width: 20, Height: 20, Span: 1}, Src: "a.jpg", Caption: "first & best"},
			{Placement: flexgrid.Placement{ID: "b", X: 20, Y: 0, Width: 20, Height: 20, Column: 1, Span: 1}},
		},
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []Format
		wantErr bool
	}{
		{"single", []string{"svg"}, []Format{FormatSVG}, false},
		{"comma list", []string{"json,svg", "txt"}, []Format{FormatJSON, FormatSVG, FormatText}, false},
		{"alias and case", []string{"TEXT"}, []Format{FormatText}, false},
		{"duplicates", []string{"svg", "svg,svg"}, []Format{FormatSVG}, false},
		{"empty", nil, nil, false},
		{"unknown", []string{"png"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !ferrors.Is(err, ferrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", ferrors.GetCode(err), ferrors.ErrCodeInvalidFormat)
			}
			if strings.Join(formatStrings(got), ",") != strings.Join(formatStrings(tt.want), ",") {
				t.Errorf("ParseFormats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func formatStrings(fs []Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

func TestFormatMetadata(t *testing.T) {
	if FormatSVG.Ext() != ".svg" || FormatText.Ext() != ".txt" {
		t.Errorf("Ext() = %q, %q", FormatSVG.Ext(), FormatText.Ext())
	}
	if FormatJSON.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q", FormatJSON.ContentType())
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(twoBlocks()))

	for _, want := range []string{
		`viewBox="0 0 40.0 20.0"`,
		`<title>pair</title>`,
		`<g id="block-a">`,
		`<rect class="block" x="20.00" y="0.00" width="20.00" height="20.00"/>`,
		`<title>first &amp; best</title>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s\n%s", want, svg)
		}
	}
	if strings.Contains(svg, "<text") || strings.Contains(svg, "<image") {
		t.Error("labels or images drawn without options")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := twoBlocks()
	doc.Blocks[1].Span = 2

	svg := string(RenderSVG(doc, WithLabels(), WithImages("/photos"), WithBackground("#fff")))

	for _, want := range []string{
		`<image href="/photos/a.jpg"`,
		`>a</text>`,
		`>b</text>`,
		`class="block multi"`,
		`fill="#fff"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Count(svg, "<image") != 1 {
		t.Error("image drawn for block without src")
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		n    int
		want float64
	}{
		{"clamped to max", 1000, 1000, 3, fontSizeMax},
		{"clamped to min", 10, 10, 20, fontSizeMin},
		{"height bound", 1000, 50, 3, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fontSize(tt.w, tt.h, tt.n); got != tt.want {
				t.Errorf("fontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(twoBlocks(), 40)

	edge := "+" + strings.Repeat("-", 18) + "+"
	blank := "|" + strings.Repeat(" ", 18) + "|"
	lines := []string{
		edge + edge,
		"|a" + strings.Repeat(" ", 17) + "||b" + strings.Repeat(" ", 17) + "|",
	}
	for range 7 {
		lines = append(lines, blank+blank)
	}
	lines = append(lines, edge+edge)
	want := strings.Join(lines, "\n") + "\n"

	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextMulti(t *testing.T) {
	doc := layout.Document{
		Width:  40,
		Height: 8,
		Blocks: []layout.Block{{Placement: flexgrid.Placement{ID: "wide", Width: 40, Height: 8, Span: 2}}},
	}
	got := RenderText(doc, 40)
	if !strings.HasPrefix(got, "+"+strings.Repeat("=", 38)+"+\n") {
		t.Errorf("multi-column edge not drawn with '=':\n%s", got)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if got := RenderText(layout.Document{Width: 100}, 40); got != "" {
		t.Errorf("RenderText(empty) = %q", got)
	}
	if got := RenderText(twoBlocks(), 0); got != "" {
		t.Errorf("RenderText(0 cols) = %q", got)
	}
}

func TestRender(t *testing.T) {
	doc := twoBlocks()

	data, err := Render(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Render(json) error: %v", err)
	}
	var back layout.Document
	if err := json.Unmarshal(data, &back); err != nil || len(back.Blocks) != 2 {
		t.Errorf("Render(json) produced %s (%v)", data, err)
	}

	if data, err := Render(doc, FormatSVG, WithLabels()); err != nil || !strings.Contains(string(data), "<text") {
		t.Errorf("Render(svg) = %s, %v", data, err)
	}
	if data, err := Render(doc, FormatText); err != nil || !strings.Contains(string(data), "+") {
		t.Errorf("Render(txt) = %s, %v", data, err)
	}
	data, err = Render(doc, FormatText, WithTextColumns(40))
	if err != nil || string(data) != RenderText(doc, 40) {
		t.Errorf("Render(txt, 40 cols) = %s, %v", data, err)
	}
	if _, err := Render(doc, "png"); !ferrors.Is(err, ferrors.ErrCodeInvalidFormat) {
		t.Errorf("Render(png) error = %v", err)
	}
}

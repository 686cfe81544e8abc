// Package render draws layout documents.
//
// Three output formats are supported:
//
//   - [FormatJSON]: the [layout.Document] itself, indented
//   - [FormatSVG]: one rectangle per block, optionally with labels and images
//   - [FormatText]: a character-cell sketch for terminals, see [RenderText]
//
// Use [Render] to dispatch on a format, or call [RenderSVG] and [RenderText]
// directly for format-specific options.
//
//	svg := render.RenderSVG(doc, render.WithLabels(), render.WithImages("/photos/"))
//	txt := render.RenderText(doc, 80)
package render

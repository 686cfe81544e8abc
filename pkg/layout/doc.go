// Package layout holds the serializable result of a grid layout.
//
// A [Document] is a snapshot of a finished [flexgrid.Grid]: the width it was
// computed for, the resolved columns, the configuration and one [Block] per
// item in submission order. Documents are what the pipeline caches, what the
// HTTP service returns and what the renderers in pkg/render draw.
//
//	doc, err := layout.Build(items, 1200, flexgrid.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	err = doc.WriteFile("album.layout.json")
package layout

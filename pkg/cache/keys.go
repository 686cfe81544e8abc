package cache

import "github.com/matzehuels/flexgrid/pkg/flexgrid"

// Keyer derives cache keys from pipeline inputs.
type Keyer interface {
	// LayoutKey identifies a layout of the items hashed to itemsHash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendering of the layout hashed to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the items that changes a layout.
type LayoutKeyOpts struct {
	Width  float64         `json:"width"`
	Config flexgrid.Config `json:"config"`
}

// ArtifactKeyOpts holds everything besides the layout that changes an
// artifact.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	Labels      bool   `json:"labels,omitempty"`
	ImageBase   string `json:"image_base,omitempty"`
	Background  string `json:"background,omitempty"`
	TextColumns int    `json:"text_columns,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

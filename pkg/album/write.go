package album

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Write encodes the album in the given format.
func (a *Album) Write(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(a)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	return ferrors.New(ferrors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
}

// Save writes the album to path, choosing the format from the extension.
func (a *Album) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Write(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

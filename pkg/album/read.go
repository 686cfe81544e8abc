package album

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// Load reads and validates the manifest at path, choosing the decoder from
// the file extension.
func Load(path string) (*Album, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "album %s", path)
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes and validates a manifest in the given format.
func Read(r io.Reader, format Format) (*Album, error) {
	switch format {
	case FormatTOML:
		return ReadTOML(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
}

// ReadTOML decodes and validates a TOML manifest. It does not close r.
func ReadTOML(r io.Reader) (*Album, error) {
	a := New("")
	md, err := toml.NewDecoder(r).Decode(a)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidManifest, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, ferrors.New(ferrors.ErrCodeInvalidManifest, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// ReadJSON decodes and validates a JSON manifest. It does not close r.
func ReadJSON(r io.Reader) (*Album, error) {
	a := New("")
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(a); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidManifest, err, "decode json")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

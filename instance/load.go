package instance

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/stackgrid/errors"
)

// Load reads an instance file, choosing the parser by extension:
// .xml (Alloy/Forge), .yaml/.yml and .toml (fixtures). Files with another
// extension are parsed as XML when they start with '<'.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(errors.NewNotFoundError("instance file %s", path),
				"pass the path of an exported instance (.xml, .yaml or .toml)")
		}
		return nil, errors.Wrapf(err, "failed to open instance %s", path)
	}
	defer f.Close()

	inst, err := Parse(f, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "instance %s", path)
	}
	return inst, nil
}

// Parse reads an instance from r. ext selects the format (".xml", ".yaml",
// ".yml", ".toml"); an empty or unknown ext sniffs for XML.
func Parse(r io.Reader, ext string) (*Instance, error) {
	switch strings.ToLower(ext) {
	case ".xml":
		return ParseAlloyXML(r)
	case ".yaml", ".yml":
		return ParseYAML(r)
	case ".toml":
		return ParseTOML(r)
	}

	br := bufio.NewReader(r)
	head, _ := br.Peek(512)
	if bytes.HasPrefix(bytes.TrimSpace(head), []byte("<")) {
		return ParseAlloyXML(br)
	}
	return nil, errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "instance format %q", ext),
		"supported: .xml, .yaml, .yml, .toml")
}

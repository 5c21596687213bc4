package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okra-platform/gmockgen/internal/errs"
)

// Format is the encoding of a schema document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from the file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseSchema decodes and validates a schema document
func ParseSchema(data []byte, format Format) (*Schema, error) {
	var s Schema

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errs.Wrap(err, "failed to parse YAML schema")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&s); err != nil {
			return nil, errs.Wrap(err, "failed to parse JSON schema")
		}
	default:
		return nil, errs.Newf("unknown schema format: %s", format)
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses the schema at path
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read schema %s", path)
	}

	s, err := ParseSchema(data, FormatFromPath(path))
	if err != nil {
		return nil, errs.Wrapf(err, "schema %s", path)
	}
	return s, nil
}

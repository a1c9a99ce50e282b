package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a schema file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// schemaSuffixes maps recognized file suffixes to formats.
var schemaSuffixes = []struct {
	suffix string
	format Format
}{
	{".sumtype.yaml", FormatYAML},
	{".sumtype.yml", FormatYAML},
	{".sumtype.json", FormatJSON},
	{".sumtype.toml", FormatTOML},
}

// FormatOf returns the format of a schema file by its name. A bare
// suffix such as ".sumtype.yaml" is the configuration file, not a schema.
func FormatOf(path string) (Format, bool) {
	name := strings.ToLower(filepath.Base(path))

	for _, s := range schemaSuffixes {
		if len(name) > len(s.suffix) && strings.HasSuffix(name, s.suffix) {
			return s.format, true
		}
	}

	return "", false
}

// IsSchemaFile reports whether path names a schema file.
func IsSchemaFile(path string) bool {
	_, ok := FormatOf(path)
	return ok
}

// LoadFile loads and parses a schema file from the given path.
func LoadFile(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%s is not a schema file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes schema data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema TOML: %w", err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown schema TOML keys: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	f.Package = strings.TrimSpace(f.Package)

	for i := range f.Unions {
		u := &f.Unions[i]
		u.Name = strings.TrimSpace(u.Name)

		for j := range u.Variants {
			v := &u.Variants[j]
			v.Type = strings.TrimSpace(v.Type)
			v.Name = strings.TrimSpace(v.Name)
			v.Equality = strings.ToLower(strings.TrimSpace(v.Equality))
		}
	}
}

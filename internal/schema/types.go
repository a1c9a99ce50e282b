package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is a decoded schema file.
type File struct {
	Package string   `yaml:"package" json:"package" toml:"package"`
	Imports []string `yaml:"imports" json:"imports" toml:"imports"`
	Unions  []Union  `yaml:"unions"  json:"unions"  toml:"unions"`
}

// Union is one union entry.
type Union struct {
	Name     string      `yaml:"name"     json:"name"     toml:"name"`
	Tag      TagSelector `yaml:"tag"      json:"tag"      toml:"tag"`
	AOT      bool        `yaml:"aot"      json:"aot"      toml:"aot"`
	Variants []Variant   `yaml:"variants" json:"variants" toml:"variants"`
	Empty    StringArray `yaml:"empty"    json:"empty"    toml:"empty"`

	// Line is the source line of the entry (YAML only).
	Line int `yaml:"-" json:"-" toml:"-"`
}

// Variant is one payload-carrying case.
type Variant struct {
	Type     string `yaml:"type"     json:"type"     toml:"type"`
	Name     string `yaml:"name"     json:"name"     toml:"name"`
	Nullable bool   `yaml:"nullable" json:"nullable" toml:"nullable"`
	Equality string `yaml:"equality" json:"equality" toml:"equality"`
	// Import is an extra import path the payload type needs.
	Import string `yaml:"import" json:"import" toml:"import"`
}

// UnmarshalYAML implements yaml.Unmarshaler and records the entry line.
func (u *Union) UnmarshalYAML(node *yaml.Node) error {
	type plain Union

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*u = Union(p)
	u.Line = node.Line

	return nil
}

// TagSelector is a tag-width selector, normally a width name or a number.
// The value is kept as written, whatever its shape; the builder interprets
// it and falls back to the default width for anything it does not know.
type TagSelector struct {
	Value any
	Set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TagSelector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: decoding tag: %w", node.Line, err)
		}

		*t = TagSelector{Value: v, Set: true}

		return nil
	}

	var n int64
	if node.Tag == "!!int" && node.Decode(&n) == nil {
		*t = TagSelector{Value: n, Set: true}
		return nil
	}

	*t = TagSelector{Value: node.Value, Set: true}

	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagSelector) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*t = TagSelector{Value: i, Set: true}
			return nil
		}

		*t = TagSelector{Value: n.String(), Set: true}

		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding tag: %w", err)
	}

	*t = TagSelector{Value: v, Set: true}

	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (t *TagSelector) UnmarshalTOML(v any) error {
	*t = TagSelector{Value: v, Set: true}

	return nil
}

// StringArray is a string slice that can be unmarshaled from a single string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringArray) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *StringArray) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*s = []string{x}
		return nil
	case []any:
		out := make([]string, 0, len(x))

		for _, item := range x {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string list item, got %T", item)
			}

			out = append(out, str)
		}

		*s = out

		return nil
	default:
		return errors.New("expected string or list of strings")
	}
}

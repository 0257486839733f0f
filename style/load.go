// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package style

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// specFile is the on-disk YAML layout:
//
//	default:
//	  font: IBM Plex Sans
//	  size: 11
//	  color: "000000"
//	  alignment: left
//	  space_after: 6
//	styles:
//	  heading1: {size: 24, bold: true, space_after: 8}
//	  body: {}
//	  code: {font: IBM Plex Mono, size: 10}
type specFile struct {
	Default *entry           `yaml:"default"`
	Styles  map[string]entry `yaml:"styles"`
}

// Load reads and validates a style specification file. All validation
// happens here, up front: a spec that loads cleanly cannot produce an
// invalid attribute later.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return spec, nil
}

// Parse builds a Spec from raw YAML. Callers that read the file themselves
// (tests, embedded defaults) use this directly; Load wraps failures in a
// LoadError carrying the file path.
func Parse(data []byte) (*Spec, error) {
	var file specFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse style spec: %w", err)
	}

	if file.Default == nil {
		return nil, fmt.Errorf("style spec has no %q profile", "default")
	}

	def, err := resolveDefault(*file.Default)
	if err != nil {
		return nil, err
	}

	entries := make(map[Kind]entry, len(file.Styles))
	for key, e := range file.Styles {
		kind := Kind(strings.TrimSpace(key))
		if !validKind(kind) {
			return nil, fmt.Errorf("unknown element kind %q in styles", key)
		}
		if err := validateEntry(kind, e); err != nil {
			return nil, err
		}
		entries[kind] = e
	}

	return &Spec{def: def, entries: entries}, nil
}

// resolveDefault turns the default entry into a complete attribute set.
// The default profile is the inheritance floor, so the fields that have no
// sensible zero value must be present.
func resolveDefault(e entry) (Attributes, error) {
	if err := validateEntry("default", e); err != nil {
		return Attributes{}, err
	}

	var def Attributes
	if e.Font == nil || strings.TrimSpace(*e.Font) == "" {
		return Attributes{}, fmt.Errorf("default profile: %q is required", "font")
	}
	if e.Size == nil {
		return Attributes{}, fmt.Errorf("default profile: %q is required", "size")
	}
	def.Font = *e.Font
	def.Size = *e.Size
	def.Color = "000000"
	def.Align = AlignLeft
	return e.apply(def), nil
}

// validateEntry checks attribute values for a single entry. The context
// string names the entry in errors ("default" or the element kind).
func validateEntry(context any, e entry) error {
	if e.Size != nil && *e.Size <= 0 {
		return fmt.Errorf("%v: size must be positive, got %v", context, *e.Size)
	}
	if e.SpaceBefore != nil && *e.SpaceBefore < 0 {
		return fmt.Errorf("%v: space_before must not be negative, got %v", context, *e.SpaceBefore)
	}
	if e.SpaceAfter != nil && *e.SpaceAfter < 0 {
		return fmt.Errorf("%v: space_after must not be negative, got %v", context, *e.SpaceAfter)
	}
	if e.Align != nil {
		if _, err := parseAlignment(*e.Align); err != nil {
			return fmt.Errorf("%v: %w", context, err)
		}
	}
	return nil
}

// colorSpec accepts either a hex string ("1F4E79", "#1f4e79") or an
// [r, g, b] triple.
type colorSpec struct {
	hex string
}

func (c *colorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s := strings.TrimPrefix(strings.TrimSpace(value.Value), "#")
		if len(s) != 6 {
			return fmt.Errorf("color %q: want 6 hex digits", value.Value)
		}
		for _, r := range s {
			if !isHexDigit(r) {
				return fmt.Errorf("color %q: want 6 hex digits", value.Value)
			}
		}
		c.hex = strings.ToUpper(s)
		return nil

	case yaml.SequenceNode:
		var rgb []int
		if err := value.Decode(&rgb); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		if len(rgb) != 3 {
			return fmt.Errorf("color: want [r, g, b], got %d values", len(rgb))
		}
		for _, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("color: component %d out of range 0-255", v)
			}
		}
		c.hex = fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
		return nil
	}
	return fmt.Errorf("color: want hex string or [r, g, b]")
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return true
	}
	return false
}

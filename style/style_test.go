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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const baseSpec = `
default:
  font: IBM Plex Sans
  size: 11
  color: "1A1A1A"
  space_after: 6
styles:
  heading1:
    size: 24
    bold: true
  body: {}
  code:
    font: IBM Plex Mono
    size: 10
`

func mustParse(t *testing.T, data string) *Spec {
	t.Helper()
	spec, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return spec
}

func TestInheritanceFieldByField(t *testing.T) {
	spec := mustParse(t, baseSpec)

	h1, err := spec.Resolve(Heading1)
	if err != nil {
		t.Fatalf("Resolve(heading1): %v", err)
	}
	// Set fields override the default.
	if h1.Size != 24 || !h1.Bold {
		t.Errorf("heading1 overrides not applied: %+v", h1)
	}
	// Unset fields inherit from the default, one level deep.
	if h1.Font != "IBM Plex Sans" {
		t.Errorf("heading1 font: got %q, want inherited default", h1.Font)
	}
	if h1.Color != "1A1A1A" {
		t.Errorf("heading1 color: got %q, want inherited default", h1.Color)
	}
	if h1.SpaceAfter != 6 {
		t.Errorf("heading1 space_after: got %v, want inherited 6", h1.SpaceAfter)
	}

	// An empty entry resolves to exactly the default profile.
	body, err := spec.Resolve(Body)
	if err != nil {
		t.Fatalf("Resolve(body): %v", err)
	}
	if body != spec.Default() {
		t.Errorf("empty entry: got %+v, want default %+v", body, spec.Default())
	}
}

func TestResolveUnmappedKind(t *testing.T) {
	spec := mustParse(t, baseSpec)

	_, err := spec.Resolve(Table)
	if err == nil {
		t.Fatal("Resolve(table) should fail: spec has no table entry")
	}
	if !IsUnmappedKind(err) {
		t.Errorf("expected UnmappedKindError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), `"table"`) {
		t.Errorf("error should name the kind: %v", err)
	}
}

func TestDefaultRequired(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no default", "styles:\n  body: {}\n"},
		{"default missing font", "default:\n  size: 11\n"},
		{"default missing size", "default:\n  font: Arial\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Errorf("Parse should fail for %s", tc.name)
			}
		})
	}
}

func TestUnknownKindRejected(t *testing.T) {
	spec := `
default:
  font: Arial
  size: 11
styles:
  footnote:
    size: 8
`
	_, err := Parse([]byte(spec))
	if err == nil {
		t.Fatal("Parse should reject unknown element kind")
	}
	if !strings.Contains(err.Error(), "footnote") {
		t.Errorf("error should name the offending key: %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero size", "default: {font: Arial, size: 0}\n"},
		{"negative size", "default: {font: Arial, size: 11}\nstyles:\n  body: {size: -3}\n"},
		{"negative spacing", "default: {font: Arial, size: 11}\nstyles:\n  body: {space_before: -1}\n"},
		{"bad alignment", "default: {font: Arial, size: 11}\nstyles:\n  body: {alignment: middle}\n"},
		{"short hex color", "default: {font: Arial, size: 11, color: \"FFF\"}\n"},
		{"non-hex color", "default: {font: Arial, size: 11, color: \"GGGGGG\"}\n"},
		{"rgb out of range", "default: {font: Arial, size: 11, color: [0, 0, 300]}\n"},
		{"rgb wrong arity", "default: {font: Arial, size: 11, color: [0, 0]}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Errorf("Parse should reject %s", tc.name)
			}
		})
	}
}

func TestColorForms(t *testing.T) {
	spec := mustParse(t, `
default:
  font: Arial
  size: 11
styles:
  heading1: {color: "#1f4e79"}
  heading2: {color: [31, 78, 121]}
`)

	for _, kind := range []Kind{Heading1, Heading2} {
		attrs, err := spec.Resolve(kind)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", kind, err)
		}
		if attrs.Color != "1F4E79" {
			t.Errorf("%s color: got %q, want 1F4E79", kind, attrs.Color)
		}
	}
}

func TestLoadWrapsErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if !strings.Contains(le.Error(), "missing.yaml") {
		t.Errorf("error should carry the path: %v", le)
	}
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	if err := os.WriteFile(path, []byte(baseSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !spec.Has(Heading1) || spec.Has(Table) {
		t.Error("Has should reflect the spec entries")
	}
}

func TestHeadingClamps(t *testing.T) {
	if Heading(0) != Heading1 {
		t.Errorf("Heading(0) = %s, want heading1", Heading(0))
	}
	if Heading(9) != Heading6 {
		t.Errorf("Heading(9) = %s, want heading6", Heading(9))
	}
	if Heading(3) != Heading3 {
		t.Errorf("Heading(3) = %s, want heading3", Heading(3))
	}
}

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

// Package style loads the YAML style specification that maps Markdown
// element kinds to concrete text formatting. A spec is loaded once,
// validated exhaustively, and read-only afterward.
package style

import "fmt"

// Kind identifies a category of Markdown construct that can be styled.
// The set is closed: a spec file naming anything else fails to load.
type Kind string

const (
	Title       Kind = "title"
	Subtitle    Kind = "subtitle"
	Heading1    Kind = "heading1"
	Heading2    Kind = "heading2"
	Heading3    Kind = "heading3"
	Heading4    Kind = "heading4"
	Heading5    Kind = "heading5"
	Heading6    Kind = "heading6"
	Body        Kind = "body"
	Blockquote  Kind = "blockquote"
	Code        Kind = "code"
	List        Kind = "list"
	Table       Kind = "table"
	TableHeader Kind = "table_header"
	Caption     Kind = "caption"
)

// Kinds lists every valid element kind.
var Kinds = []Kind{
	Title, Subtitle,
	Heading1, Heading2, Heading3, Heading4, Heading5, Heading6,
	Body, Blockquote, Code, List, Table, TableHeader, Caption,
}

// Heading returns the kind for a heading of the given level (1-6).
// Levels outside that range clamp to the nearest valid heading.
func Heading(level int) Kind {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Kind(fmt.Sprintf("heading%d", level))
}

func validKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Alignment is a paragraph alignment token.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

func parseAlignment(s string) (Alignment, error) {
	switch Alignment(s) {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return Alignment(s), nil
	}
	return "", fmt.Errorf("unrecognized alignment %q", s)
}

// Attributes is a fully resolved formatting attribute set for a block or run.
type Attributes struct {
	Font        string
	Size        float64 // point size
	Bold        bool
	Italic      bool
	Color       string // RRGGBB hex, no leading #
	SpaceBefore float64 // points
	SpaceAfter  float64 // points
	Align       Alignment
}

// Spec is an immutable mapping from element kinds to formatting attributes.
// Entries set a subset of fields; the rest inherit from the default profile,
// one level deep and field by field.
type Spec struct {
	def     Attributes
	entries map[Kind]entry
}

// Default returns the fallback profile used to fill unset entry fields.
func (s *Spec) Default() Attributes {
	return s.def
}

// Has reports whether the spec carries an explicit entry for kind.
func (s *Spec) Has(k Kind) bool {
	_, ok := s.entries[k]
	return ok
}

// Resolve returns the attributes for an element kind. A kind with no entry
// in the spec is an error, never a silent substitution: output styling must
// be explicit and predictable.
func (s *Spec) Resolve(k Kind) (Attributes, error) {
	e, ok := s.entries[k]
	if !ok {
		return Attributes{}, &UnmappedKindError{Kind: k}
	}
	return e.apply(s.def), nil
}

// entry holds the fields a spec file actually set for one kind. Nil fields
// inherit from the default profile.
type entry struct {
	Font        *string    `yaml:"font"`
	Size        *float64   `yaml:"size"`
	Bold        *bool      `yaml:"bold"`
	Italic      *bool      `yaml:"italic"`
	Color       *colorSpec `yaml:"color"`
	SpaceBefore *float64   `yaml:"space_before"`
	SpaceAfter  *float64   `yaml:"space_after"`
	Align       *string    `yaml:"alignment"`
}

func (e entry) apply(base Attributes) Attributes {
	out := base
	if e.Font != nil {
		out.Font = *e.Font
	}
	if e.Size != nil {
		out.Size = *e.Size
	}
	if e.Bold != nil {
		out.Bold = *e.Bold
	}
	if e.Italic != nil {
		out.Italic = *e.Italic
	}
	if e.Color != nil {
		out.Color = e.Color.hex
	}
	if e.SpaceBefore != nil {
		out.SpaceBefore = *e.SpaceBefore
	}
	if e.SpaceAfter != nil {
		out.SpaceAfter = *e.SpaceAfter
	}
	if e.Align != nil {
		// Validated during Load; parse cannot fail here.
		out.Align = Alignment(*e.Align)
	}
	return out
}

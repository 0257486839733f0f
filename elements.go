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

package mdtodocx

// ElementKind tags the variants of Element.
type ElementKind int

const (
	ElementParagraph ElementKind = iota
	ElementHeading
	ElementBlockquote
	ElementCodeBlock
	ElementListItem
	ElementTable
	ElementImage
	ElementRule
)

func (k ElementKind) String() string {
	switch k {
	case ElementParagraph:
		return "paragraph"
	case ElementHeading:
		return "heading"
	case ElementBlockquote:
		return "blockquote"
	case ElementCodeBlock:
		return "code"
	case ElementListItem:
		return "list item"
	case ElementTable:
		return "table"
	case ElementImage:
		return "image"
	case ElementRule:
		return "rule"
	}
	return "unknown"
}

// Span is an inline run of text inside a block element, carrying the local
// emphasis overrides layered onto the block's style.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Strike bool
	Link   string // non-empty for hyperlinks
	Break  bool   // hard line break; Text is ignored
}

// TableCell is one cell of a table element.
type TableCell struct {
	Spans []Span
}

// Element is one typed block of a parsed Markdown document, in source
// order. Elements are immutable once produced.
type Element struct {
	Kind ElementKind
	Line int // 1-based line in the parsed source

	Level int // heading level (1-6)

	// List item fields. Depth is 0-based nesting depth; ListID groups the
	// items of one source (sub)list so numbering restarts per list.
	Depth   int
	Ordered bool
	ListID  int

	// Code block fields
	Language string
	Text     string

	// Image fields
	Alt string
	URL string

	Spans []Span        // inline content (headings, paragraphs, quotes, list items)
	Rows  [][]TableCell // table content; first row is the header
}

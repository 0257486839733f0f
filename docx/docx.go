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

// Package docx models a Word document as an ordered sequence of formatted
// blocks and serializes it as an OOXML package. The model is deliberately
// small: paragraphs with styled text runs, tables, and rules cover what a
// styled Markdown document needs. Output is deterministic so identical
// inputs produce byte-identical files.
package docx

// Format is a bundle of typographic properties applied through a paragraph
// style definition. Alignment takes left/center/right/justify.
type Format struct {
	Font        string
	Size        float64 // points
	Bold        bool
	Italic      bool
	Color       string // RRGGBB
	SpaceBefore float64 // points
	SpaceAfter  float64 // points
	Align       string
}

// Run is a span of literal text inside a block, carrying local overrides
// layered on top of the block's style: bold, italic, a font swap for inline
// code, or a hyperlink target.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Strike bool
	Font   string // override font, "" keeps the block font
	Link   string // external URL; non-empty renders a hyperlink
	Break  bool   // line break; Text is ignored
}

// ListMarker attaches a paragraph to a numbering instance.
type ListMarker struct {
	NumID int
	Level int // 0-based nesting depth
}

// Paragraph is a styled block of runs.
type Paragraph struct {
	Style  string // paragraph style ID, "" for none
	List   *ListMarker
	Indent int // extra indent levels (nested block quotes)
	Runs   []Run
}

// Cell is one table cell: a single paragraph of runs.
type Cell struct {
	Runs []Run
}

// Table is rows of cells. The first row is the header row and uses
// HeaderStyle; all others use CellStyle.
type Table struct {
	HeaderStyle string
	CellStyle   string
	Rows        [][]Cell
}

// Rule is a horizontal rule block.
type Rule struct{}

// Block is one entry in the document body, in source order.
type Block interface{ isBlock() }

func (Paragraph) isBlock() {}
func (Table) isBlock()     {}
func (Rule) isBlock()      {}

// StyleDef is a named paragraph style definition emitted into styles.xml.
type StyleDef struct {
	ID     string
	Name   string
	Format Format
}

// Properties are the core document properties (docProps/core.xml).
// Created must already be W3CDTF-formatted; empty fields are omitted.
type Properties struct {
	Title   string
	Author  string
	Created string
}

// Document is built incrementally and serialized exactly once.
type Document struct {
	Props    Properties
	Defaults Format // document defaults (docDefaults run properties)

	styles   []StyleDef
	blocks   []Block
	numbered []bool // numbering instances; true = ordered
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// DefineStyle registers a paragraph style. Styles appear in styles.xml in
// definition order; redefining an ID replaces the earlier definition.
func (d *Document) DefineStyle(id, name string, f Format) {
	for i, s := range d.styles {
		if s.ID == id {
			d.styles[i] = StyleDef{ID: id, Name: name, Format: f}
			return
		}
	}
	d.styles = append(d.styles, StyleDef{ID: id, Name: name, Format: f})
}

// AddParagraph appends a paragraph block.
func (d *Document) AddParagraph(p Paragraph) {
	d.blocks = append(d.blocks, p)
}

// AddTable appends a table block.
func (d *Document) AddTable(t Table) {
	d.blocks = append(d.blocks, t)
}

// AddRule appends a horizontal rule block.
func (d *Document) AddRule() {
	d.blocks = append(d.blocks, Rule{})
}

// NewList allocates a numbering instance and returns its ID. Each source
// list gets its own instance so ordered lists restart at 1.
func (d *Document) NewList(ordered bool) int {
	d.numbered = append(d.numbered, ordered)
	return len(d.numbered)
}

// Blocks returns the body blocks in order.
func (d *Document) Blocks() []Block {
	return d.blocks
}

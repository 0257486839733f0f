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

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Parser is the Markdown parsing capability. Implementations produce the
// ordered element stream the renderer consumes; the engine never inspects
// Markdown syntax itself.
type Parser interface {
	Parse(source []byte) ([]Element, error)
}

// GoldmarkParser is the default Parser, backed by goldmark with the GFM
// extensions (tables, strikethrough, autolinks).
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates the default parser.
func NewGoldmarkParser() *GoldmarkParser {
	return &GoldmarkParser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse builds the element stream for a Markdown document. Markdown is
// permissive; this never fails on malformed input, only the interface
// allows it.
func (p *GoldmarkParser) Parse(source []byte) ([]Element, error) {
	doc := p.md.Parser().Parse(text.NewReader(source))
	w := &walker{
		source:     source,
		lineStarts: lineStarts(source),
	}
	w.blocks(doc, blockContext{})
	return w.elements, nil
}

// blockContext carries the structural position while walking the tree.
type blockContext struct {
	quote   int // blockquote nesting depth, 0 = not quoted
	listID  int // 0 = not inside a list
	depth   int // 0-based list nesting depth, valid when listID > 0
	ordered bool
}

type walker struct {
	source     []byte
	lineStarts []int
	elements   []Element
	lists      int // sequential list IDs
}

func (w *walker) emit(e Element) {
	w.elements = append(w.elements, e)
}

func (w *walker) blocks(parent ast.Node, ctx blockContext) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch t := n.(type) {
		case *ast.Heading:
			w.emit(Element{
				Kind:  ElementHeading,
				Level: t.Level,
				Line:  w.lineOf(t),
				Spans: w.spans(t),
			})

		case *ast.Paragraph, *ast.TextBlock:
			w.textual(n, ctx)

		case *ast.Blockquote:
			next := ctx
			next.quote++
			w.blocks(t, next)

		case *ast.List:
			next := ctx
			next.listID = w.nextListID()
			next.ordered = t.IsOrdered()
			if ctx.listID > 0 {
				next.depth = ctx.depth + 1
			} else {
				next.depth = 0
			}
			w.blocks(t, next)

		case *ast.ListItem:
			w.blocks(t, ctx)

		case *ast.FencedCodeBlock:
			w.emit(Element{
				Kind:     ElementCodeBlock,
				Language: string(t.Language(w.source)),
				Text:     w.rawLines(t),
				Line:     w.lineOf(t),
			})

		case *ast.CodeBlock:
			w.emit(Element{
				Kind: ElementCodeBlock,
				Text: w.rawLines(t),
				Line: w.lineOf(t),
			})

		case *ast.ThematicBreak:
			w.emit(Element{Kind: ElementRule, Line: w.lineOf(t)})

		case *east.Table:
			w.table(t)

		case *ast.HTMLBlock:
			// Raw HTML blocks carry no Markdown structure; keep the text
			// as a literal paragraph rather than dropping content.
			raw := strings.TrimSpace(w.rawLines(t))
			if raw != "" {
				w.emit(Element{
					Kind:  ElementParagraph,
					Line:  w.lineOf(t),
					Spans: []Span{{Text: raw}},
				})
			}
		}
	}
}

// textual emits a paragraph-like node according to its structural position:
// list item, quoted paragraph, standalone image, or plain paragraph.
func (w *walker) textual(n ast.Node, ctx blockContext) {
	line := w.lineOf(n)

	if ctx.listID > 0 {
		w.emit(Element{
			Kind:    ElementListItem,
			Depth:   ctx.depth,
			Ordered: ctx.ordered,
			ListID:  ctx.listID,
			Line:    line,
			Spans:   w.spans(n),
		})
		return
	}

	if ctx.quote > 0 {
		w.emit(Element{
			Kind:  ElementBlockquote,
			Depth: ctx.quote - 1,
			Line:  line,
			Spans: w.spans(n),
		})
		return
	}

	// A paragraph holding a single image is an image block.
	if img, ok := soleImage(n); ok {
		alt := textContent(img, w.source)
		if alt == "" {
			alt = string(img.Destination)
		}
		w.emit(Element{
			Kind: ElementImage,
			Alt:  alt,
			URL:  string(img.Destination),
			Line: line,
		})
		return
	}

	w.emit(Element{
		Kind:  ElementParagraph,
		Line:  line,
		Spans: w.spans(n),
	})
}

func (w *walker) table(t *east.Table) {
	var rows [][]TableCell
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
			var cells []TableCell
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, TableCell{Spans: w.spans(cell)})
			}
			rows = append(rows, cells)
		}
	}
	w.emit(Element{
		Kind: ElementTable,
		Rows: rows,
		Line: w.lineOf(t),
	})
}

func (w *walker) nextListID() int {
	w.lists++
	return w.lists
}

// spanState tracks the emphasis context while walking inline nodes.
type spanState struct {
	bold   bool
	italic bool
	code   bool
	strike bool
	link   string
}

func (w *walker) spans(n ast.Node) []Span {
	var out []Span
	w.inline(n, spanState{}, &out)
	return coalesceSpans(out)
}

func (w *walker) inline(parent ast.Node, st spanState, out *[]Span) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			if txt := string(t.Segment.Value(w.source)); txt != "" {
				*out = append(*out, w.span(txt, st))
			}
			if t.HardLineBreak() {
				*out = append(*out, Span{Break: true})
			} else if t.SoftLineBreak() {
				*out = append(*out, w.span(" ", st))
			}

		case *ast.String:
			if len(t.Value) > 0 {
				*out = append(*out, w.span(string(t.Value), st))
			}

		case *ast.Emphasis:
			next := st
			if t.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			w.inline(t, next, out)

		case *ast.CodeSpan:
			next := st
			next.code = true
			w.inline(t, next, out)

		case *ast.Link:
			next := st
			next.link = string(t.Destination)
			w.inline(t, next, out)

		case *ast.AutoLink:
			url := string(t.URL(w.source))
			label := string(t.Label(w.source))
			s := w.span(label, st)
			s.Link = url
			*out = append(*out, s)

		case *ast.Image:
			// Inline image: render the alt text as a link to the image.
			alt := textContent(t, w.source)
			if alt == "" {
				alt = string(t.Destination)
			}
			s := w.span(alt, st)
			s.Link = string(t.Destination)
			*out = append(*out, s)

		case *east.Strikethrough:
			next := st
			next.strike = true
			w.inline(t, next, out)

		case *ast.RawHTML:
			// Inline HTML tags are dropped; their text children, if any,
			// are not (goldmark keeps surrounding text as siblings).

		default:
			w.inline(c, st, out)
		}
	}
}

func (w *walker) span(text string, st spanState) Span {
	return Span{
		Text:   text,
		Bold:   st.bold,
		Italic: st.italic,
		Code:   st.code,
		Strike: st.strike,
		Link:   st.link,
	}
}

// coalesceSpans merges adjacent spans with identical formatting so runs are
// not fragmented at goldmark's internal text boundaries.
func coalesceSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if !s.Break && !last.Break &&
			s.Bold == last.Bold && s.Italic == last.Italic &&
			s.Code == last.Code && s.Strike == last.Strike && s.Link == last.Link {
			last.Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// rawLines concatenates the literal source lines of a block node.
func (w *walker) rawLines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}
	return b.String()
}

// lineOf returns the 1-based source line of a block node, descending to the
// first descendant that carries line segments when the node itself has none.
func (w *walker) lineOf(n ast.Node) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return w.lineAt(lines.At(0).Start)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if line := w.lineOf(c); line > 0 {
			return line
		}
	}
	return 0
}

func (w *walker) lineAt(offset int) int {
	return sort.Search(len(w.lineStarts), func(i int) bool {
		return w.lineStarts[i] > offset
	})
}

// lineStarts returns the byte offsets at which each line begins.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// soleImage reports whether a paragraph consists of exactly one image.
func soleImage(n ast.Node) (*ast.Image, bool) {
	child := n.FirstChild()
	if child == nil || child.NextSibling() != nil {
		return nil, false
	}
	img, ok := child.(*ast.Image)
	return img, ok
}

// textContent collects the plain text of a node's descendants.
func textContent(n ast.Node, source []byte) string {
	var b strings.Builder
	var visit func(ast.Node)
	visit = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(source))
			case *ast.String:
				b.Write(t.Value)
			default:
				visit(c)
			}
		}
	}
	visit(n)
	return b.String()
}

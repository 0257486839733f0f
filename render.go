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
	"strings"

	"github.com/sstrelsov/ia-ibm-template/docx"
	"github.com/sstrelsov/ia-ibm-template/style"
)

// Word paragraph style IDs per element kind.
var styleIDs = map[style.Kind]struct{ id, name string }{
	style.Title:       {"Title", "Title"},
	style.Subtitle:    {"Subtitle", "Subtitle"},
	style.Heading1:    {"Heading1", "Heading 1"},
	style.Heading2:    {"Heading2", "Heading 2"},
	style.Heading3:    {"Heading3", "Heading 3"},
	style.Heading4:    {"Heading4", "Heading 4"},
	style.Heading5:    {"Heading5", "Heading 5"},
	style.Heading6:    {"Heading6", "Heading 6"},
	style.Body:        {"BodyText", "Body Text"},
	style.Blockquote:  {"Quote", "Quote"},
	style.Code:        {"CodeBlock", "Code Block"},
	style.List:        {"ListParagraph", "List Paragraph"},
	style.Table:       {"TableBody", "Table Body"},
	style.TableHeader: {"TableHeader", "Table Header"},
	style.Caption:     {"Caption", "Caption"},
}

// renderer walks the element stream and builds the document. Styles are
// defined on first use, so a document only carries the styles it needs, and
// a missing spec entry surfaces as an error pointing at the element that
// needed it.
type renderer struct {
	doc        *docx.Document
	spec       *style.Spec
	path       string
	lineOffset int

	resolved map[style.Kind]style.Attributes
	numIDs   map[int]int // source list ID -> numbering instance
}

func render(elements []Element, meta Metadata, spec *style.Spec, path string, lineOffset int) (*docx.Document, error) {
	r := &renderer{
		doc:        docx.New(),
		spec:       spec,
		path:       path,
		lineOffset: lineOffset,
		resolved:   make(map[style.Kind]style.Attributes),
		numIDs:     make(map[int]int),
	}

	def := spec.Default()
	r.doc.Defaults = docx.Format{
		Font:  def.Font,
		Size:  def.Size,
		Color: def.Color,
	}
	r.doc.Props = docx.Properties{
		Title:   meta.Title,
		Author:  meta.Author,
		Created: meta.created(),
	}

	if err := r.frontPage(meta); err != nil {
		return nil, err
	}
	for _, e := range elements {
		if err := r.element(e); err != nil {
			return nil, err
		}
	}
	return r.doc, nil
}

// frontPage emits the title and author blocks derived from front matter.
func (r *renderer) frontPage(meta Metadata) error {
	if meta.Title != "" {
		id, err := r.ensure(style.Title, 0)
		if err != nil {
			return err
		}
		r.doc.AddParagraph(docx.Paragraph{
			Style: id,
			Runs:  []docx.Run{{Text: meta.Title}},
		})
	}
	if meta.Author != "" {
		id, err := r.ensure(style.Subtitle, 0)
		if err != nil {
			return err
		}
		r.doc.AddParagraph(docx.Paragraph{
			Style: id,
			Runs:  []docx.Run{{Text: meta.Author}},
		})
	}
	return nil
}

func (r *renderer) element(e Element) error {
	switch e.Kind {
	case ElementParagraph:
		return r.paragraph(style.Body, e, 0, nil)

	case ElementHeading:
		return r.paragraph(style.Heading(e.Level), e, 0, nil)

	case ElementBlockquote:
		// Each extra quote level indents one more step.
		return r.paragraph(style.Blockquote, e, 1+e.Depth, nil)

	case ElementListItem:
		numID, ok := r.numIDs[e.ListID]
		if !ok {
			numID = r.doc.NewList(e.Ordered)
			r.numIDs[e.ListID] = numID
		}
		return r.paragraph(style.List, e, 0, &docx.ListMarker{NumID: numID, Level: e.Depth})

	case ElementCodeBlock:
		return r.codeBlock(e)

	case ElementTable:
		return r.table(e)

	case ElementImage:
		return r.image(e)

	case ElementRule:
		r.doc.AddRule()
	}
	return nil
}

func (r *renderer) paragraph(kind style.Kind, e Element, indent int, list *docx.ListMarker) error {
	id, err := r.ensure(kind, e.Line)
	if err != nil {
		return err
	}
	runs, err := r.runs(e.Spans, e.Line)
	if err != nil {
		return err
	}
	r.doc.AddParagraph(docx.Paragraph{
		Style:  id,
		List:   list,
		Indent: indent,
		Runs:   runs,
	})
	return nil
}

func (r *renderer) codeBlock(e Element) error {
	id, err := r.ensure(style.Code, e.Line)
	if err != nil {
		return err
	}
	var runs []docx.Run
	for i, line := range strings.Split(strings.TrimRight(e.Text, "\n"), "\n") {
		if i > 0 {
			runs = append(runs, docx.Run{Break: true})
		}
		runs = append(runs, docx.Run{Text: line})
	}
	r.doc.AddParagraph(docx.Paragraph{Style: id, Runs: runs})
	return nil
}

func (r *renderer) table(e Element) error {
	// Resolve the body style before the header style so a spec missing the
	// table entry reports "table", not "table_header".
	bodyID, err := r.ensure(style.Table, e.Line)
	if err != nil {
		return err
	}
	headerID, err := r.ensure(style.TableHeader, e.Line)
	if err != nil {
		return err
	}

	rows := make([][]docx.Cell, 0, len(e.Rows))
	for _, row := range e.Rows {
		cells := make([]docx.Cell, 0, len(row))
		for _, cell := range row {
			runs, err := r.runs(cell.Spans, e.Line)
			if err != nil {
				return err
			}
			cells = append(cells, docx.Cell{Runs: runs})
		}
		rows = append(rows, cells)
	}
	r.doc.AddTable(docx.Table{
		HeaderStyle: headerID,
		CellStyle:   bodyID,
		Rows:        rows,
	})
	return nil
}

// image renders an image reference as a captioned hyperlink. The package
// never embeds binary media; the alt text links to the image location.
func (r *renderer) image(e Element) error {
	id, err := r.ensure(style.Caption, e.Line)
	if err != nil {
		return err
	}
	r.doc.AddParagraph(docx.Paragraph{
		Style: id,
		Runs:  []docx.Run{{Text: e.Alt, Link: e.URL}},
	})
	return nil
}

// runs converts inline spans to document runs. Inline code spans swap to the
// code entry's font.
func (r *renderer) runs(spans []Span, line int) ([]docx.Run, error) {
	runs := make([]docx.Run, 0, len(spans))
	for _, s := range spans {
		if s.Break {
			runs = append(runs, docx.Run{Break: true})
			continue
		}
		run := docx.Run{
			Text:   s.Text,
			Bold:   s.Bold,
			Italic: s.Italic,
			Strike: s.Strike,
			Link:   s.Link,
		}
		if s.Code {
			attrs, err := r.attributes(style.Code, line)
			if err != nil {
				return nil, err
			}
			run.Font = attrs.Font
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ensure resolves a kind's attributes and defines its paragraph style,
// returning the style ID. Resolution happens once per kind.
func (r *renderer) ensure(kind style.Kind, line int) (string, error) {
	attrs, err := r.attributes(kind, line)
	if err != nil {
		return "", err
	}
	sid := styleIDs[kind]
	r.doc.DefineStyle(sid.id, sid.name, docx.Format{
		Font:        attrs.Font,
		Size:        attrs.Size,
		Bold:        attrs.Bold,
		Italic:      attrs.Italic,
		Color:       attrs.Color,
		SpaceBefore: attrs.SpaceBefore,
		SpaceAfter:  attrs.SpaceAfter,
		Align:       string(attrs.Align),
	})
	return sid.id, nil
}

func (r *renderer) attributes(kind style.Kind, line int) (style.Attributes, error) {
	if attrs, ok := r.resolved[kind]; ok {
		return attrs, nil
	}
	attrs, err := r.spec.Resolve(kind)
	if err != nil {
		reported := 0
		if line > 0 {
			reported = line + r.lineOffset
		}
		return style.Attributes{}, &ConversionError{
			Path: r.path,
			Kind: kind,
			Line: reported,
			Err:  err,
		}
	}
	r.resolved[kind] = attrs
	return attrs, nil
}

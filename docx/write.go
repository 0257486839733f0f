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

package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/sstrelsov/ia-ibm-template/internal/ooxml"
)

// Relationship IDs inside word/_rels/document.xml.rels. Hyperlink IDs are
// allocated from hyperlinkRelBase up, in first-appearance order.
const (
	relIDStyles      = "rId1"
	relIDNumbering   = "rId2"
	hyperlinkRelBase = 10
)

// Write serializes the document as an OOXML package. Parts are emitted in a
// fixed order and the zip entries carry no timestamps, so the same document
// always produces the same bytes.
func (d *Document) Write(w io.Writer) error {
	links := d.collectHyperlinks()

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", d.contentTypes()},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", d.coreProperties()},
		{"word/document.xml", d.documentXML(links)},
		{"word/_rels/document.xml.rels", documentRels(links)},
		{"word/styles.xml", d.stylesXML()},
		{"word/numbering.xml", d.numberingXML()},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := pw.Write(part.data); err != nil {
			return fmt.Errorf("write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

// collectHyperlinks assigns relationship IDs to external link targets,
// deduplicated, in the order they first appear in the body.
func (d *Document) collectHyperlinks() map[string]string {
	links := make(map[string]string)
	next := hyperlinkRelBase
	add := func(runs []Run) {
		for _, r := range runs {
			if r.Link == "" {
				continue
			}
			if _, ok := links[r.Link]; ok {
				continue
			}
			links[r.Link] = fmt.Sprintf("rId%d", next)
			next++
		}
	}
	for _, block := range d.blocks {
		switch b := block.(type) {
		case Paragraph:
			add(b.Runs)
		case Table:
			for _, row := range b.Rows {
				for _, cell := range row {
					add(cell.Runs)
				}
			}
		}
	}
	return links
}

func (d *Document) contentTypes() []byte {
	var b strings.Builder
	b.WriteString(ooxml.Header)
	b.WriteString(`<Types xmlns="` + ooxml.NSContentTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="` + ooxml.ContentTypeDocument + `"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="` + ooxml.ContentTypeStyles + `"/>`)
	b.WriteString(`<Override PartName="/word/numbering.xml" ContentType="` + ooxml.ContentTypeNumbering + `"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="` + ooxml.ContentTypeCoreProps + `"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func packageRels() []byte {
	data, _ := ooxml.MarshalRelationships([]ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeDocument, Target: "word/document.xml"},
		{ID: "rId2", Type: ooxml.RelTypeCoreProps, Target: "docProps/core.xml"},
	})
	return data
}

func documentRels(links map[string]string) []byte {
	rels := []ooxml.Relationship{
		{ID: relIDStyles, Type: ooxml.RelTypeStyles, Target: "styles.xml"},
		{ID: relIDNumbering, Type: ooxml.RelTypeNumbering, Target: "numbering.xml"},
	}
	// Relationship order must be stable; recover first-appearance order
	// from the numeric suffix of the assigned IDs.
	ordered := make([]ooxml.Relationship, len(links))
	for target, id := range links {
		var n int
		fmt.Sscanf(id, "rId%d", &n)
		ordered[n-hyperlinkRelBase] = ooxml.Relationship{
			ID:         id,
			Type:       ooxml.RelTypeHyperlink,
			Target:     target,
			TargetMode: "External",
		}
	}
	rels = append(rels, ordered...)
	data, _ := ooxml.MarshalRelationships(rels)
	return data
}

func (d *Document) coreProperties() []byte {
	var b strings.Builder
	b.WriteString(ooxml.Header)
	b.WriteString(`<cp:coreProperties xmlns:cp="` + ooxml.NSCoreProps + `" xmlns:dc="` + ooxml.NSDC +
		`" xmlns:dcterms="` + ooxml.NSDCTerms + `" xmlns:xsi="` + ooxml.NSXSI + `">`)
	if d.Props.Title != "" {
		b.WriteString(`<dc:title>` + ooxml.EscapeText(d.Props.Title) + `</dc:title>`)
	}
	if d.Props.Author != "" {
		b.WriteString(`<dc:creator>` + ooxml.EscapeText(d.Props.Author) + `</dc:creator>`)
	}
	if d.Props.Created != "" {
		b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + ooxml.EscapeText(d.Props.Created) + `</dcterms:created>`)
	}
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

func (d *Document) documentXML(links map[string]string) []byte {
	var b strings.Builder
	b.WriteString(ooxml.Header)
	b.WriteString(`<w:document xmlns:w="` + ooxml.NSWordprocessingML + `" xmlns:r="` + ooxml.NSRelDoc + `">`)
	b.WriteString(`<w:body>`)

	for _, block := range d.blocks {
		switch blk := block.(type) {
		case Paragraph:
			writeParagraph(&b, blk, links)
		case Table:
			writeTable(&b, blk, links)
		case Rule:
			writeRule(&b)
		}
	}

	// Letter page, one-inch margins.
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func writeParagraph(b *strings.Builder, p Paragraph, links map[string]string) {
	b.WriteString(`<w:p>`)

	if p.Style != "" || p.List != nil || p.Indent > 0 {
		b.WriteString(`<w:pPr>`)
		if p.Style != "" {
			b.WriteString(`<w:pStyle w:val="` + ooxml.EscapeAttr(p.Style) + `"/>`)
		}
		if p.List != nil {
			fmt.Fprintf(b, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, p.List.Level, p.List.NumID)
		}
		if p.Indent > 0 {
			fmt.Fprintf(b, `<w:ind w:left="%d"/>`, 720*p.Indent)
		}
		b.WriteString(`</w:pPr>`)
	}

	writeRuns(b, p.Runs, links)
	b.WriteString(`</w:p>`)
}

func writeRuns(b *strings.Builder, runs []Run, links map[string]string) {
	for _, r := range runs {
		if r.Link != "" {
			id := links[r.Link]
			b.WriteString(`<w:hyperlink r:id="` + id + `">`)
			writeRun(b, r, true)
			b.WriteString(`</w:hyperlink>`)
			continue
		}
		writeRun(b, r, false)
	}
}

func writeRun(b *strings.Builder, r Run, hyperlink bool) {
	b.WriteString(`<w:r>`)

	if hyperlink || r.Bold || r.Italic || r.Strike || r.Font != "" {
		b.WriteString(`<w:rPr>`)
		if hyperlink {
			b.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
		}
		if r.Font != "" {
			f := ooxml.EscapeAttr(r.Font)
			b.WriteString(`<w:rFonts w:ascii="` + f + `" w:hAnsi="` + f + `" w:cs="` + f + `"/>`)
		}
		if r.Bold {
			b.WriteString(`<w:b/>`)
		}
		if r.Italic {
			b.WriteString(`<w:i/>`)
		}
		if r.Strike {
			b.WriteString(`<w:strike/>`)
		}
		b.WriteString(`</w:rPr>`)
	}

	if r.Break {
		b.WriteString(`<w:br/>`)
	} else {
		b.WriteString(`<w:t xml:space="preserve">` + ooxml.EscapeText(r.Text) + `</w:t>`)
	}
	b.WriteString(`</w:r>`)
}

func writeTable(b *strings.Builder, t Table, links map[string]string) {
	// Full-width table, header row emphasis only, no banding.
	b.WriteString(`<w:tbl><w:tblPr>`)
	b.WriteString(`<w:tblW w:w="5000" w:type="pct"/>`)
	b.WriteString(`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders>`)
	b.WriteString(`<w:tblLook w:val="04A0" w:firstRow="1" w:lastRow="0" w:firstColumn="0" w:lastColumn="0" w:noHBand="1" w:noVBand="1"/>`)
	b.WriteString(`</w:tblPr>`)

	for i, row := range t.Rows {
		b.WriteString(`<w:tr>`)
		cellStyle := t.CellStyle
		if i == 0 {
			cellStyle = t.HeaderStyle
		}
		for _, cell := range row {
			b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
			writeParagraph(b, Paragraph{Style: cellStyle, Runs: cell.Runs}, links)
			b.WriteString(`</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
}

func writeRule(b *strings.Builder) {
	b.WriteString(`<w:p><w:pPr><w:pBdr>` +
		`<w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/>` +
		`</w:pBdr></w:pPr></w:p>`)
}

func (d *Document) stylesXML() []byte {
	var b strings.Builder
	b.WriteString(ooxml.Header)
	b.WriteString(`<w:styles xmlns:w="` + ooxml.NSWordprocessingML + `">`)

	// Document defaults come from the fallback profile so unstyled runs
	// still render predictably.
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>`)
	writeRunFormat(&b, d.Defaults)
	b.WriteString(`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr/></w:pPrDefault></w:docDefaults>`)

	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)

	for _, s := range d.styles {
		writeStyleDef(&b, s)
	}

	b.WriteString(`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/>` +
		`<w:rPr><w:color w:val="0563C1"/><w:u w:val="single"/></w:rPr></w:style>`)

	b.WriteString(`</w:styles>`)
	return []byte(b.String())
}

func writeStyleDef(b *strings.Builder, s StyleDef) {
	b.WriteString(`<w:style w:type="paragraph" w:styleId="` + ooxml.EscapeAttr(s.ID) + `">`)
	b.WriteString(`<w:name w:val="` + ooxml.EscapeAttr(s.Name) + `"/>`)
	b.WriteString(`<w:basedOn w:val="Normal"/><w:qFormat/>`)

	b.WriteString(`<w:pPr>`)
	fmt.Fprintf(b, `<w:spacing w:before="%d" w:after="%d"/>`, twentieths(s.Format.SpaceBefore), twentieths(s.Format.SpaceAfter))
	if jc := jcValue(s.Format.Align); jc != "" {
		b.WriteString(`<w:jc w:val="` + jc + `"/>`)
	}
	b.WriteString(`</w:pPr>`)

	b.WriteString(`<w:rPr>`)
	writeRunFormat(b, s.Format)
	b.WriteString(`</w:rPr>`)

	b.WriteString(`</w:style>`)
}

// writeRunFormat emits the run-level properties of a Format.
func writeRunFormat(b *strings.Builder, f Format) {
	if f.Font != "" {
		name := ooxml.EscapeAttr(f.Font)
		b.WriteString(`<w:rFonts w:ascii="` + name + `" w:hAnsi="` + name + `" w:cs="` + name + `"/>`)
	}
	if f.Bold {
		b.WriteString(`<w:b/>`)
	}
	if f.Italic {
		b.WriteString(`<w:i/>`)
	}
	if f.Color != "" {
		b.WriteString(`<w:color w:val="` + ooxml.EscapeAttr(f.Color) + `"/>`)
	}
	if f.Size > 0 {
		fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints(f.Size), halfPoints(f.Size))
	}
}

func (d *Document) numberingXML() []byte {
	var b strings.Builder
	b.WriteString(ooxml.Header)
	b.WriteString(`<w:numbering xmlns:w="` + ooxml.NSWordprocessingML + `">`)

	// Two abstract definitions: 0 is the bullet ladder, 1 is decimal.
	writeAbstractNum(&b, 0, false)
	writeAbstractNum(&b, 1, true)

	for i, ordered := range d.numbered {
		abstract := 0
		if ordered {
			abstract = 1
		}
		fmt.Fprintf(&b, `<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, i+1, abstract)
	}

	b.WriteString(`</w:numbering>`)
	return []byte(b.String())
}

var bulletGlyphs = []string{"•", "◦", "▪"}

func writeAbstractNum(b *strings.Builder, id int, ordered bool) {
	fmt.Fprintf(b, `<w:abstractNum w:abstractNumId="%d">`, id)
	for lvl := 0; lvl < 9; lvl++ {
		fmt.Fprintf(b, `<w:lvl w:ilvl="%d">`, lvl)
		if ordered {
			b.WriteString(`<w:start w:val="1"/><w:numFmt w:val="decimal"/>`)
			fmt.Fprintf(b, `<w:lvlText w:val="%%%d."/>`, lvl+1)
		} else {
			b.WriteString(`<w:numFmt w:val="bullet"/>`)
			b.WriteString(`<w:lvlText w:val="` + bulletGlyphs[lvl%len(bulletGlyphs)] + `"/>`)
		}
		b.WriteString(`<w:lvlJc w:val="left"/>`)
		fmt.Fprintf(b, `<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr>`, 720*(lvl+1))
		b.WriteString(`</w:lvl>`)
	}
	b.WriteString(`</w:abstractNum>`)
}

// halfPoints converts a point size to the half-point units of w:sz.
func halfPoints(pt float64) int {
	return int(pt*2 + 0.5)
}

// twentieths converts points to the twentieths-of-a-point units of w:spacing.
func twentieths(pt float64) int {
	return int(pt*20 + 0.5)
}

// jcValue maps spec alignment tokens to w:jc values.
func jcValue(align string) string {
	switch align {
	case "left":
		return "left"
	case "center":
		return "center"
	case "right":
		return "right"
	case "justify":
		return "both"
	}
	return ""
}

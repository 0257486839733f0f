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
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PdfSource handles PDF files: the text of each page becomes one Markdown
// section. Layout is not reconstructed; the extracted text flows as plain
// paragraphs.
type PdfSource struct{}

// NewPdfSource creates a new PdfSource.
func NewPdfSource() *PdfSource {
	return &PdfSource{}
}

func (s *PdfSource) Accepts(info StreamInfo) bool {
	if info.Extension == ".pdf" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType), "application/pdf")
}

func (s *PdfSource) Markdown(reader io.ReadSeeker, info StreamInfo) (*SourceResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var md strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := strings.TrimSpace(pageText(page))
		if text == "" {
			continue
		}
		md.WriteString(text)
		md.WriteString("\n\n")
	}

	return &SourceResult{Markdown: md.String()}, nil
}

// pageText extracts the text of one page. Row extraction carries word
// boundaries; when it yields nothing the raw positioned fragments are
// regrouped into lines by Y proximity.
func pageText(page pdf.Page) string {
	if rows, err := page.GetTextByRow(); err == nil && len(rows) > 0 {
		var b strings.Builder
		for _, row := range rows {
			line := rowText(row)
			if line != "" {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		if strings.TrimSpace(b.String()) != "" {
			return b.String()
		}
	}
	return positionedText(page.Content().Text)
}

// rowText joins the words of one extracted row. An empty fragment between
// non-empty ones marks a word boundary.
func rowText(row *pdf.Row) string {
	var b strings.Builder
	boundary := false
	for _, word := range row.Content {
		if word.S == "" {
			boundary = true
			continue
		}
		if b.Len() > 0 && boundary && !strings.HasSuffix(b.String(), " ") {
			b.WriteString(" ")
		}
		b.WriteString(word.S)
		boundary = false
	}
	return strings.TrimSpace(b.String())
}

// positionedText rebuilds lines from raw text fragments: group by Y within
// a font-size tolerance, order top to bottom, then left to right, inserting
// spaces at gaps wider than a fraction of the font size.
func positionedText(frags []pdf.Text) string {
	type line struct {
		y     float64
		frags []pdf.Text
	}

	var lines []line
	for _, t := range frags {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		tolerance := 3.0
		if t.FontSize > 0 {
			tolerance = t.FontSize * 0.3
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-t.Y) < tolerance {
				lines[i].frags = append(lines[i].frags, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: t.Y, frags: []pdf.Text{t}})
		}
	}
	if len(lines) == 0 {
		return ""
	}

	// PDF Y grows upward
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var b strings.Builder
	for _, ln := range lines {
		sort.Slice(ln.frags, func(i, j int) bool { return ln.frags[i].X < ln.frags[j].X })

		var text strings.Builder
		var endX float64
		for i, f := range ln.frags {
			if i > 0 {
				threshold := f.FontSize * 0.2
				if threshold < 1.0 {
					threshold = 1.0
				}
				if f.X-endX > threshold {
					text.WriteString(" ")
				}
			}
			text.WriteString(f.S)
			endX = f.X + float64(len([]rune(f.S)))*f.FontSize*0.55
		}
		if s := strings.TrimSpace(text.String()); s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

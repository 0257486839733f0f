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
	"strings"
	"testing"
)

func TestCsvSource(t *testing.T) {
	csv := "Name,Age\nAda,36\n\"Tricky|Pipe\",1\n"
	res, err := NewCsvSource().Markdown(strings.NewReader(csv), StreamInfo{Extension: ".csv"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	md := res.Markdown
	if !strings.Contains(md, "| Name | Age |") {
		t.Errorf("header row missing:\n%s", md)
	}
	if !strings.Contains(md, "| --- | --- |") {
		t.Errorf("separator row missing:\n%s", md)
	}
	if !strings.Contains(md, `Tricky\|Pipe`) {
		t.Errorf("pipes in cells must be escaped:\n%s", md)
	}
}

func TestCsvSourceMultilineCell(t *testing.T) {
	csv := "Name,Notes\nAda,\"first line\nsecond line\"\n"
	res, err := NewCsvSource().Markdown(strings.NewReader(csv), StreamInfo{Extension: ".csv"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	md := res.Markdown
	if !strings.Contains(md, "| Ada | first line second line |") {
		t.Errorf("embedded newline should flatten to a space:\n%s", md)
	}
	// Every emitted line must still be a table row.
	for _, line := range strings.Split(strings.TrimRight(md, "\n"), "\n") {
		if !strings.HasPrefix(line, "|") {
			t.Errorf("broken table row %q:\n%s", line, md)
		}
	}
}

func TestCsvSourceEmpty(t *testing.T) {
	res, err := NewCsvSource().Markdown(strings.NewReader(""), StreamInfo{Extension: ".csv"})
	if err != nil {
		t.Fatalf("empty CSV should not error: %v", err)
	}
	if res.Markdown != "" {
		t.Errorf("empty CSV should yield empty markdown, got %q", res.Markdown)
	}
}

func TestHTMLSource(t *testing.T) {
	html := `<!DOCTYPE html>
<html><head><title>Page Title</title><script>alert(1)</script></head>
<body><h1>Welcome</h1><p>Some <strong>bold</strong> text and <a href="https://example.com">a link</a>.</p></body></html>`

	res, err := NewHTMLSource().Markdown(strings.NewReader(html), StreamInfo{Extension: ".html"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if res.Title != "Page Title" {
		t.Errorf("title: got %q", res.Title)
	}
	md := res.Markdown
	if !strings.Contains(md, "# Welcome") {
		t.Errorf("heading missing:\n%s", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Errorf("emphasis missing:\n%s", md)
	}
	if !strings.Contains(md, "https://example.com") {
		t.Errorf("link missing:\n%s", md)
	}
	if strings.Contains(md, "alert(1)") {
		t.Errorf("script content must be stripped:\n%s", md)
	}
}

func TestIpynbSource(t *testing.T) {
	nb := `{
  "metadata": {"kernelspec": {"language": "python"}},
  "cells": [
    {"cell_type": "markdown", "source": ["# Analysis\n", "\n", "Intro text."]},
    {"cell_type": "code", "source": "print('hi')", "outputs": [
      {"output_type": "stream", "text": ["hi\n"]}
    ]},
    {"cell_type": "raw", "source": "raw stuff"}
  ]
}`
	res, err := NewIpynbSource().Markdown(strings.NewReader(nb), StreamInfo{Extension: ".ipynb"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if res.Title != "Analysis" {
		t.Errorf("title from first heading: got %q", res.Title)
	}
	md := res.Markdown
	if !strings.Contains(md, "```python\nprint('hi')\n```") {
		t.Errorf("code cell should be fenced with the kernel language:\n%s", md)
	}
	if !strings.Contains(md, "```\nhi\n```") {
		t.Errorf("stream output should be fenced:\n%s", md)
	}
	if !strings.Contains(md, "Intro text.") {
		t.Errorf("markdown cell should pass through:\n%s", md)
	}
}

func TestFeedSource(t *testing.T) {
	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example Blog</title>
<description>Posts about things</description>
<item><title>First Post</title><pubDate>Mon, 02 Mar 2026 10:00:00 GMT</pubDate>
<description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description></item>
</channel></rss>`

	res, err := NewFeedSource().Markdown(strings.NewReader(rss), StreamInfo{Extension: ".rss"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if res.Title != "Example Blog" {
		t.Errorf("feed title: got %q", res.Title)
	}
	md := res.Markdown
	if !strings.Contains(md, "# Example Blog") {
		t.Errorf("feed title heading missing:\n%s", md)
	}
	if !strings.Contains(md, "## First Post") {
		t.Errorf("item heading missing:\n%s", md)
	}
	if !strings.Contains(md, "**world**") {
		t.Errorf("item HTML should reduce to markdown:\n%s", md)
	}
}

// minimalPDF assembles a one-page PDF showing the given ASCII text, with
// the cross-reference offsets computed from the written bytes.
func minimalPDF(t *testing.T, text string) []byte {
	t.Helper()
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func TestPdfSource(t *testing.T) {
	data := minimalPDF(t, "Hello World")
	res, err := NewPdfSource().Markdown(bytes.NewReader(data), StreamInfo{Extension: ".pdf"})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(res.Markdown, "Hello World") {
		t.Errorf("page text missing:\n%s", res.Markdown)
	}
}

func TestPdfSourceMalformed(t *testing.T) {
	_, err := NewPdfSource().Markdown(strings.NewReader("not a pdf"), StreamInfo{Extension: ".pdf"})
	if err == nil {
		t.Fatal("malformed PDF should error")
	}
}

func TestSourceAccepts(t *testing.T) {
	cases := []struct {
		name   string
		source Source
		info   StreamInfo
		want   bool
	}{
		{"md ext", NewMarkdownSource(), StreamInfo{Extension: ".md"}, true},
		{"plain mime", NewMarkdownSource(), StreamInfo{MIMEType: "text/plain; charset=utf-8"}, true},
		{"md rejects html", NewMarkdownSource(), StreamInfo{Extension: ".html", MIMEType: "text/html"}, false},
		{"html ext", NewHTMLSource(), StreamInfo{Extension: ".html"}, true},
		{"csv mime", NewCsvSource(), StreamInfo{MIMEType: "text/csv"}, true},
		{"xlsx mime", NewXlsxSource(), StreamInfo{MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}, true},
		{"pdf ext", NewPdfSource(), StreamInfo{Extension: ".pdf"}, true},
		{"pdf mime", NewPdfSource(), StreamInfo{MIMEType: "application/pdf"}, true},
		{"pdf rejects text", NewPdfSource(), StreamInfo{Extension: ".md", MIMEType: "text/markdown"}, false},
		{"atom ext", NewFeedSource(), StreamInfo{Extension: ".atom"}, true},
		{"ipynb ext", NewIpynbSource(), StreamInfo{Extension: ".ipynb"}, true},
		{"ipynb rejects json", NewIpynbSource(), StreamInfo{Extension: ".json"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.source.Accepts(tc.info); got != tc.want {
				t.Errorf("Accepts(%+v) = %v, want %v", tc.info, got, tc.want)
			}
		})
	}
}

func TestDecodeTextLatin1(t *testing.T) {
	// "café" in ISO-8859-1
	data := []byte{'c', 'a', 'f', 0xE9}
	if got := decodeText(data, "iso-8859-1"); got != "café" {
		t.Errorf("explicit charset: got %q", got)
	}
}

func TestDecodeTextUTF8Passthrough(t *testing.T) {
	in := "naïve — déjà vu"
	if got := decodeText([]byte(in), ""); got != in {
		t.Errorf("valid UTF-8 should pass through: got %q", got)
	}
}

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

// Package mdtodocx converts styled Markdown into Word documents. A loaded
// style specification maps element kinds to formatting; a source registry
// reduces various textual inputs to Markdown first, so spreadsheets, HTML
// pages, and feeds can be styled the same way as plain Markdown files.
package mdtodocx

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sstrelsov/ia-ibm-template/docx"
	"github.com/sstrelsov/ia-ibm-template/style"
)

const (
	// PrioritySpecific is for format-specific sources (XLSX, notebooks, feeds).
	PrioritySpecific = 0.0
	// PriorityGeneric is for fallback sources (HTML, plain Markdown).
	PriorityGeneric = 10.0
)

type registeredSource struct {
	source   Source
	priority float64
	name     string
}

// Converter is the Markdown-to-Word conversion engine. It is stateless
// across runs: every conversion loads nothing and leaves nothing behind
// except the single output file.
type Converter struct {
	sources []registeredSource
	spec    *style.Spec
	parser  Parser
}

// New creates a Converter around a loaded style specification.
func New(spec *style.Spec, opts ...Option) *Converter {
	c := &Converter{spec: spec}
	for _, opt := range opts {
		opt(c)
	}
	if c.parser == nil {
		c.parser = NewGoldmarkParser()
	}
	c.enableBuiltins()
	return c
}

// RegisterSource adds a custom input source with the given priority.
// Lower priority values are tried first.
func (c *Converter) RegisterSource(name string, s Source, priority float64) {
	c.sources = append(c.sources, registeredSource{
		source:   s,
		priority: priority,
		name:     name,
	})
	sort.SliceStable(c.sources, func(i, j int) bool {
		return c.sources[i].priority < c.sources[j].priority
	})
}

// ConvertFile converts a local input file and writes the result to
// outputPath. The output appears atomically: either the full document is
// written or nothing is.
func (c *Converter) ConvertFile(path, outputPath string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ConversionError{Path: path, Err: err}
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	info := StreamInfo{
		Extension: ext,
		Filename:  filepath.Base(path),
		LocalPath: path,
	}
	info.MIMEType = detectMIMEType(f, ext)

	// Reset after MIME detection
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return &ConversionError{Path: path, Err: fmt.Errorf("seek: %w", err)}
	}

	return c.ConvertReader(f, info, outputPath)
}

// ConvertReader converts a stream using the provided StreamInfo and writes
// the result to outputPath.
func (c *Converter) ConvertReader(r io.ReadSeeker, info StreamInfo, outputPath string) error {
	doc, err := c.Render(r, info)
	if err != nil {
		return err
	}

	// Serialize fully in memory, then move into place. A failure at any
	// point leaves no partial file at the destination.
	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return &ConversionError{Path: outputPath, Err: err}
	}
	if err := writeFileAtomic(outputPath, buf.Bytes()); err != nil {
		return &ConversionError{Path: outputPath, Err: err}
	}
	return nil
}

// Render runs the conversion pipeline up to (but not including) the file
// write and returns the built document.
func (c *Converter) Render(r io.ReadSeeker, info StreamInfo) (*docx.Document, error) {
	res, err := c.reduce(r, info)
	if err != nil {
		return nil, err
	}

	md := normalizeInput(res.Markdown)

	meta, body, err := extractFrontMatter([]byte(md))
	if err != nil {
		return nil, &ConversionError{Path: sourceName(info), Err: err}
	}
	if meta.Title == "" {
		meta.Title = res.Title
	}

	// Element lines are relative to the body; account for stripped
	// front matter when reporting positions.
	lineOffset := strings.Count(md, "\n") - strings.Count(string(body), "\n")

	elements, err := c.parser.Parse(body)
	if err != nil {
		return nil, &ConversionError{Path: sourceName(info), Err: err}
	}

	return render(elements, meta, c.spec, sourceName(info), lineOffset)
}

// reduce dispatches the input across registered sources until one produces
// Markdown.
func (c *Converter) reduce(r io.ReadSeeker, info StreamInfo) (*SourceResult, error) {
	var failedAttempts []FailedSourceAttempt

	for _, rs := range c.sources {
		if !rs.source.Accepts(info) {
			continue
		}

		// Reset reader position before each attempt
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}

		result, err := rs.source.Markdown(r, info)
		if err != nil {
			failedAttempts = append(failedAttempts, FailedSourceAttempt{
				Source: rs.name,
				Err:    err,
			})
			continue
		}
		return result, nil
	}

	if len(failedAttempts) > 0 {
		return nil, &SourceError{Attempts: failedAttempts}
	}

	return nil, &UnsupportedFormatError{
		Extension: info.Extension,
		MIMEType:  info.MIMEType,
	}
}

// enableBuiltins registers all built-in sources.
func (c *Converter) enableBuiltins() {
	// Specific format sources (priority 0.0 - tried first)
	c.RegisterSource("csv", NewCsvSource(), PrioritySpecific)
	c.RegisterSource("xlsx", NewXlsxSource(), PrioritySpecific)
	c.RegisterSource("pdf", NewPdfSource(), PrioritySpecific)
	c.RegisterSource("feed", NewFeedSource(), PrioritySpecific)
	c.RegisterSource("ipynb", NewIpynbSource(), PrioritySpecific)

	// Generic format sources (priority 10.0 - tried last as fallbacks)
	c.RegisterSource("html", NewHTMLSource(), PriorityGeneric)
	c.RegisterSource("markdown", NewMarkdownSource(), PriorityGeneric)
}

// writeFileAtomic writes data to path via a temp file in the same directory
// and an atomic rename. The destination directory must already exist.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".md-to-docx-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// sourceName returns the best identifier for the input in error messages.
func sourceName(info StreamInfo) string {
	if info.LocalPath != "" {
		return info.LocalPath
	}
	if info.Filename != "" {
		return info.Filename
	}
	return "(stream)"
}

// detectMIMEType detects the MIME type from content and extension.
func detectMIMEType(r io.ReadSeeker, ext string) string {
	// Try content-based detection first
	mtype, err := mimetype.DetectReader(r)
	if err == nil && mtype.String() != "application/octet-stream" &&
		!strings.HasPrefix(mtype.String(), "text/plain") {
		return mtype.String()
	}

	// Fall back to extension-based detection
	return mimeFromExtension(ext)
}

// mimeFromExtension returns a MIME type for the extensions the built-in
// sources understand.
func mimeFromExtension(ext string) string {
	extMap := map[string]string{
		".md":       "text/markdown",
		".markdown": "text/markdown",
		".txt":      "text/plain",
		".text":     "text/plain",
		".html":     "text/html",
		".htm":      "text/html",
		".csv":      "text/csv",
		".xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".pdf":      "application/pdf",
		".xml":      "text/xml",
		".rss":      "application/rss+xml",
		".atom":     "application/atom+xml",
		".ipynb":    "application/x-ipynb+json",
	}
	if m, ok := extMap[ext]; ok {
		return m
	}
	return "application/octet-stream"
}

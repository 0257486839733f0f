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

import "io"

// StreamInfo holds metadata about the input being converted.
type StreamInfo struct {
	MIMEType  string
	Extension string
	Charset   string
	Filename  string
	LocalPath string
}

// SourceResult holds the Markdown a source reduced its input to, plus a
// best-effort title used when the document carries no front matter.
type SourceResult struct {
	Markdown string
	Title    string
}

// Source is the interface all input readers implement. A source reduces an
// input stream to Markdown text; the engine styles that Markdown into the
// output document.
type Source interface {
	// Accepts returns true if this source can handle the given input.
	// It MUST NOT change the read position of reader.
	Accepts(info StreamInfo) bool

	// Markdown reduces the input stream to Markdown text.
	Markdown(reader io.ReadSeeker, info StreamInfo) (*SourceResult, error)
}

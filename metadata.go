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
	"time"

	"github.com/adrg/frontmatter"
)

// Metadata is the document metadata recognized in YAML front matter.
type Metadata struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// extractFrontMatter splits optional YAML front matter from a Markdown
// document. Absent front matter is not an error; malformed front matter is.
func extractFrontMatter(data []byte) (Metadata, []byte, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, body, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"02/01/2006",
}

// created normalizes a front matter date to W3CDTF for docProps/core.xml.
// Unparseable dates are dropped rather than failing the conversion.
func (m Metadata) created() string {
	if m.Date == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

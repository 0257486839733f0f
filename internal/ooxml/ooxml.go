// Package ooxml holds the OOXML package-level plumbing shared by the DOCX
// writer: namespaces, part names, relationships, XML escaping, and zip
// helpers used to read parts back out of a written package.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Common OOXML namespaces.
const (
	NSRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	// DOCX namespaces
	NSWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSRelDoc           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// docProps/core.xml namespaces
	NSCoreProps = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSDC        = "http://purl.org/dc/elements/1.1/"
	NSDCTerms   = "http://purl.org/dc/terms/"
	NSXSI       = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship type URIs used in .rels parts.
const (
	RelTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeCoreProps = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RelTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Content types for the parts a generated package contains.
const (
	ContentTypeDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ContentTypeNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ContentTypeCoreProps = "application/vnd.openxmlformats-package.core-properties+xml"
)

// Header is the XML declaration written at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Relationship represents a single entry in a .rels part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is the root element for .rels parts.
type Relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	XMLNS   string         `xml:"xmlns,attr"`
	Rels    []Relationship `xml:"Relationship"`
}

// MarshalRelationships serializes a .rels part, XML declaration included.
func MarshalRelationships(rels []Relationship) ([]byte, error) {
	root := Relationships{XMLNS: NSRelationships, Rels: rels}
	data, err := xml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("marshal relationships: %w", err)
	}
	return append([]byte(Header), data...), nil
}

// ParseRelationships parses a .rels part from a zip.Reader into an ID-keyed
// map. A missing part yields an empty map, not an error.
func ParseRelationships(zr *zip.Reader, relsPath string) (map[string]Relationship, error) {
	data, err := ReadPart(zr, relsPath)
	if err != nil {
		return make(map[string]Relationship), nil
	}
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	result := make(map[string]Relationship, len(rels.Rels))
	for _, rel := range rels.Rels {
		result[rel.ID] = rel
	}
	return result, nil
}

// ReadPart reads a named part from a zip archive.
func ReadPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part %q not found in package", name)
}

// RelsPathFor returns the .rels path for a given part name.
func RelsPathFor(partPath string) string {
	dir := path.Dir(partPath)
	base := path.Base(partPath)
	if dir == "." {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

// EscapeText escapes a string for use as XML character data.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes a string for use as an XML attribute value.
func EscapeAttr(s string) string {
	s = EscapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

package mdtodocx

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reCRLF = regexp.MustCompile(`\r\n?`)

// normalizeInput cleans source Markdown before parsing:
// - Normalize line endings (CRLF -> LF)
// - Strip non-printable/control characters (keep \n, \t)
// - Ensure input is valid UTF-8
// The cleanup must stay lossless for Markdown semantics: trailing spaces are
// hard line breaks, and blank-line runs inside fenced code blocks are
// literal content, so neither is touched.
func normalizeInput(s string) string {
	// Ensure valid UTF-8
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	// Normalize line endings
	s = reCRLF.ReplaceAllString(s, "\n")

	// Strip non-printable/control characters (keep \n, \t)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	return s
}

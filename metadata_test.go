package mdtodocx

import (
	"strings"
	"testing"
)

func TestExtractFrontMatter(t *testing.T) {
	meta, body, err := extractFrontMatter([]byte("---\ntitle: T\nauthor: A\ndate: 2026-03-01\n---\n\nbody\n"))
	if err != nil {
		t.Fatalf("extractFrontMatter: %v", err)
	}
	if meta.Title != "T" || meta.Author != "A" || meta.Date != "2026-03-01" {
		t.Errorf("metadata: %+v", meta)
	}
	if strings.Contains(string(body), "title:") {
		t.Errorf("front matter should be stripped from the body: %q", body)
	}
	if !strings.Contains(string(body), "body") {
		t.Errorf("body content missing: %q", body)
	}
}

func TestExtractFrontMatterAbsent(t *testing.T) {
	meta, body, err := extractFrontMatter([]byte("# Just markdown\n"))
	if err != nil {
		t.Fatalf("absent front matter must not error: %v", err)
	}
	if meta != (Metadata{}) {
		t.Errorf("metadata should be empty: %+v", meta)
	}
	if string(body) != "# Just markdown\n" {
		t.Errorf("body should pass through unchanged: %q", body)
	}
}

func TestCreatedDateForms(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-03-01", "2026-03-01T00:00:00Z"},
		{"2026-03-01T09:30:00Z", "2026-03-01T09:30:00Z"},
		{"March 1, 2026", "2026-03-01T00:00:00Z"},
		{"", ""},
		{"not a date", ""},
	}
	for _, tc := range cases {
		m := Metadata{Date: tc.date}
		if got := m.created(); got != tc.want {
			t.Errorf("created(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

package mdtodocx

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CsvSource handles CSV files: the records become one Markdown table, which
// the renderer styles with the table and table_header entries.
type CsvSource struct{}

// NewCsvSource creates a new CsvSource.
func NewCsvSource() *CsvSource {
	return &CsvSource{}
}

func (s *CsvSource) Accepts(info StreamInfo) bool {
	if info.Extension == ".csv" {
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "text/csv") || strings.HasPrefix(mime, "application/csv")
}

func (s *CsvSource) Markdown(reader io.ReadSeeker, info StreamInfo) (*SourceResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	text := decodeText(data, info.Charset)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // allow variable fields
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	if len(records) == 0 {
		return &SourceResult{Markdown: ""}, nil
	}

	return &SourceResult{
		Markdown: markdownTable(records),
	}, nil
}

// markdownTable renders a 2D string slice as a Markdown table. The first
// record is the header row. Pipes in cell values are escaped so they stay
// literal, and embedded newlines flatten to spaces: a table row must stay
// on one source line.
func markdownTable(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	numCols := len(records[0])
	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		v := strings.ReplaceAll(row[i], "|", `\|`)
		v = strings.ReplaceAll(v, "\n", " ")
		return strings.TrimSpace(v)
	}

	var b strings.Builder

	// Header row
	b.WriteString("|")
	for i := 0; i < numCols; i++ {
		b.WriteString(" " + cell(records[0], i) + " |")
	}
	b.WriteString("\n|")
	for i := 0; i < numCols; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	// Data rows
	for _, row := range records[1:] {
		b.WriteString("|")
		for i := 0; i < numCols; i++ {
			b.WriteString(" " + cell(row, i) + " |")
		}
		b.WriteString("\n")
	}

	return b.String()
}

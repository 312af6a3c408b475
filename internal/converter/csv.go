package converter

import (
	"strings"

	"github.com/mcncl/dataconv/internal/models"
)

// ToCSV renders a mapping, or a sequence of mappings, as a CSV table. The
// header row is the union of all row keys in first-seen order; rows lacking
// a key get an empty field. Lines are joined by "\n" with no trailing newline.
func (c *Converter) ToCSV(v models.Value) (string, error) {
	v, err := c.prepare(v)
	if err != nil {
		return "", err
	}
	if v.Kind() == models.SequenceKind && v.Len() == 0 {
		return "", nil
	}

	table, err := c.analyzer.AnalyzeTable(v)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(table.Rows)+1)
	header := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = escapeCSVField(h)
	}
	lines = append(lines, strings.Join(header, ","))

	fields := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, h := range table.Headers {
			cell, _ := row.Get(h)
			fields[i] = escapeCSVField(csvText(cell))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n"), nil
}

// csvText stringifies a cell. Missing and null cells are empty; nested
// containers are written as compact JSON.
func csvText(v models.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.Text()
}

func escapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\n\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

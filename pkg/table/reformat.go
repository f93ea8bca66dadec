package table

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FillEmpty replaces every nil cell with the empty string.
func (t *Table) FillEmpty() {
	for _, row := range t.rows {
		for i, v := range row {
			if v == nil {
				row[i] = ""
			}
		}
	}
}

// NormalizeWhitespace trims string cells and collapses internal whitespace
// runs into a single space. Non-string cells are unaffected. Applying it
// twice yields the same result as once.
func (t *Table) NormalizeWhitespace() {
	for _, row := range t.rows {
		for i, v := range row {
			if s, ok := v.(string); ok {
				row[i] = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
			}
		}
	}
}

// Reverse reverses the row order in place.
func (t *Table) Reverse() {
	for i, j := 0, len(t.rows)-1; i < j; i, j = i+1, j-1 {
		t.rows[i], t.rows[j] = t.rows[j], t.rows[i]
	}
}

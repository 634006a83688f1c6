package parser

import "strings"

// Tokenize splits one CSV line into trimmed fields. A double quote toggles
// an "inside quotes" mode, so a delimiter inside a quoted field is not a
// boundary. Escaped quotes inside quoted fields ("") are not supported; the
// brokerage exports never produce them.
func Tokenize(line string, delim rune) []string {
	fields := []string{}
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// DetectDelimiter picks the field delimiter for a movement export from its
// header line: ';' when present, ',' otherwise. Portfolio and provento
// exports are always comma-delimited and never call this.
func DetectDelimiter(headerLine string) rune {
	if strings.ContainsRune(headerLine, ';') {
		return ';'
	}
	return ','
}

// splitLines breaks raw CSV content into non-empty lines, tolerating CRLF.
func splitLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// blankRow reports whether every token is empty or the absence sentinel.
func blankRow(tokens []string) bool {
	for _, tok := range tokens {
		if !isAbsent(tok) {
			return false
		}
	}
	return true
}

// headerIndex maps trimmed column names to their position in the header row.
type headerIndex map[string]int

func newHeaderIndex(columns []string) headerIndex {
	idx := make(headerIndex, len(columns))
	for i, name := range columns {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// cell returns the raw value of the named column in a tokenized row, or ""
// when the column is absent from the header or the row is short.
func (h headerIndex) cell(tokens []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// missing returns the required columns absent from the header, in order.
func (h headerIndex) missing(required []string) []string {
	var absent []string
	for _, col := range required {
		if _, ok := h[col]; !ok {
			absent = append(absent, col)
		}
	}
	return absent
}

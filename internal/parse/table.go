// Package parse turns raw telemetry text into typed values.
//
// All parsers here share one policy: malformed input degrades to fewer rows,
// never to an error. A line that is empty, looks like a header or comment,
// carries a "[Not Supported]" sentinel, or fails a required numeric
// conversion is skipped and scanning continues. Callers see only the rows
// that parsed cleanly.
package parse

import (
	"strconv"
	"strings"
)

// NotSupportedSentinel marks fields the vendor tool could not report.
const NotSupportedSentinel = "[Not Supported]"

// Row is one parsed line of delimiter-separated output.
type Row struct {
	Fields []string
}

// Int parses field i as a base-10 integer. Returns false when the field is
// missing or malformed.
func (r Row) Int(i int) (int64, bool) {
	if i < 0 || i >= len(r.Fields) {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(r.Fields[i]), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MiB parses field i as a mebibyte quantity, tolerating a trailing " MiB"
// suffix, and returns the value converted to kibibytes. Unit conversion
// happens here, at parse time, so no caller ever holds a MiB value.
func (r Row) MiB(i int) (int64, bool) {
	if i < 0 || i >= len(r.Fields) {
		return 0, false
	}
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r.Fields[i]), "MiB"))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v * 1024, true
}

// Str returns field i trimmed of surrounding whitespace.
func (r Row) Str(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

// Table scans delimiter-separated telemetry text lazily, one row per line.
// It is restartable via Reset, so the same blob can be walked twice and
// yields identical rows both times.
type Table struct {
	lines     []string
	pos       int
	delim     string
	minFields int
	headers   []string
}

// NewTable creates a scanner over raw text. Lines with fewer than minFields
// delimited fields are skipped, as are blank lines, lines starting with any
// of the header prefixes, lines starting with '#', and lines containing the
// not-supported sentinel.
func NewTable(raw, delim string, minFields int, headerPrefixes ...string) *Table {
	return &Table{
		lines:     strings.Split(raw, "\n"),
		delim:     delim,
		minFields: minFields,
		headers:   headerPrefixes,
	}
}

// Next returns the next well-formed row. The second return value is false
// once the input is exhausted.
func (t *Table) Next() (Row, bool) {
	for t.pos < len(t.lines) {
		line := strings.TrimSpace(t.lines[t.pos])
		t.pos++

		if !t.accept(line) {
			continue
		}

		fields := strings.Split(line, t.delim)
		if len(fields) < t.minFields {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return Row{Fields: fields}, true
	}
	return Row{}, false
}

// Reset rewinds the scanner to the beginning of the input.
func (t *Table) Reset() {
	t.pos = 0
}

// All drains the scanner and returns the remaining rows.
func (t *Table) All() []Row {
	var rows []Row
	for {
		row, ok := t.Next()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

func (t *Table) accept(line string) bool {
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	if strings.Contains(line, NotSupportedSentinel) {
		return false
	}
	for _, prefix := range t.headers {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

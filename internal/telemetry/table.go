// Package telemetry turns raw sensor-log tables into resolved, sanitized
// series: it parses device descriptor labels, binds raw headers to
// canonical metrics and cleans individual cells.
package telemetry

import "strings"

// Table is one decoded sensor log. Headers are unique and ordered; each row
// maps a header to its raw cell text. Descriptors holds the optional device
// descriptor row, keyed by header.
type Table struct {
	Headers     []string
	Rows        []map[string]string
	Descriptors map[string]string
}

// Column returns the raw cells of header in row order. Rows lacking the
// header contribute an empty cell.
func (t Table) Column(header string) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[header]
	}
	return out
}

// HasTimestamps reports whether the table carries Date or Time columns.
func (t Table) HasTimestamps() bool {
	for _, h := range t.Headers {
		switch strings.TrimSpace(h) {
		case "Date", "Time":
			return true
		}
	}
	return false
}

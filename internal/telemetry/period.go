package telemetry

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Period is the capture window of a table.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration is End minus Start.
func (p Period) Duration() time.Duration { return p.End.Sub(p.Start) }

// Sensor logs written on European locales use day-first dates, which
// dateparse would read month-first.
var dayFirstLayouts = []string{
	"2.1.2006 15:04:05.000",
	"2.1.2006 15:04:05",
	"2/1/2006 15:04:05.000",
	"2/1/2006 15:04:05",
	"2-1-2006 15:04:05",
}

// CapturePeriod derives the capture window from the Date and Time cells of
// the first and last rows that parse. ok is false when fewer than one row
// carries a usable timestamp.
func CapturePeriod(t Table) (Period, bool) {
	var first, last time.Time
	found := false
	for _, row := range t.Rows {
		ts, ok := rowTimestamp(row)
		if !ok {
			continue
		}
		if !found {
			first = ts
			found = true
		}
		last = ts
	}
	if !found {
		return Period{}, false
	}
	return Period{Start: first, End: last}, true
}

func rowTimestamp(row map[string]string) (time.Time, bool) {
	date := strings.TrimSpace(row["Date"])
	clock := strings.TrimSpace(row["Time"])
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	return ParseTimestamp(date + " " + clock)
}

// ParseTimestamp parses a sensor-log timestamp, trying day-first layouts
// before falling back to dateparse.
func ParseTimestamp(text string) (time.Time, bool) {
	for _, layout := range dayFirstLayouts {
		if ts, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return ts, true
		}
	}
	ts, err := dateparse.ParseLocal(text)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

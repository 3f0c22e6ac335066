// Package compare lays several reports side by side as a grid of
// formatted figures with best-value and critical-threshold markers.
package compare

import (
	"fmt"
	"math"
	"sort"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
)

// Missing is the cell text for an absent figure.
const Missing = "--"

// Row is one metric across every report. Values hold null for absent
// figures when marshaled.
type Row struct {
	Label           string        `json:"label"`
	Values          []stats.Value `json:"values"`
	FormattedValues []string      `json:"formattedValues"`
	BestIndex       *int          `json:"bestIndex"`
	Critical        []bool        `json:"critical"`
}

// Group is a titled block of rows.
type Group struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Grid is the full comparison. Headers are the report names, in column
// order.
type Grid struct {
	Headers []string `json:"headers"`
	Groups  []Group  `json:"groups"`
}

// Entry is one column of the grid.
type Entry struct {
	Name    string
	Metrics *analyzer.ReportMetrics
}

// Build assembles the grid from the catalog's comparison groups, followed
// by one group per GPU device present in any report, keyed by device.
func Build(c *catalog.Catalog, entries []Entry) Grid {
	g := Grid{Headers: make([]string, len(entries))}
	for i, e := range entries {
		g.Headers[i] = e.Name
	}

	for _, def := range c.Comparison {
		group := Group{Title: def.Title}
		for _, rowDef := range def.Rows {
			values := make([]stats.Value, len(entries))
			for i, e := range entries {
				values[i] = e.Metrics.Lookup(rowDef.Field)
			}
			group.Rows = append(group.Rows, BuildRow(rowDef, values))
		}
		g.Groups = append(g.Groups, group)
	}

	for _, dev := range collectDevices(entries) {
		group := Group{Title: dev.Title()}
		for _, rowDef := range c.GPUDeviceRows {
			values := make([]stats.Value, len(entries))
			for i, e := range entries {
				values[i] = e.Metrics.Device(dev.Key).Lookup(rowDef.Field)
			}
			group.Rows = append(group.Rows, BuildRow(rowDef, values))
		}
		g.Groups = append(g.Groups, group)
	}
	return g
}

// collectDevices returns the distinct GPU devices across entries in
// display order. The first entry carrying a key names it.
func collectDevices(entries []Entry) []analyzer.GPUDevice {
	seen := make(map[string]struct{})
	var out []analyzer.GPUDevice
	for _, e := range entries {
		if e.Metrics == nil {
			continue
		}
		for _, d := range e.Metrics.GPUDevices {
			if _, dup := seen[d.Key]; dup {
				continue
			}
			seen[d.Key] = struct{}{}
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// BuildRow formats values with def and computes its markers.
func BuildRow(def catalog.ComparisonRow, values []stats.Value) Row {
	row := Row{
		Label:           def.Label,
		Values:          values,
		FormattedValues: make([]string, len(values)),
		Critical:        make([]bool, len(values)),
	}
	floats := make([]float64, len(values))
	for i, v := range values {
		row.FormattedValues[i] = FormatValue(v, def.Unit, def.Decimals)
		floats[i] = v.Float()
		if f, ok := v.Get(); ok {
			row.Critical[i] = IsCritical(f, def.CriticalHigh, def.CriticalLow)
		}
	}
	if idx, ok := BestIndex(floats, def.Prefer); ok {
		row.BestIndex = &idx
	}
	return row
}

// FormatValue renders v with a fixed number of decimals followed by unit.
func FormatValue(v stats.Value, unit string, decimals int) string {
	f, ok := v.Get()
	if !ok {
		return Missing
	}
	return fmt.Sprintf("%.*f%s", decimals, f, unit)
}

// BestIndex picks the index of the preferred extreme. It reports false
// when prefer is none or any value is not finite. The first occurrence
// wins ties.
func BestIndex(values []float64, prefer catalog.Prefer) (int, bool) {
	if len(values) == 0 || (prefer != catalog.PreferMax && prefer != catalog.PreferMin) {
		return 0, false
	}
	best := 0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		switch {
		case prefer == catalog.PreferMax && v > values[best]:
			best = i
		case prefer == catalog.PreferMin && v < values[best]:
			best = i
		}
	}
	return best, true
}

// IsCritical reports whether v reaches either threshold. Nil thresholds
// are ignored.
func IsCritical(v float64, high, low *float64) bool {
	if high != nil && v >= *high {
		return true
	}
	if low != nil && v <= *low {
		return true
	}
	return false
}

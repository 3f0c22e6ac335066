// Package analyzer reduces one resolved sensor table into ReportMetrics.
package analyzer

import (
	"fmt"
	"math"

	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

// DefaultTjMax is the CPU junction temperature limit assumed when the
// caller does not provide one.
const DefaultTjMax = 100.0

// Analyzer reduces tables using a fixed catalog and sanitizer.
type Analyzer struct {
	catalog  *catalog.Catalog
	sanitize telemetry.SanitizeFunc
}

// New returns an Analyzer. Both arguments are required; the pipeline
// checks them before calling.
func New(c *catalog.Catalog, sanitize telemetry.SanitizeFunc) *Analyzer {
	return &Analyzer{catalog: c, sanitize: sanitize}
}

// Report is one analyzed table. It keeps the resolver so chart builders can
// pull sanitized series later without re-deriving bindings.
type Report struct {
	Name        string
	Table       telemetry.Table
	Resolutions map[string]telemetry.Resolution
	Metrics     ReportMetrics

	resolver *telemetry.Resolver
	analyzer *Analyzer
}

// Analyze resolves every catalog metric against table and reduces the
// resulting series. tjmax values that are not positive and finite are
// replaced with DefaultTjMax.
func (a *Analyzer) Analyze(name string, table telemetry.Table, tjmax float64) *Report {
	if tjmax <= 0 || math.IsNaN(tjmax) || math.IsInf(tjmax, 0) {
		tjmax = DefaultTjMax
	}

	r := &Report{
		Name:        name,
		Table:       table,
		Resolutions: make(map[string]telemetry.Resolution, len(a.catalog.Metrics)),
		resolver:    telemetry.NewResolver(table.Headers, table.Descriptors),
		analyzer:    a,
	}
	for _, m := range a.catalog.Metrics {
		res := r.resolver.Resolve(m.Candidates, nil)
		if res.Resolved() {
			r.Resolutions[m.Key] = res
		}
	}

	b := &builder{report: r, tjmax: tjmax}
	r.Metrics = b.build()
	return r
}

// Resolved reports whether the metric matched at least one column.
func (r *Report) Resolved(key string) bool {
	_, ok := r.Resolutions[key]
	return ok
}

// Series returns the sanitized samples of the primary column for metric
// key, restricted by pred when non-nil. ok is false when nothing resolves.
func (r *Report) Series(key string, pred telemetry.Predicate) ([]float64, bool) {
	m, found := r.analyzer.catalog.Metric(key)
	if !found {
		return nil, false
	}
	var res telemetry.Resolution
	if pred == nil {
		res = r.Resolutions[key]
	} else {
		res = r.resolver.Resolve(m.Candidates, pred)
	}
	primary, ok := res.Primary()
	if !ok {
		return nil, false
	}

	series := make([]float64, len(r.Table.Rows))
	for i, row := range r.Table.Rows {
		series[i] = r.analyzer.sanitize(m, row[primary.Header])
	}
	return series, true
}

// Devices returns the distinct devices of class found among the report's
// resolved bindings, in display order.
func (r *Report) Devices(class telemetry.DeviceClass, metricKeys ...string) []telemetry.DeviceInfo {
	seen := make(map[string]struct{})
	var out []telemetry.DeviceInfo
	visit := func(res telemetry.Resolution) {
		for _, b := range res.Bindings {
			if b.Device == nil || b.Device.Class != class {
				continue
			}
			if _, dup := seen[b.Device.Key]; dup {
				continue
			}
			seen[b.Device.Key] = struct{}{}
			out = append(out, *b.Device)
		}
	}

	if len(metricKeys) == 0 {
		for _, m := range r.analyzer.catalog.Metrics {
			visit(r.Resolutions[m.Key])
		}
	} else {
		for _, key := range metricKeys {
			visit(r.Resolutions[key])
		}
	}
	telemetry.SortDevices(out)
	return out
}

// MatchKind reports which resolution phase bound metric key.
func (r *Report) MatchKind(key string) telemetry.MatchKind {
	return r.Resolutions[key].Kind
}

// String helps debug dumps.
func (r *Report) String() string {
	return fmt.Sprintf("report %s: %d rows, %d metrics resolved", r.Name, len(r.Table.Rows), len(r.Resolutions))
}

// reduction is the outcome of reducing one metric series.
type reduction struct {
	summary  stats.Summary
	resolved bool
	ok       bool
}

func (x reduction) avg() stats.Value {
	if !x.ok {
		return stats.None()
	}
	return stats.Of(x.summary.Avg)
}

func (x reduction) max() stats.Value {
	if !x.ok {
		return stats.None()
	}
	return stats.Of(x.summary.Max)
}

func (x reduction) min() stats.Value {
	if !x.ok {
		return stats.None()
	}
	return stats.Of(x.summary.Min)
}

// Package catalog holds the static tables that drive report analysis:
// canonical metrics and their header aliases, chart categories and
// comparison row templates.
//
// A Catalog is plain data. Build one with Default or Load and hand it to
// the pipeline; nothing in this package keeps global state.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/hwcompare/internal/stats"
)

// Canonical metric keys.
const (
	CPUPower        = "cpu_power"
	CPUUsage        = "cpu_usage"
	CPUClock        = "cpu_effective_clock"
	CPUTemp         = "cpu_temp"
	MaxCoreTemp     = "max_cpu_core_temp"
	GPUClock        = "gpu_clock"
	GPUPower        = "gpu_power"
	GPUUsage        = "gpu_d3d_usage"
	GPUMemoryUsage  = "gpu_memory_usage"
	GPUTemp         = "gpu_temp"
	GPUTempLimit    = "gpu_temp_limit"
	ThermalHeadroom = "thermal_headroom"
	FPSAvg          = "fps_avg"
	FPS1            = "fps_1"
	FPS01           = "fps_01"
	FrameTime       = "frame_time_series"
	RAMUsage        = "ram_usage_percent"
	RAMUsed         = "ram_used_mb"
	RAMAvailable    = "ram_available_mb"
	DiskRead        = "disk_read_rate"
	DiskWrite       = "disk_write_rate"
	SystemPower     = "system_power"
)

// PercentUnit marks metrics whose figures are clamped to [0, 100].
const PercentUnit = "%"

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Prefer selects which extreme wins a comparison row.
type Prefer string

const (
	PreferNone Prefer = ""
	PreferMax  Prefer = "max"
	PreferMin  Prefer = "min"
)

// Metric is one canonical, tool-independent measured quantity.
type Metric struct {
	Key        string        `json:"key"`
	Label      string        `json:"label"`
	Unit       string        `json:"unit"`
	Candidates []string      `json:"candidates"`
	Bounds     *stats.Bounds `json:"bounds,omitempty"`
	// BoundedStats selects bounded reduction for this metric.
	BoundedStats bool `json:"boundedStats,omitempty"`
}

// Percent reports whether the metric is expressed in percent.
func (m Metric) Percent() bool { return m.Unit == PercentUnit }

// ChartMetric is one line series inside a chart category.
type ChartMetric struct {
	Label  string `json:"label"`
	Metric string `json:"metric"`
	Unit   string `json:"unit"`
}

// ChartCategory groups metrics drawn on the same chart.
type ChartCategory struct {
	Name    string        `json:"name"`
	Metrics []ChartMetric `json:"metrics"`
	// DeviceFanout emits one chart per GPU device instead of one chart.
	DeviceFanout bool `json:"deviceFanout,omitempty"`
}

// ComparisonRow is a template for one row of the comparison grid. Field
// names a report figure (see analyzer.ReportMetrics.Lookup) or, for GPU
// device rows, a device figure.
type ComparisonRow struct {
	Label        string   `json:"label"`
	Field        string   `json:"field"`
	Unit         string   `json:"unit"`
	Decimals     int      `json:"decimals"`
	Prefer       Prefer   `json:"prefer,omitempty"`
	CriticalHigh *float64 `json:"criticalHigh,omitempty"`
	CriticalLow  *float64 `json:"criticalLow,omitempty"`
}

// ComparisonGroup is a titled block of comparison rows.
type ComparisonGroup struct {
	Title string          `json:"title"`
	Rows  []ComparisonRow `json:"rows"`
}

// Catalog bundles every static table used by the pipeline.
type Catalog struct {
	Metrics       []Metric          `json:"metrics"`
	Charts        []ChartCategory   `json:"charts"`
	Comparison    []ComparisonGroup `json:"comparison"`
	GPUDeviceRows []ComparisonRow   `json:"gpuDeviceRows"`
}

// Metric returns the metric registered under key.
func (c *Catalog) Metric(key string) (Metric, bool) {
	for _, m := range c.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Validate checks the catalog for structural problems: missing or
// duplicated metric keys, inverted bounds and chart series pointing at
// unknown metrics.
func Validate(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	if len(c.Metrics) == 0 {
		return fmt.Errorf("%w: no metrics defined", ErrInvalidCatalog)
	}

	var problems []string
	seen := make(map[string]struct{}, len(c.Metrics))
	for i, m := range c.Metrics {
		key := strings.TrimSpace(m.Key)
		if key == "" {
			problems = append(problems, fmt.Sprintf("metrics[%d]: empty key", i))
			continue
		}
		if _, dup := seen[key]; dup {
			problems = append(problems, fmt.Sprintf("metrics[%d]: duplicate key %q", i, key))
		}
		seen[key] = struct{}{}
		if len(m.Candidates) == 0 {
			problems = append(problems, fmt.Sprintf("metric %q: no header candidates", key))
		}
		if m.Bounds != nil && m.Bounds.Min > m.Bounds.Max {
			problems = append(problems, fmt.Sprintf("metric %q: bounds min %g > max %g", key, m.Bounds.Min, m.Bounds.Max))
		}
	}

	for _, cat := range c.Charts {
		if strings.TrimSpace(cat.Name) == "" {
			problems = append(problems, "chart category with empty name")
		}
		for _, cm := range cat.Metrics {
			if _, ok := seen[cm.Metric]; !ok {
				problems = append(problems, fmt.Sprintf("chart %q: unknown metric %q", cat.Name, cm.Metric))
			}
		}
	}

	for _, g := range c.Comparison {
		for _, row := range g.Rows {
			problems = append(problems, checkRow(g.Title, row)...)
		}
	}
	for _, row := range c.GPUDeviceRows {
		problems = append(problems, checkRow("gpu device", row)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}

func checkRow(group string, row ComparisonRow) []string {
	var out []string
	if strings.TrimSpace(row.Field) == "" {
		out = append(out, fmt.Sprintf("group %q row %q: empty field", group, row.Label))
	}
	switch row.Prefer {
	case PreferNone, PreferMax, PreferMin:
	default:
		out = append(out, fmt.Sprintf("group %q row %q: unknown prefer %q", group, row.Label, row.Prefer))
	}
	if row.Decimals < 0 {
		out = append(out, fmt.Sprintf("group %q row %q: negative decimals", group, row.Label))
	}
	return out
}

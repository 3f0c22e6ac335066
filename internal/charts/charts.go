// Package charts builds chart-ready line series from analyzed reports.
package charts

import (
	"strconv"
	"strings"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

// Dataset is one report x metric line. Data holds null for missing samples.
type Dataset struct {
	Label       string        `json:"label"`
	ReportName  string        `json:"reportName"`
	MetricLabel string        `json:"metricLabel"`
	Unit        string        `json:"unit"`
	Data        []stats.Value `json:"data"`
	Fill        bool          `json:"fill"`
	Tension     float64       `json:"tension"`
	PointRadius int           `json:"pointRadius"`
	SpanGaps    bool          `json:"spanGaps"`
}

// Chart is one rendered category. Labels are 1-based sample positions.
type Chart struct {
	Labels     []int     `json:"labels"`
	Datasets   []Dataset `json:"datasets"`
	YAxisTitle string    `json:"yAxisTitle"`
	// PercMode asks the renderer to pin the Y axis to [0, 100].
	PercMode bool `json:"percMode"`
}

// Category describes an emitted chart, in display order.
type Category struct {
	Name    string                `json:"name"`
	Metrics []catalog.ChartMetric `json:"metrics"`
	GPUKey  string                `json:"gpuKey,omitempty"`
}

// Payload is every emitted chart keyed by display name.
type Payload struct {
	Charts     map[string]Chart `json:"charts"`
	Categories []Category       `json:"categories"`
}

// Build emits one chart per catalog category. Device-fanout categories
// emit one chart per GPU seen across all reports, or a single chart when
// no report has GPU devices. Charts without any dataset are left out.
func Build(c *catalog.Catalog, reports []*analyzer.Report) Payload {
	p := Payload{Charts: make(map[string]Chart)}
	variants := CollectGPUVariants(reports)

	emit := func(name string, cat catalog.ChartCategory, gpuKey string) {
		chart, ok := buildChart(reports, cat.Metrics, gpuKey)
		if !ok {
			return
		}
		p.Charts[name] = chart
		p.Categories = append(p.Categories, Category{Name: name, Metrics: cat.Metrics, GPUKey: gpuKey})
	}

	for _, cat := range c.Charts {
		if !cat.DeviceFanout || len(variants) == 0 {
			emit(cat.Name, cat, "")
			continue
		}
		for _, v := range variants {
			emit(VariantName(cat.Name, v), cat, v.Key)
		}
	}
	return p
}

// VariantName is the display name of a device-fanout chart.
func VariantName(category string, d telemetry.DeviceInfo) string {
	if d.Index == nil {
		return category + " - " + d.DisplayName()
	}
	return category + " #" + strconv.Itoa(*d.Index) + " - " + d.DisplayName()
}

// CollectGPUVariants returns the distinct GPU devices bound in any report,
// in display order.
func CollectGPUVariants(reports []*analyzer.Report) []telemetry.DeviceInfo {
	seen := make(map[string]struct{})
	var out []telemetry.DeviceInfo
	for _, r := range reports {
		for _, d := range r.Devices(telemetry.ClassGPU) {
			if _, dup := seen[d.Key]; dup {
				continue
			}
			seen[d.Key] = struct{}{}
			out = append(out, d)
		}
	}
	telemetry.SortDevices(out)
	return out
}

func buildChart(reports []*analyzer.Report, metrics []catalog.ChartMetric, gpuKey string) (Chart, bool) {
	var (
		chart     Chart
		maxPoints int
		units     []string
	)
	seenUnit := make(map[string]struct{})

	var pred telemetry.Predicate
	if gpuKey != "" {
		pred = telemetry.DevicePredicate(telemetry.ClassGPU, gpuKey)
	}

	for _, cm := range metrics {
		for _, r := range reports {
			series, ok := r.Series(cm.Metric, pred)
			if !ok {
				continue
			}
			data := make([]stats.Value, len(series))
			present := false
			for i, v := range series {
				if cm.Unit == catalog.PercentUnit {
					v = stats.ClampPercent(v)
				}
				data[i] = stats.Of(v)
				if data[i].Valid() {
					present = true
				}
			}
			if !present {
				continue
			}

			if len(data) > maxPoints {
				maxPoints = len(data)
			}
			if cm.Unit != "" {
				if _, dup := seenUnit[cm.Unit]; !dup {
					seenUnit[cm.Unit] = struct{}{}
					units = append(units, cm.Unit)
				}
			}
			chart.Datasets = append(chart.Datasets, Dataset{
				Label:       r.Name + " · " + cm.Label,
				ReportName:  r.Name,
				MetricLabel: cm.Label,
				Unit:        cm.Unit,
				Data:        data,
				Tension:     0.2,
				PointRadius: 2,
				SpanGaps:    true,
			})
		}
	}
	if len(chart.Datasets) == 0 {
		return Chart{}, false
	}

	chart.Labels = make([]int, maxPoints)
	for i := range chart.Labels {
		chart.Labels[i] = i + 1
	}
	chart.YAxisTitle = strings.Join(units, " / ")
	chart.PercMode = percMode(metrics)
	return chart, true
}

func percMode(metrics []catalog.ChartMetric) bool {
	if len(metrics) == 0 {
		return false
	}
	for _, m := range metrics {
		if m.Unit != catalog.PercentUnit {
			return false
		}
	}
	return true
}

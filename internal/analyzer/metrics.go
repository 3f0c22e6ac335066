package analyzer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

// FPSStats holds the frame-rate figures of a report. Derived is set when
// the low percentiles were computed from frame times instead of read from
// dedicated columns.
type FPSStats struct {
	Avg          stats.Value `json:"avg"`
	Percentile1  stats.Value `json:"percentile_1"`
	Percentile01 stats.Value `json:"percentile_01"`
	Derived      bool        `json:"derived,omitempty"`
}

// FrameTime holds frame-time percentiles in milliseconds.
type FrameTime struct {
	Median stats.Value `json:"median"`
	P95    stats.Value `json:"p95"`
	P99    stats.Value `json:"p99"`
}

// GPUDevice is the per-device breakdown of the GPU metric family.
type GPUDevice struct {
	Key            string      `json:"key"`
	Index          int         `json:"index"`
	Indexed        bool        `json:"indexed,omitempty"`
	Name           string      `json:"name"`
	PowerAvg       stats.Value `json:"power_avg"`
	PowerMax       stats.Value `json:"power_max"`
	ClockAvg       stats.Value `json:"clock_avg"`
	ClockMax       stats.Value `json:"clock_max"`
	UsageAvg       stats.Value `json:"usage_avg"`
	UsageMax       stats.Value `json:"usage_max"`
	TempAvg        stats.Value `json:"temp_avg"`
	TempMax        stats.Value `json:"temp_max"`
	MemoryUsageAvg stats.Value `json:"memory_usage_avg"`
	MemoryUsageMax stats.Value `json:"memory_usage_max"`
}

func (d GPUDevice) hasData() bool {
	for _, v := range []stats.Value{d.PowerAvg, d.ClockAvg, d.UsageAvg, d.TempAvg, d.MemoryUsageAvg} {
		if v.Valid() {
			return true
		}
	}
	return false
}

var deviceFields = map[string]func(*GPUDevice) stats.Value{
	"power_avg":        func(d *GPUDevice) stats.Value { return d.PowerAvg },
	"power_max":        func(d *GPUDevice) stats.Value { return d.PowerMax },
	"clock_avg":        func(d *GPUDevice) stats.Value { return d.ClockAvg },
	"clock_max":        func(d *GPUDevice) stats.Value { return d.ClockMax },
	"usage_avg":        func(d *GPUDevice) stats.Value { return d.UsageAvg },
	"usage_max":        func(d *GPUDevice) stats.Value { return d.UsageMax },
	"temp_avg":         func(d *GPUDevice) stats.Value { return d.TempAvg },
	"temp_max":         func(d *GPUDevice) stats.Value { return d.TempMax },
	"memory_usage_avg": func(d *GPUDevice) stats.Value { return d.MemoryUsageAvg },
	"memory_usage_max": func(d *GPUDevice) stats.Value { return d.MemoryUsageMax },
}

// Title is the device heading: "GPU #<index> - <name>", or "GPU - <name>"
// when the capture carried no index.
func (d GPUDevice) Title() string {
	if !d.Indexed {
		return "GPU - " + d.Name
	}
	return "GPU #" + strconv.Itoa(d.Index) + " - " + d.Name
}

// Less orders indexed devices first by index, the rest by name.
func (d GPUDevice) Less(o GPUDevice) bool {
	switch {
	case d.Indexed && o.Indexed:
		return d.Index < o.Index
	case d.Indexed:
		return true
	case o.Indexed:
		return false
	}
	return strings.ToLower(d.Name) < strings.ToLower(o.Name)
}

// Lookup returns the device figure named field; unknown fields are absent.
func (d *GPUDevice) Lookup(field string) stats.Value {
	if d == nil {
		return stats.None()
	}
	if fn, ok := deviceFields[field]; ok {
		return fn(d)
	}
	return stats.None()
}

// Drive is the per-drive disk throughput breakdown.
type Drive struct {
	Key      string      `json:"key"`
	Name     string      `json:"name"`
	ReadAvg  stats.Value `json:"read_avg"`
	ReadMax  stats.Value `json:"read_max"`
	WriteAvg stats.Value `json:"write_avg"`
	WriteMax stats.Value `json:"write_max"`
}

// ReportMetrics is the reduction of one report. Every figure is optional;
// an absent figure means the report had no usable data for it.
type ReportMetrics struct {
	Samples int               `json:"samples"`
	Period  *telemetry.Period `json:"period,omitempty"`

	CPUPowerAvg    stats.Value `json:"cpu_power_avg"`
	CPUPowerMax    stats.Value `json:"cpu_power_max"`
	CPUUsageAvg    stats.Value `json:"cpu_usage_avg"`
	CPUUsageMax    stats.Value `json:"cpu_usage_max"`
	CPUClockAvg    stats.Value `json:"cpu_effective_clock_avg"`
	CPUTempAvg     stats.Value `json:"cpu_temp_avg"`
	CPUTempMax     stats.Value `json:"cpu_temp_max"`
	MaxCoreTemp    stats.Value `json:"max_cpu_core_temp"`
	SystemPowerAvg stats.Value `json:"system_power_avg"`

	GPUPowerAvg       stats.Value `json:"gpu_power_avg"`
	GPUPowerMax       stats.Value `json:"gpu_power_max"`
	GPUPowerInferred  bool        `json:"gpu_power_inferred,omitempty"`
	GPUClockAvg       stats.Value `json:"gpu_clock_avg"`
	GPUUsageAvg       stats.Value `json:"gpu_d3d_usage_avg"`
	GPUUsageMax       stats.Value `json:"gpu_d3d_usage_max"`
	GPUTempAvg        stats.Value `json:"gpu_temp_avg"`
	GPUTempMax        stats.Value `json:"gpu_temp_max"`
	GPUTempLimit      stats.Value `json:"gpu_temp_limit"`
	GPUMemoryUsageAvg stats.Value `json:"gpu_memory_usage_avg"`
	GPUMemoryUsageMax stats.Value `json:"gpu_memory_usage_max"`

	ThermalHeadroomMin stats.Value `json:"thermal_headroom_min"`
	HeadroomInferred   bool        `json:"thermal_headroom_inferred,omitempty"`

	RAMUsageAvg     stats.Value `json:"ram_usage_percent_avg"`
	RAMUsageMax     stats.Value `json:"ram_usage_percent_max"`
	RAMUsedAvg      stats.Value `json:"ram_used_mb_avg"`
	RAMAvailableAvg stats.Value `json:"ram_available_mb_avg"`
	DiskReadAvg     stats.Value `json:"disk_read_rate_avg"`
	DiskWriteAvg    stats.Value `json:"disk_write_rate_avg"`

	FPS         FPSStats    `json:"fps_stats"`
	FrameTime   *FrameTime  `json:"frame_time_percentiles,omitempty"`
	PerfPerWatt stats.Value `json:"perf_per_watt"`

	GPUDevices []GPUDevice `json:"gpuDevices,omitempty"`
	Drives     []Drive     `json:"drives,omitempty"`
}

var reportFields = map[string]func(*ReportMetrics) stats.Value{
	"samples":                 func(m *ReportMetrics) stats.Value { return stats.Of(float64(m.Samples)) },
	"cpu_power_avg":           func(m *ReportMetrics) stats.Value { return m.CPUPowerAvg },
	"cpu_power_max":           func(m *ReportMetrics) stats.Value { return m.CPUPowerMax },
	"cpu_usage_avg":           func(m *ReportMetrics) stats.Value { return m.CPUUsageAvg },
	"cpu_usage_max":           func(m *ReportMetrics) stats.Value { return m.CPUUsageMax },
	"cpu_effective_clock_avg": func(m *ReportMetrics) stats.Value { return m.CPUClockAvg },
	"cpu_temp_avg":            func(m *ReportMetrics) stats.Value { return m.CPUTempAvg },
	"cpu_temp_max":            func(m *ReportMetrics) stats.Value { return m.CPUTempMax },
	"max_cpu_core_temp":       func(m *ReportMetrics) stats.Value { return m.MaxCoreTemp },
	"system_power_avg":        func(m *ReportMetrics) stats.Value { return m.SystemPowerAvg },
	"gpu_power_avg":           func(m *ReportMetrics) stats.Value { return m.GPUPowerAvg },
	"gpu_power_max":           func(m *ReportMetrics) stats.Value { return m.GPUPowerMax },
	"gpu_clock_avg":           func(m *ReportMetrics) stats.Value { return m.GPUClockAvg },
	"gpu_d3d_usage_avg":       func(m *ReportMetrics) stats.Value { return m.GPUUsageAvg },
	"gpu_d3d_usage_max":       func(m *ReportMetrics) stats.Value { return m.GPUUsageMax },
	"gpu_temp_avg":            func(m *ReportMetrics) stats.Value { return m.GPUTempAvg },
	"gpu_temp_max":            func(m *ReportMetrics) stats.Value { return m.GPUTempMax },
	"gpu_temp_limit":          func(m *ReportMetrics) stats.Value { return m.GPUTempLimit },
	"gpu_memory_usage_avg":    func(m *ReportMetrics) stats.Value { return m.GPUMemoryUsageAvg },
	"gpu_memory_usage_max":    func(m *ReportMetrics) stats.Value { return m.GPUMemoryUsageMax },
	"thermal_headroom_min":    func(m *ReportMetrics) stats.Value { return m.ThermalHeadroomMin },
	"ram_usage_percent_avg":   func(m *ReportMetrics) stats.Value { return m.RAMUsageAvg },
	"ram_usage_percent_max":   func(m *ReportMetrics) stats.Value { return m.RAMUsageMax },
	"ram_used_mb_avg":         func(m *ReportMetrics) stats.Value { return m.RAMUsedAvg },
	"ram_available_mb_avg":    func(m *ReportMetrics) stats.Value { return m.RAMAvailableAvg },
	"disk_read_rate_avg":      func(m *ReportMetrics) stats.Value { return m.DiskReadAvg },
	"disk_write_rate_avg":     func(m *ReportMetrics) stats.Value { return m.DiskWriteAvg },
	"perf_per_watt":           func(m *ReportMetrics) stats.Value { return m.PerfPerWatt },
	"fps_avg":                 func(m *ReportMetrics) stats.Value { return m.FPS.Avg },
	"fps_1":                   func(m *ReportMetrics) stats.Value { return m.FPS.Percentile1 },
	"fps_01":                  func(m *ReportMetrics) stats.Value { return m.FPS.Percentile01 },
	"frame_time_median":       func(m *ReportMetrics) stats.Value { return m.frameTime().Median },
	"frame_time_p95":          func(m *ReportMetrics) stats.Value { return m.frameTime().P95 },
	"frame_time_p99":          func(m *ReportMetrics) stats.Value { return m.frameTime().P99 },
}

func (m *ReportMetrics) frameTime() FrameTime {
	if m.FrameTime == nil {
		return FrameTime{}
	}
	return *m.FrameTime
}

// Lookup returns the report figure named field; unknown fields are absent.
func (m *ReportMetrics) Lookup(field string) stats.Value {
	if m == nil {
		return stats.None()
	}
	if fn, ok := reportFields[field]; ok {
		return fn(m)
	}
	return stats.None()
}

// Device returns the retained GPU device bound to key, or nil.
func (m *ReportMetrics) Device(key string) *GPUDevice {
	if m == nil {
		return nil
	}
	for i := range m.GPUDevices {
		if m.GPUDevices[i].Key == key {
			return &m.GPUDevices[i]
		}
	}
	return nil
}

// KnownField reports whether Lookup understands field.
func KnownField(field string) bool {
	_, ok := reportFields[field]
	return ok
}

// KnownDeviceField reports whether GPUDevice.Lookup understands field.
func KnownDeviceField(field string) bool {
	_, ok := deviceFields[field]
	return ok
}

// Fields lists every report field name, sorted.
func Fields() []string {
	out := make([]string, 0, len(reportFields))
	for k := range reportFields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DeviceFields lists every GPU device field name, sorted.
func DeviceFields() []string {
	out := make([]string, 0, len(deviceFields))
	for k := range deviceFields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package summary renders the fixed human-readable digest of one report.
// Exporters print these lines verbatim, so their wording and order are
// stable.
package summary

import (
	"fmt"
	"strconv"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/stats"
)

// PeriodLayout formats capture timestamps.
const PeriodLayout = "02/01/2006 15:04:05"

// PeriodPrefix starts the optional capture-period line.
const PeriodPrefix = "Período:"

const placeholder = "--"

func value(v stats.Value, unit string) string {
	return valueDecimals(v, unit, 2)
}

func valueDecimals(v stats.Value, unit string, decimals int) string {
	f, ok := v.Get()
	if !ok {
		return placeholder
	}
	return strconv.FormatFloat(f, 'f', decimals, 64) + unit
}

func pair(label string, avg, max stats.Value, unit string) string {
	return fmt.Sprintf("%s avg/max: %s / %s", label, value(avg, unit), value(max, unit))
}

// Lines builds the summary of report name from its metrics.
func Lines(name string, m *analyzer.ReportMetrics, tjmax float64) []string {
	if m == nil {
		m = &analyzer.ReportMetrics{}
	}

	lines := []string{
		"Relatório: " + name,
		"Amostras: " + strconv.Itoa(m.Samples),
	}
	if m.Period != nil {
		lines = append(lines, fmt.Sprintf("%s %s - %s (%s)", PeriodPrefix,
			m.Period.Start.Format(PeriodLayout), m.Period.End.Format(PeriodLayout), m.Period.Duration()))
	}

	lines = append(lines,
		"",
		pair("CPU Power", m.CPUPowerAvg, m.CPUPowerMax, " W"),
		pair("CPU Temp", m.CPUTempAvg, m.CPUTempMax, " °C"),
		"",
		pair("GPU Power", m.GPUPowerAvg, m.GPUPowerMax, " W"),
		pair("GPU Temp", m.GPUTempAvg, m.GPUTempMax, " °C"),
		"Limite térmico GPU: "+value(m.GPUTempLimit, " °C"),
		"",
		"Memory Available avg: "+value(m.RAMAvailableAvg, " MB"),
		"Memory Used avg: "+value(m.RAMUsedAvg, " MB"),
		"",
		"Disk Read avg: "+value(m.DiskReadAvg, " MB/s"),
		"Disk Write avg: "+value(m.DiskWriteAvg, " MB/s"),
		"",
	)
	if m.PerfPerWatt.Valid() {
		lines = append(lines, "FPS/W: "+valueDecimals(m.PerfPerWatt, " FPS/W", 3))
	}
	lines = append(lines,
		"FPS médio: "+value(m.FPS.Avg, " FPS"),
		"FPS 1%: "+value(m.FPS.Percentile1, " FPS"),
		"FPS 0.1%: "+value(m.FPS.Percentile01, " FPS"),
		fmt.Sprintf("Thermal headroom (TjMAX %s°C): %s",
			strconv.FormatFloat(tjmax, 'f', -1, 64), value(m.ThermalHeadroomMin, " °C")),
	)

	for _, d := range m.GPUDevices {
		lines = append(lines,
			"",
			d.Title(),
			"  "+pair("Power", d.PowerAvg, d.PowerMax, " W"),
			"  "+pair("Clock", d.ClockAvg, d.ClockMax, " MHz"),
			"  "+pair("Usage", d.UsageAvg, d.UsageMax, " %"),
			"  "+pair("Temp", d.TempAvg, d.TempMax, " °C"),
			"  "+pair("Memory usage", d.MemoryUsageAvg, d.MemoryUsageMax, " %"),
		)
	}
	for _, d := range m.Drives {
		lines = append(lines,
			"",
			"Disco: "+d.Name,
			"  "+pair("Read", d.ReadAvg, d.ReadMax, " MB/s"),
			"  "+pair("Write", d.WriteAvg, d.WriteMax, " MB/s"),
		)
	}
	return lines
}

package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesEmptyMetrics(t *testing.T) {
	lines := Lines("run.csv", &analyzer.ReportMetrics{Samples: 3}, 100)

	want := []string{
		"Relatório: run.csv",
		"Amostras: 3",
		"",
		"CPU Power avg/max: -- / --",
		"CPU Temp avg/max: -- / --",
		"",
		"GPU Power avg/max: -- / --",
		"GPU Temp avg/max: -- / --",
		"Limite térmico GPU: --",
		"",
		"Memory Available avg: --",
		"Memory Used avg: --",
		"",
		"Disk Read avg: --",
		"Disk Write avg: --",
		"",
		"FPS médio: --",
		"FPS 1%: --",
		"FPS 0.1%: --",
		"Thermal headroom (TjMAX 100°C): --",
	}
	assert.Equal(t, want, lines)
}

func TestLinesFormatsValues(t *testing.T) {
	start := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	m := &analyzer.ReportMetrics{
		Samples:            120,
		Period:             &telemetry.Period{Start: start, End: start.Add(90 * time.Second)},
		CPUPowerAvg:        stats.Of(65.456),
		CPUPowerMax:        stats.Of(88),
		GPUPowerAvg:        stats.Of(210),
		GPUPowerMax:        stats.Of(250.5),
		PerfPerWatt:        stats.Of(0.51234),
		ThermalHeadroomMin: stats.Of(12.25),
		FPS:                analyzer.FPSStats{Avg: stats.Of(141.2)},
		GPUDevices: []analyzer.GPUDevice{
			{Key: "gpu-1", Index: 1, Indexed: true, Name: "RTX 4080", PowerAvg: stats.Of(210), PowerMax: stats.Of(250.5)},
		},
		Drives: []analyzer.Drive{
			{Key: "nvme0", Name: "NVMe0", ReadAvg: stats.Of(12.5)},
		},
	}

	lines := Lines("bench.csv", m, 95.5)
	joined := strings.Join(lines, "\n")

	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Período: 02/03/2024 10:00:00 - 02/03/2024 10:01:30 (1m30s)", lines[2])
	assert.Contains(t, joined, "CPU Power avg/max: 65.46 W / 88.00 W")
	assert.Contains(t, joined, "GPU Power avg/max: 210.00 W / 250.50 W")
	assert.Contains(t, joined, "FPS/W: 0.512 FPS/W")
	assert.Contains(t, joined, "FPS médio: 141.20 FPS")
	assert.Contains(t, joined, "Thermal headroom (TjMAX 95.5°C): 12.25 °C")
	assert.Contains(t, joined, "GPU #1 - RTX 4080\n  Power avg/max: 210.00 W / 250.50 W")
	assert.Contains(t, joined, "Disco: NVMe0\n  Read avg/max: 12.50 MB/s / --")
}

func TestLinesUsesDeviceIndex(t *testing.T) {
	m := &analyzer.ReportMetrics{
		GPUDevices: []analyzer.GPUDevice{
			{Key: "gpu-2", Index: 2, Indexed: true, Name: "RTX 3060", PowerAvg: stats.Of(110)},
		},
	}
	joined := strings.Join(Lines("bench.csv", m, 100), "\n")
	assert.Contains(t, joined, "GPU #2 - RTX 3060\n  Power avg/max: 110.00 W / --")
	assert.NotContains(t, joined, "GPU #1")
}

func TestLinesNilMetrics(t *testing.T) {
	lines := Lines("x", nil, 100)
	assert.Equal(t, "Amostras: 0", lines[1])
}

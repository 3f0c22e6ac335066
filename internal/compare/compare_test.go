package compare

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestBestIndex(t *testing.T) {
	idx, ok := BestIndex([]float64{10, 5, 30}, catalog.PreferMax)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = BestIndex([]float64{10, 5, 30}, catalog.PreferMin)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = BestIndex([]float64{10, math.NaN(), 30}, catalog.PreferMax)
	assert.False(t, ok, "a missing value disables the highlight")

	idx, ok = BestIndex([]float64{7, 9, 9}, catalog.PreferMax)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "first occurrence wins ties")

	_, ok = BestIndex([]float64{1, 2}, catalog.PreferNone)
	assert.False(t, ok)
	_, ok = BestIndex(nil, catalog.PreferMax)
	assert.False(t, ok)
}

func TestIsCritical(t *testing.T) {
	assert.True(t, IsCritical(99, f(90), nil))
	assert.True(t, IsCritical(90, f(90), nil))
	assert.False(t, IsCritical(50, nil, nil))
	assert.True(t, IsCritical(3, nil, f(5)))
	assert.False(t, IsCritical(50, f(90), f(5)))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "45.20 %", FormatValue(stats.Of(45.2), " %", 2))
	assert.Equal(t, "1235 MHz", FormatValue(stats.Of(1234.6), " MHz", 0))
	assert.Equal(t, Missing, FormatValue(stats.None(), " W", 1))
}

func TestBuildRow(t *testing.T) {
	def := catalog.ComparisonRow{Label: "Temp", Unit: " °C", Decimals: 1, Prefer: catalog.PreferMin, CriticalHigh: f(90)}
	row := BuildRow(def, []stats.Value{stats.Of(10), stats.None(), stats.Of(95)})

	assert.Equal(t, []string{"10.0 °C", "--", "95.0 °C"}, row.FormattedValues)
	assert.Nil(t, row.BestIndex)
	assert.Equal(t, []bool{false, false, true}, row.Critical)

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"values":[10,null,95]`)
	assert.Contains(t, string(data), `"bestIndex":null`)
}

func TestBuildGridWithDeviceGroups(t *testing.T) {
	a := &analyzer.ReportMetrics{
		CPUUsageAvg: stats.Of(45.2),
		GPUDevices: []analyzer.GPUDevice{
			{Key: "gpu-1", Index: 1, Indexed: true, Name: "RTX 4080", PowerAvg: stats.Of(200), TempMax: stats.Of(92)},
			{Key: "gpu-2", Index: 2, Indexed: true, Name: "RTX 3060", PowerAvg: stats.Of(100)},
		},
	}
	b := &analyzer.ReportMetrics{
		CPUUsageAvg: stats.Of(60),
		GPUDevices: []analyzer.GPUDevice{
			{Key: "gpu-1", Index: 1, Indexed: true, Name: "RX 7900", PowerAvg: stats.Of(250), TempMax: stats.Of(70)},
		},
	}
	c := catalog.Default()
	grid := Build(c, []Entry{{Name: "a.csv", Metrics: a}, {Name: "b.csv", Metrics: b}})

	assert.Equal(t, []string{"a.csv", "b.csv"}, grid.Headers)
	require.Len(t, grid.Groups, len(c.Comparison)+2)

	first := grid.Groups[len(c.Comparison)]
	assert.Equal(t, "GPU #1 - RTX 4080", first.Title)
	require.Len(t, first.Rows, len(c.GPUDeviceRows))
	power := first.Rows[0]
	assert.Equal(t, []string{"200.0 W", "250.0 W"}, power.FormattedValues)
	require.NotNil(t, power.BestIndex)
	assert.Equal(t, 0, *power.BestIndex)

	var tempMax Row
	for _, r := range first.Rows {
		if r.Label == "Temp máx" {
			tempMax = r
		}
	}
	assert.Equal(t, []bool{true, false}, tempMax.Critical)

	second := grid.Groups[len(c.Comparison)+1]
	assert.Equal(t, "GPU #2 - RTX 3060", second.Title)
	assert.Equal(t, []string{"100.0 W", "--"}, second.Rows[0].FormattedValues)
	assert.Nil(t, second.Rows[0].BestIndex)
}

func TestBuildGridAlignsDevicesByKey(t *testing.T) {
	a := &analyzer.ReportMetrics{
		GPUDevices: []analyzer.GPUDevice{
			{Key: "gpu-1", Index: 1, Indexed: true, Name: "RTX 4080", PowerAvg: stats.Of(200)},
			{Key: "gpu-2", Index: 2, Indexed: true, Name: "RTX 3060", PowerAvg: stats.Of(100)},
		},
	}
	b := &analyzer.ReportMetrics{
		GPUDevices: []analyzer.GPUDevice{
			{Key: "arc-a770", Index: 1, Name: "Arc A770", PowerAvg: stats.Of(150)},
			{Key: "gpu-2", Index: 2, Indexed: true, Name: "RTX 3060", PowerAvg: stats.Of(110)},
		},
	}
	c := catalog.Default()
	grid := Build(c, []Entry{{Name: "a.csv", Metrics: a}, {Name: "b.csv", Metrics: b}})

	devices := grid.Groups[len(c.Comparison):]
	require.Len(t, devices, 3)

	assert.Equal(t, "GPU #1 - RTX 4080", devices[0].Title)
	assert.Equal(t, []string{"200.0 W", "--"}, devices[0].Rows[0].FormattedValues)
	assert.Nil(t, devices[0].Rows[0].BestIndex)

	assert.Equal(t, "GPU #2 - RTX 3060", devices[1].Title)
	assert.Equal(t, []string{"100.0 W", "110.0 W"}, devices[1].Rows[0].FormattedValues)

	// unindexed devices follow the indexed ones
	assert.Equal(t, "GPU - Arc A770", devices[2].Title)
	assert.Equal(t, []string{"--", "150.0 W"}, devices[2].Rows[0].FormattedValues)
}

func TestBuildGridNoDevices(t *testing.T) {
	c := catalog.Default()
	grid := Build(c, []Entry{{Name: "only", Metrics: &analyzer.ReportMetrics{}}})
	assert.Len(t, grid.Groups, len(c.Comparison))
	for _, g := range grid.Groups {
		for _, r := range g.Rows {
			assert.Equal(t, []string{"--"}, r.FormattedValues)
			assert.Nil(t, r.BestIndex)
		}
	}
}

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

func table(headers []string, rows ...[]string) telemetry.Table {
	t := telemetry.Table{Headers: headers}
	for _, cells := range rows {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = cells[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func sampleDocument(t *testing.T) Document {
	t.Helper()
	p, err := pipeline.New(pipeline.Config{Catalog: catalog.Default(), Sanitize: telemetry.Sanitize})
	require.NoError(t, err)
	res := p.Analyze([]pipeline.Input{
		{Name: "r1.csv", Table: table([]string{"Uso total da CPU [%]", "CPU Package Power [W]"}, []string{"45.2", "60"}, []string{"abc", "70"})},
		{Name: "r2.csv", Table: table([]string{"CPU Usage [%]", "CPU Package Power [W]"}, []string{"60.0", "80"})},
		{Name: "broken.csv"},
	}, pipeline.Options{})
	return Document{Result: res, Hardware: []string{"CPU: Ryzen | 8 cores"}}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleDocument(t))

	assert.True(t, strings.HasPrefix(md, "# Comparação de relatórios\n"))
	assert.Contains(t, md, "- CPU: Ryzen \\| 8 cores")
	assert.Contains(t, md, "- `broken.csv`: table has no headers")
	assert.Contains(t, md, "| Métrica | r1.csv | r2.csv |")
	assert.Contains(t, md, "| Uso médio de CPU | **45.20 %** | 60.00 % |")
	assert.Contains(t, md, "### r1.csv\n\n```\nRelatório: r1.csv\nAmostras: 2\n")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.html")
	require.NoError(t, WriteHTML(path, sampleDocument(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "<title>Comparação de relatórios</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<strong>45.20 %</strong>")
	assert.Contains(t, page, "window.hwcompare = {")
	assert.Contains(t, page, `"chartCategories"`)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "result.json")
	doc := sampleDocument(t)
	require.NoError(t, WriteJSON(path, doc.Result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded["reports"], 2)
	assert.Len(t, decoded["failures"], 1)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, sampleDocument(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ComparisonSheet, "r1.csv", "r2.csv"}, f.GetSheetList())
	v, err := f.GetCellValue(ComparisonSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "r1.csv", v)

	v, err = f.GetCellValue("r2.csv", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Relatório: r2.csv", v)
}

func TestSheetName(t *testing.T) {
	used := map[string]int{}
	assert.Equal(t, "a_b", sheetName("a/b", used))
	assert.Equal(t, "a_b 2", sheetName("a:b", used))
	assert.Equal(t, "Relatório", sheetName("", used))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40), used)), 28)
}

func TestWriteChartPNGs(t *testing.T) {
	doc := sampleDocument(t)
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := WriteChartPNGs(dir, doc.Result.Charts, doc.Result.ChartCategories)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "cpu.png"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
}

func TestChartFileName(t *testing.T) {
	assert.Equal(t, "gpu-0-rtx-4080.png", ChartFileName("GPU #0 - RTX 4080"))
	assert.Equal(t, "memoria.png", ChartFileName("Memória"))
	assert.Equal(t, "chart.png", ChartFileName("###"))
}

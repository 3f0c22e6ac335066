package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/hwcompare/internal/charts"
	"github.com/mwiater/hwcompare/internal/textnorm"
)

// ChartFileName is the PNG file name of a chart.
func ChartFileName(name string) string {
	slug := strings.ReplaceAll(textnorm.Normalize(name), " ", "-")
	if slug == "" {
		slug = "chart"
	}
	return slug + ".png"
}

// WriteChartPNGs renders every chart of categories into dir, one PNG per
// chart, in category order. Missing samples are left out of the line.
// It returns the written paths.
func WriteChartPNGs(dir string, payload map[string]charts.Chart, categories []charts.Category) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create chart directory %s: %w", dir, err)
	}
	var written []string
	for _, cat := range categories {
		chart, ok := payload[cat.Name]
		if !ok {
			continue
		}
		p, err := renderChart(cat.Name, chart)
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", cat.Name, err)
		}
		path := filepath.Join(dir, ChartFileName(cat.Name))
		if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
			return written, fmt.Errorf("unable to save chart %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderChart(title string, chart charts.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Amostras"
	p.Y.Label.Text = chart.YAxisTitle
	p.Legend.Top = true

	for i, ds := range chart.Datasets {
		pts := make(plotter.XYs, 0, len(ds.Data))
		for j, v := range ds.Data {
			y, ok := v.Get()
			if !ok {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(j + 1), Y: y})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(ds.Label, line)
	}
	if chart.PercMode {
		p.Y.Min, p.Y.Max = 0, 100
	}
	return p, nil
}

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mwiater/hwcompare/internal/util"
)

type htmlView struct {
	Title       string
	Body        template.HTML
	PayloadJSON template.JS
}

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the Markdown document inside a standalone page. The chart
// payload is embedded as JSON for scripts that want to plot it.
func HTML(d Document) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(d)), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	payload, err := json.Marshal(struct {
		Charts          any `json:"charts"`
		ChartCategories any `json:"chartCategories"`
	}{d.Result.Charts, d.Result.ChartCategories})
	if err != nil {
		return "", fmt.Errorf("marshal chart payload: %w", err)
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, htmlView{
		Title:       d.title(),
		Body:        template.HTML(body.String()),
		PayloadJSON: template.JS(payload),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteHTML writes HTML(d) to path.
func WriteHTML(path string, d Document) error {
	page, err := HTML(d)
	if err != nil {
		return err
	}
	if err := util.WriteFile(path, []byte(page)); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("hwcompare-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --primary: #334155;
      --light: #F1F5F9;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body { font-family: system-ui, sans-serif; background: var(--light); color: var(--text); margin: 2rem; }
    h1, h2 { color: var(--primary); }
    table { border-collapse: collapse; margin-bottom: 1.5rem; background: #fff; }
    th, td { border: 1px solid var(--border); padding: 0.35rem 0.75rem; }
    td:not(:first-child) { text-align: right; font-variant-numeric: tabular-nums; }
    pre { background: #fff; border: 1px solid var(--border); padding: 0.75rem; }
  </style>
</head>
<body>
{{ .Body }}
<script>
  window.hwcompare = {{ .PayloadJSON }};
</script>
</body>
</html>
`

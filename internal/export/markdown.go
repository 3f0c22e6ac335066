package export

import (
	"fmt"
	"strings"

	"github.com/mwiater/hwcompare/internal/compare"
	"github.com/mwiater/hwcompare/internal/pipeline"
)

// Document is what the document exporters render.
type Document struct {
	Title    string
	Result   pipeline.Result
	Hardware []string
}

func (d Document) title() string {
	if d.Title == "" {
		return "Comparação de relatórios"
	}
	return d.Title
}

// Markdown renders the document. Best cells are bold and critical cells
// carry a warning sign.
func Markdown(d Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.title())

	if len(d.Hardware) > 0 {
		b.WriteString("## Hardware\n\n")
		for _, line := range d.Hardware {
			fmt.Fprintf(&b, "- %s\n", escapeCell(line))
		}
		b.WriteString("\n")
	}

	if len(d.Result.Failures) > 0 {
		b.WriteString("## Falhas\n\n")
		for _, f := range d.Result.Failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Report, escapeCell(fmt.Sprint(f.Err)))
		}
		b.WriteString("\n")
	}

	for _, g := range d.Result.Comparison.Groups {
		writeGroup(&b, d.Result.Comparison.Headers, g)
	}

	if len(d.Result.Reports) > 0 {
		b.WriteString("## Resumo\n\n")
		for _, r := range d.Result.Reports {
			fmt.Fprintf(&b, "### %s\n\n```\n%s\n```\n\n", r.Name, strings.Join(r.SummaryLines, "\n"))
		}
	}
	return b.String()
}

func writeGroup(b *strings.Builder, headers []string, g compare.Group) {
	fmt.Fprintf(b, "## %s\n\n", g.Title)
	b.WriteString("| Métrica |")
	for _, h := range headers {
		fmt.Fprintf(b, " %s |", escapeCell(h))
	}
	b.WriteString("\n|---|")
	for range headers {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for _, row := range g.Rows {
		fmt.Fprintf(b, "| %s |", escapeCell(row.Label))
		for i, cell := range row.FormattedValues {
			fmt.Fprintf(b, " %s |", decorate(row, i, escapeCell(cell)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func decorate(row compare.Row, i int, cell string) string {
	if row.BestIndex != nil && *row.BestIndex == i {
		cell = "**" + cell + "**"
	}
	if i < len(row.Critical) && row.Critical[i] {
		cell += " ⚠"
	}
	return cell
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

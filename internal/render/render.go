// Package render prints analysis results to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"

	"github.com/mwiater/hwcompare/internal/compare"
	"github.com/mwiater/hwcompare/internal/pipeline"
)

var (
	titleText    = color.New(color.FgCyan, color.Bold).SprintFunc()
	headerText   = color.New(color.Bold).SprintFunc()
	bestText     = color.New(color.FgGreen, color.Bold).SprintFunc()
	criticalText = color.New(color.FgRed).SprintFunc()
	failedText   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// SetColor forces colour output on or off.
func SetColor(enabled bool) { color.NoColor = !enabled }

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// Grid prints the comparison grid. Best cells are green and critical cells
// red; a cell that is both stays red.
func Grid(w io.Writer, g compare.Grid) {
	labelWidth := utf8.RuneCountInString("Métrica")
	colWidths := make([]int, len(g.Headers))
	for i, h := range g.Headers {
		colWidths[i] = utf8.RuneCountInString(h)
	}
	for _, grp := range g.Groups {
		for _, row := range grp.Rows {
			labelWidth = max(labelWidth, utf8.RuneCountInString(row.Label))
			for i, cell := range row.FormattedValues {
				if i < len(colWidths) {
					colWidths[i] = max(colWidths[i], utf8.RuneCountInString(cell))
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(headerText(pad("Métrica", labelWidth)))
	for i, h := range g.Headers {
		b.WriteString("  ")
		b.WriteString(headerText(padLeft(h, colWidths[i])))
	}
	fmt.Fprintln(w, b.String())

	for _, grp := range g.Groups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleText(grp.Title))
		for _, row := range grp.Rows {
			b.Reset()
			b.WriteString(pad(row.Label, labelWidth))
			for i, cell := range row.FormattedValues {
				if i >= len(colWidths) {
					break
				}
				b.WriteString("  ")
				b.WriteString(colorize(row, i, padLeft(cell, colWidths[i])))
			}
			fmt.Fprintln(w, b.String())
		}
	}
}

func colorize(row compare.Row, i int, cell string) string {
	switch {
	case i < len(row.Critical) && row.Critical[i]:
		return criticalText(cell)
	case row.BestIndex != nil && *row.BestIndex == i:
		return bestText(cell)
	default:
		return cell
	}
}

// Lines prints lines followed by a blank line.
func Lines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}

// Result prints every summary, the failures and the grid.
func Result(w io.Writer, res pipeline.Result, hardware []string) {
	if len(hardware) > 0 {
		fmt.Fprintln(w, titleText("Hardware"))
		Lines(w, hardware)
	}
	for _, r := range res.Reports {
		Lines(w, r.SummaryLines)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(w, "%s %s\n", failedText("FALHA"), f.Error())
	}
	if len(res.Failures) > 0 {
		fmt.Fprintln(w)
	}
	if len(res.Reports) > 0 {
		Grid(w, res.Comparison)
	}
}

// Dump pretty-prints v for --debug output.
func Dump(w io.Writer, v any) {
	pp.ColoringEnabled = !color.NoColor
	_, _ = pp.Fprintln(w, v)
}

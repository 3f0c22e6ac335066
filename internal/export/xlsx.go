package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mwiater/hwcompare/internal/util"
)

// ComparisonSheet is the first sheet of the workbook.
const ComparisonSheet = "Comparação"

// invalidSheetChars are rejected by Excel in sheet names.
var invalidSheetChars = strings.NewReplacer(":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")")

// WriteXLSX writes the formatted comparison grid to one sheet, best cells
// in green and critical cells in red, plus one summary sheet per report.
func WriteXLSX(path string, d Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ComparisonSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeComparisonSheet(f, d); err != nil {
		return err
	}

	used := map[string]int{ComparisonSheet: 1}
	for _, r := range d.Result.Reports {
		name := sheetName(r.Name, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		for i, line := range r.SummaryLines {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetCellValue(name, cell, line); err != nil {
				return err
			}
		}
		_ = f.SetColWidth(name, "A", "A", 60)
	}

	if err := util.EnsureDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("unable to write workbook %s: %w", path, err)
	}
	return nil
}

func writeComparisonSheet(f *excelize.File, d Document) error {
	sheet := ComparisonSheet
	headers := d.Result.Comparison.Headers

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	best, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "1E7B34"},
	})
	if err != nil {
		return err
	}
	critical, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "B91C1C"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FDE2E1"}},
	})
	if err != nil {
		return err
	}

	set := func(col, row int, v any, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(sheet, cell, cell, style)
		}
		return nil
	}

	row := 1
	if err := set(1, row, "Métrica", bold); err != nil {
		return err
	}
	for i, h := range headers {
		if err := set(i+2, row, h, bold); err != nil {
			return err
		}
	}

	for _, g := range d.Result.Comparison.Groups {
		row += 2
		if err := set(1, row, g.Title, bold); err != nil {
			return err
		}
		for _, r := range g.Rows {
			row++
			if err := set(1, row, r.Label, 0); err != nil {
				return err
			}
			for i, value := range r.FormattedValues {
				style := 0
				if r.BestIndex != nil && *r.BestIndex == i {
					style = best
				}
				if i < len(r.Critical) && r.Critical[i] {
					style = critical
				}
				if err := set(i+2, row, value, style); err != nil {
					return err
				}
			}
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	return nil
}

func sheetName(name string, used map[string]int) string {
	base := invalidSheetChars.Replace(name)
	if base == "" {
		base = "Relatório"
	}
	if r := []rune(base); len(r) > 28 {
		base = string(r[:28])
	}
	used[base]++
	if n := used[base]; n > 1 {
		return fmt.Sprintf("%s %d", base, n)
	}
	return base
}

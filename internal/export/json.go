// Package export writes analysis results to files: JSON, Markdown, HTML,
// XLSX workbooks and PNG charts.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/mwiater/hwcompare/internal/util"
)

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal result JSON: %w", err)
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("unable to write result JSON %s: %w", path, err)
	}
	return nil
}

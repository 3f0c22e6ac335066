package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  TjMAX:           %g°C\n", cfg.TjMaxValue())
	fmt.Fprintf(out, "  Workers:         %d\n", cfg.WorkerCount())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Hardware:        %s\n", orNone(cfg.HardwarePath))
	fmt.Fprintf(out, "  Catalog:         %s\n", orBuiltin(cfg.CatalogPath))
	fmt.Fprintf(out, "  Store:           %s\n", orNone(cfg.StorePath))

	exports := []struct{ label, path string }{
		{"JSON", cfg.Export},
		{"Markdown", cfg.ExportMarkdown},
		{"HTML", cfg.ExportHTML},
		{"XLSX", cfg.ExportXLSX},
		{"Charts Dir", cfg.ChartsDir},
	}
	for _, e := range exports {
		if e.path != "" {
			fmt.Fprintf(out, "  Export %-9s %s\n", e.label+":", e.path)
		}
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func orBuiltin(s string) string {
	if s == "" {
		return "(built-in)"
	}
	return s
}

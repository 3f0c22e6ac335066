// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// TestLoad covers a valid file with defaults applied by the accessors,
// malformed JSON, negative settings and a missing file.
func TestLoad(t *testing.T) {
	validConfig := `{
        "tjmax": 95,
        "catalogPath": "catalog.yaml",
        "workers": 2,
        "exportHTML": "out/report.html"
    }`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.TjMaxValue() != 95 {
		t.Fatalf("expected tjmax 95, got %v", cfg.TjMaxValue())
	}
	if cfg.WorkerCount() != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.WorkerCount())
	}
	if cfg.LogFilePath() != DefaultLogFile {
		t.Fatalf("expected default log file %q, got %q", DefaultLogFile, cfg.LogFilePath())
	}
	if cfg.ExportHTML != "out/report.html" {
		t.Fatalf("expected exportHTML to be read, got %q", cfg.ExportHTML)
	}
	if cfg.ConfigPath == "" {
		t.Fatal("expected ConfigPath to be recorded")
	}

	invalidJSON := `{ "tjmax": `
	tmpfile2, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile2.Name())
	if _, err := tmpfile2.Write([]byte(invalidJSON)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile2.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile2.Name()); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	negative := `{ "workers": -1 }`
	tmpfile3, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile3.Name())
	if _, err := tmpfile3.Write([]byte(negative)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile3.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile3.Name()); err == nil {
		t.Fatal("Load() with negative workers should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestAccessorDefaults(t *testing.T) {
	var nilCfg *Config
	if nilCfg.TjMaxValue() != DefaultTjMax {
		t.Fatalf("nil config tjmax = %v", nilCfg.TjMaxValue())
	}
	if nilCfg.LogFilePath() != DefaultLogFile {
		t.Fatalf("nil config log file = %q", nilCfg.LogFilePath())
	}
	if nilCfg.WorkerCount() < 1 {
		t.Fatalf("worker count must be positive, got %d", nilCfg.WorkerCount())
	}

	cfg := &Config{TjMax: 0, LogFile: "x.log"}
	if cfg.TjMaxValue() != DefaultTjMax {
		t.Fatalf("zero tjmax should fall back, got %v", cfg.TjMaxValue())
	}
	if cfg.LogFilePath() != "x.log" {
		t.Fatalf("log file = %q", cfg.LogFilePath())
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Debug: true, TjMax: 90, StorePath: "runs.db", ExportXLSX: "cmp.xlsx"}
	ShowConfig(&buf, "/tmp/config.json", cfg, Config{})
	out := buf.String()

	for _, want := range []string{
		"Config file: /tmp/config.json",
		"  Debug:           true",
		"  TjMAX:           90°C",
		"  Store:           runs.db",
		"  Catalog:         (built-in)",
		"cmp.xlsx",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Markdown") {
		t.Fatalf("unset exports should be omitted:\n%s", out)
	}

	buf.Reset()
	ShowConfig(&buf, "", nil, Config{JSONMode: true})
	out = buf.String()
	if !strings.Contains(out, "No config file loaded") || !strings.Contains(out, "  JSON Mode:       true") {
		t.Fatalf("fallback output unexpected:\n%s", out)
	}
}

package hwcompare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mwiater/hwcompare/internal/catalog"
)

func TestCatalogValidateCommand(t *testing.T) {
	useConfig(t, "{}")
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
comparison:
  - title: Only CPU
    rows:
      - label: CPU
        field: cpu_usage_avg
        unit: " %"
        decimals: 1
        prefer: min
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	out, err := execute(t, "catalog", "validate", path)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "Catalog OK:") || !strings.Contains(out, "1 comparison groups") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCatalogValidateRejectsUnknownField(t *testing.T) {
	useConfig(t, "{}")
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"comparison": [{"title": "X", "rows": [{"label": "X", "field": "no_such_field"}]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := execute(t, "catalog", "validate", path); err == nil {
		t.Fatal("expected error for unknown comparison field")
	}
}

func TestWriteCatalogYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCatalog(&buf, catalog.Default(), "yaml"); err != nil {
		t.Fatalf("writeCatalog: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	for _, key := range []string{"metrics", "charts", "comparison", "gpuDeviceRows"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("missing section %q", key)
		}
	}

	if err := writeCatalog(&buf, catalog.Default(), "toml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

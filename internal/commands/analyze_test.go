package hwcompare

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const captureA = "Date,Time,CPU Package Power [W],CPU Usage [%]\n" +
	"1.2.2024,10:00:00.000,40,20\n" +
	"1.2.2024,10:00:01.000,50,30\n"

const captureB = "Date,Time,CPU Package Power [W],CPU Usage [%]\n" +
	"1.2.2024,11:00:00.000,60,70\n" +
	"1.2.2024,11:00:01.000,70,90\n"

func writeCapture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

type jsonResult struct {
	Reports []struct {
		Name         string   `json:"name"`
		SummaryLines []string `json:"summaryLines"`
	} `json:"reports"`
	Failures []struct {
		Report string `json:"report"`
		Error  string `json:"error"`
	} `json:"failures"`
	Comparison struct {
		Headers []string `json:"headers"`
	} `json:"comparison"`
	TjMax float64 `json:"tjmax"`
}

func TestAnalyzeJSONMode(t *testing.T) {
	useConfig(t, "{}")
	dir := t.TempDir()
	a := writeCapture(t, dir, "a.csv", captureA)
	b := writeCapture(t, dir, "b.csv", captureB)
	empty := writeCapture(t, dir, "empty.csv", "")

	out, err := execute(t, "--jsonMode", "--tjmax", "95", "analyze", a, empty, b)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	var res jsonResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(res.Reports) != 2 || res.Reports[0].Name != "a.csv" || res.Reports[1].Name != "b.csv" {
		t.Fatalf("unexpected reports: %+v", res.Reports)
	}
	if len(res.Failures) != 1 || res.Failures[0].Report != "empty.csv" {
		t.Fatalf("expected empty.csv to fail, got %+v", res.Failures)
	}
	if strings.Join(res.Comparison.Headers, ",") != "a.csv,b.csv" {
		t.Fatalf("unexpected headers: %v", res.Comparison.Headers)
	}
	if res.TjMax != 95 {
		t.Fatalf("expected tjmax 95, got %v", res.TjMax)
	}
	if res.Reports[0].SummaryLines[1] != "Amostras: 2" {
		t.Fatalf("unexpected summary: %v", res.Reports[0].SummaryLines)
	}
}

func TestAnalyzeTextOutput(t *testing.T) {
	useConfig(t, "{}")
	dir := t.TempDir()
	a := writeCapture(t, dir, "a.csv", captureA)

	out, err := execute(t, "analyze", a)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	for _, want := range []string{"Relatório: a.csv", "Métrica", "a.csv"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeAllFailed(t *testing.T) {
	useConfig(t, "{}")
	empty := writeCapture(t, t.TempDir(), "empty.csv", "")

	_, err := execute(t, "--jsonMode", "analyze", empty)
	if !errors.Is(err, ErrAllReportsFailed) {
		t.Fatalf("expected ErrAllReportsFailed, got %v", err)
	}
}

func TestAnalyzeExportsStoreAndCompare(t *testing.T) {
	useConfig(t, "{}")
	dir := t.TempDir()
	a := writeCapture(t, dir, "a.csv", captureA)
	b := writeCapture(t, dir, "b.csv", captureB)
	storePath := filepath.Join(dir, "history.db")
	jsonPath := filepath.Join(dir, "out", "result.json")
	mdPath := filepath.Join(dir, "out", "result.md")

	if _, err := execute(t, "--jsonMode", "--store", storePath, "analyze",
		"--export", jsonPath, "--exportMarkdown", mdPath, a, b); err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	for _, p := range []string{jsonPath, mdPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected export %s: %v", p, err)
		}
	}
	md, _ := os.ReadFile(mdPath)
	if !strings.Contains(string(md), "## Resumo") {
		t.Fatalf("markdown export missing summaries:\n%s", md)
	}

	resetCommandFlags(rootCmd)
	out, err := execute(t, "--jsonMode", "--store", storePath, "history")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	var records []struct {
		Name string `json:"name"`
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("history output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stored analyses, got %d", len(records))
	}

	resetCommandFlags(rootCmd)
	out, err = execute(t, "--jsonMode", "--store", storePath, "compare", "--stored", "b.csv", "--stored", "a.csv")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	var res jsonResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("compare output is not JSON: %v\n%s", err, out)
	}
	if strings.Join(res.Comparison.Headers, ",") != "b.csv,a.csv" {
		t.Fatalf("unexpected headers: %v", res.Comparison.Headers)
	}

	resetCommandFlags(rootCmd)
	if _, err := execute(t, "--store", storePath, "compare", "--stored", "missing.csv"); err == nil {
		t.Fatal("expected error for unknown reference")
	}
}

func TestCompareRequiresStore(t *testing.T) {
	useConfig(t, "{}")
	if _, err := execute(t, "compare", "--stored", "a.csv"); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "Nenhuma análise registrada.") {
		t.Fatalf("unexpected empty history: %q", buf.String())
	}
}

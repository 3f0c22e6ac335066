// internal/commands/root_test.go
package hwcompare

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs([]string{})
	})

	rootCmd.SetArgs([]string{"nonexistent"})
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"hwcompare\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestListCommands(t *testing.T) {
	var buf bytes.Buffer
	ListCommands(&buf, []CommandInfo{
		{Path: "hwcompare", Description: "root"},
		{Path: "  hwcompare analyze", Args: "<file.csv>...", Description: "Summarize", Captures: true},
	})
	out := buf.String()
	if !strings.HasPrefix(out, "hwcompare commands:\n") {
		t.Fatalf("missing heading: %q", out)
	}
	if !strings.Contains(out, "  hwcompare                           root\n") {
		t.Fatalf("expected aligned columns, got %q", out)
	}
	if !strings.Contains(out, "*   hwcompare analyze  <file.csv>...  Summarize\n") {
		t.Fatalf("expected marked capture command, got %q", out)
	}
	if !strings.HasSuffix(out, "* reads telemetry captures (plain or gzip/zstd/lz4 compressed CSV)\n") {
		t.Fatalf("missing legend: %q", out)
	}
}

func TestListCommandsNoLegendWithoutCaptures(t *testing.T) {
	var buf bytes.Buffer
	ListCommands(&buf, []CommandInfo{{Path: "hwcompare history", Description: "Stored analyses"}})
	if strings.Contains(buf.String(), "reads telemetry captures") {
		t.Fatalf("unexpected legend: %q", buf.String())
	}
}

func TestCollectCommandDataIncludesSubcommands(t *testing.T) {
	data := collectCommandData(rootCmd, "", "")
	byPath := make(map[string]CommandInfo, len(data))
	for _, d := range data {
		byPath[d.Path] = d
	}
	for _, path := range []string{
		"  hwcompare analyze",
		"  hwcompare compare",
		"    hwcompare catalog validate",
		"    hwcompare show config",
	} {
		if _, ok := byPath[path]; !ok {
			t.Fatalf("command %q not listed", path)
		}
	}

	analyze := byPath["  hwcompare analyze"]
	if analyze.Args != "<file.csv>..." || !analyze.Captures {
		t.Fatalf("analyze listed as %+v", analyze)
	}
	if byPath["    hwcompare catalog validate"].Captures {
		t.Fatal("catalog validate should not be marked as reading captures")
	}
	for path := range byPath {
		if strings.Contains(path, "completion") {
			t.Fatalf("completion command listed: %q", path)
		}
	}
}

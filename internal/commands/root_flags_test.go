package hwcompare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/hwcompare/internal/logging"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

// resetCommandFlags restores every flag in the tree to its default.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at a fresh config file and a log file
// inside the test's temp dir.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := writeTempConfig(t, content)

	prevCfgFile := cfgFile
	resetCommandFlags(rootCmd)
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "hwcompare.log"))
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		resetCommandFlags(rootCmd)
		_ = logging.Close()
	})
	return configPath
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	configPath := useConfig(t, "{}")
	storePath := filepath.Join(t.TempDir(), "history.db")

	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("jsonMode", "true")
	_ = rootCmd.PersistentFlags().Set("tjmax", "95")
	_ = rootCmd.PersistentFlags().Set("workers", "3")
	_ = rootCmd.PersistentFlags().Set("store", storePath)
	_ = rootCmd.PersistentFlags().Set("catalog", "catalog.yaml")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s, got %+v", configPath, currentConfig)
	}
	if !currentConfig.Debug || !currentConfig.JSONMode {
		t.Fatalf("expected flag values to flow into config: %+v", currentConfig)
	}
	if currentConfig.TjMaxValue() != 95 || currentConfig.WorkerCount() != 3 {
		t.Fatalf("expected tjmax 95 and 3 workers, got %+v", currentConfig)
	}
	if currentConfig.StorePath != storePath || currentConfig.CatalogPath != "catalog.yaml" {
		t.Fatalf("expected path flags set, got %+v", currentConfig)
	}
}

func TestPersistentPreRunEReadsConfigFile(t *testing.T) {
	useConfig(t, `{"tjmax": 90, "hardwarePath": "hw.xml", "workers": 2}`)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.TjMaxValue() != 90 {
		t.Fatalf("expected tjmax from file, got %v", currentConfig.TjMax)
	}
	if currentConfig.HardwarePath != "hw.xml" || currentConfig.Workers != 2 {
		t.Fatalf("expected file values, got %+v", currentConfig)
	}
}

func TestPersistentPreRunERejectsNegativeWorkers(t *testing.T) {
	useConfig(t, "{}")
	_ = rootCmd.PersistentFlags().Set("workers", "-2")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for negative workers")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := useConfig(t, `{"storePath": "runs.db"}`)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--debug", "show", "config"})
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "Store:           runs.db") {
		t.Fatalf("expected store path in output, got %s", out)
	}
}

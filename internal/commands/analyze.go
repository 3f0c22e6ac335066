// internal/commands/analyze.go
package hwcompare

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportFlagKeys are the analyze flags bound to config keys of the same name.
var exportFlagKeys = []string{"export", "exportMarkdown", "exportHTML", "exportXLSX", "chartsDir"}

// analyzeCmd summarizes sensor captures and compares them side by side.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>...",
	Short: "Summarize and compare sensor CSV captures",
	Long: `Decode one or more sensor logs (CSV, optionally gzip, zstd or lz4
compressed), summarize each one, and print the comparison grid with the best
value per row highlighted. Export flags write the same result as JSON,
Markdown, HTML, XLSX or PNG charts. The command fails only when every
report failed.`,
	Args: cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		syncExportFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args)
	},
}

func init() {
	addExportFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("export", "", "write the full result to this JSON file")
	cmd.Flags().String("exportMarkdown", "", "write the comparison to this Markdown file")
	cmd.Flags().String("exportHTML", "", "write the comparison to this HTML file")
	cmd.Flags().String("exportXLSX", "", "write the comparison to this XLSX workbook")
	cmd.Flags().String("chartsDir", "", "write one PNG per chart into this directory")
}

// syncExportFlags binds the command's export flags to viper and refreshes
// the merged config with their final values.
func syncExportFlags(cmd *cobra.Command) {
	for _, name := range exportFlagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		_ = viper.BindPFlag(name, flag)
	}
	cfg := config()
	cfg.Export = viper.GetString("export")
	cfg.ExportMarkdown = viper.GetString("exportMarkdown")
	cfg.ExportHTML = viper.GetString("exportHTML")
	cfg.ExportXLSX = viper.GetString("exportXLSX")
	cfg.ChartsDir = viper.GetString("chartsDir")
}

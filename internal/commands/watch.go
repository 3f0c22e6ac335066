// internal/commands/watch.go
package hwcompare

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/logging"
)

// watchDebounce collapses bursts of writes into one re-analysis.
const watchDebounce = 500 * time.Millisecond

// watchCmd re-runs the analysis whenever one of the captures changes.
var watchCmd = &cobra.Command{
	Use:   "watch <file.csv>...",
	Short: "Re-analyze captures whenever they change",
	Long: `Analyze the given captures, then keep watching them and print a fresh
summary and comparison after every change. Useful while a sensor logger is
still appending to a capture. Export flags are applied on every run.`,
	Args: cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		syncExportFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rerun := func() {
			if err := runAnalyze(cmd, args); err != nil {
				logging.Logger().Warn("analysis failed", "error", err)
			}
		}
		rerun()
		return watchFiles(ctx, args, watchDebounce, rerun)
	},
}

func init() {
	addExportFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

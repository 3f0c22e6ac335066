// internal/commands/view.go
package hwcompare

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/tui"
)

// viewCmd opens the interactive comparison viewer.
var viewCmd = &cobra.Command{
	Use:   "view <file.csv>...",
	Short: "Browse the comparison grid interactively",
	Long: `Analyze the given captures and open a terminal viewer. Left and right
switch comparison groups, up and down move between rows, tab selects the
report column, s toggles that report's summary, r re-reads the files and
q quits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		return tui.Run(func() (pipeline.Result, error) {
			a, err := analyzeFiles(cfg, args)
			return a.Result, err
		})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

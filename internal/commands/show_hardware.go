package hwcompare

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/hardware"
	"github.com/mwiater/hwcompare/internal/render"
)

// showHardwareCmd prints the profile extracted from an HWiNFO XML export.
var showHardwareCmd = &cobra.Command{
	Use:   "hardware [file.xml]",
	Short: "Show the hardware profile of an HWiNFO XML export",
	Long: `Parse an HWiNFO XML export (the --hardware file when no argument is
given) and print the system, OS, CPU, memory, drive and GPU lines.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		path := cfg.HardwarePath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no hardware file given: pass one or set --hardware")
		}

		root, err := hardware.Load(path)
		if err != nil {
			return err
		}
		profile, err := hardware.ExtractProfile(root)
		if err != nil {
			return err
		}
		if cfg.JSONMode {
			return writeJSON(cmd.OutOrStdout(), profile)
		}
		render.Lines(cmd.OutOrStdout(), profile.Lines())
		return nil
	},
}

func init() {
	showCmd.AddCommand(showHardwareCmd)
}

package hwcompare

import (
	"strings"

	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands'. Commands that take capture files
// are flagged so the user can tell them apart from the store and catalog
// tooling.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every hwcompare command with its arguments",
	Long: `The 'commands' subcommand walks the hwcompare command tree and prints each
command path, its positional arguments and its short description. Commands
that read telemetry captures are marked with '*'.`,
	Run: func(cmd *cobra.Command, args []string) {
		ListCommands(cmd.OutOrStdout(), collectCommandData(rootCmd, "", ""))
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData flattens the command tree below cmd. Help, completion
// and hidden commands are skipped.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []CommandInfo {
	if (cmd.HasParent() && !cmd.IsAvailableCommand()) || cmd.Name() == "completion" {
		return nil
	}

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	usage := strings.TrimSpace(strings.TrimPrefix(cmd.Use, cmd.Name()))
	all := []CommandInfo{{
		Path:        indent + fullPath,
		Args:        usage,
		Description: cmd.Short,
		Captures:    strings.Contains(usage, ".csv"),
	}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}

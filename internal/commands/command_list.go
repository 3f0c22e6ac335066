package hwcompare

import (
	"fmt"
	"io"
	"strings"
)

// CommandInfo describes one command for 'list commands'.
type CommandInfo struct {
	Path        string
	Args        string
	Description string
	// Captures is set for commands that take telemetry capture files.
	Captures bool
}

const captureMark = "*"

// ListCommands prints commands as aligned path, argument and description
// columns, followed by a legend when any command reads captures.
func ListCommands(out io.Writer, commands []CommandInfo) {
	pathWidth, argsWidth := 0, 0
	marked := false
	for _, c := range commands {
		pathWidth = max(pathWidth, len(c.Path))
		argsWidth = max(argsWidth, len(c.Args))
		marked = marked || c.Captures
	}

	fmt.Fprintln(out, "hwcompare commands:")
	for _, c := range commands {
		mark := " "
		if c.Captures {
			mark = captureMark
		}
		line := fmt.Sprintf("%s %-*s  %-*s  %s", mark, pathWidth, c.Path, argsWidth, c.Args, c.Description)
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	if marked {
		fmt.Fprintf(out, "\n%s reads telemetry captures (plain or gzip/zstd/lz4 compressed CSV)\n", captureMark)
	}
}

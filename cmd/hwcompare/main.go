// cmd/hwcompare/main.go
package main

import (
	"github.com/mwiater/hwcompare/internal/appconfig"
	cmd "github.com/mwiater/hwcompare/internal/commands"
	"github.com/mwiater/hwcompare/internal/logging"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	loadConfig     = appconfig.Load
	initLogging    = logging.Init
	closeLogging   = logging.Close
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main opens the log file named by the config file, when there is one, so
// that anything logged before the command tree takes over is kept, then
// hands control to the cobra root command.
func main() {
	logPath := appconfig.DefaultLogFile
	if cfg, err := loadConfig(""); err == nil {
		logPath = cfg.LogFilePath()
	}
	if err := initLogging(logPath); err == nil {
		defer closeLogging()
	}

	setVersionInfo(version, commit, date)
	executeCmd()
}

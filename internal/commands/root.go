// internal/commands/root.go
package hwcompare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/hwcompare/internal/appconfig"
	"github.com/mwiater/hwcompare/internal/logging"
	"github.com/mwiater/hwcompare/internal/render"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// flagKeys maps persistent flag names to their viper keys.
var flagKeys = map[string]string{
	"debug":    "debug",
	"jsonMode": "jsonMode",
	"logFile":  "logFile",
	"tjmax":    "tjmax",
	"hardware": "hardwarePath",
	"catalog":  "catalogPath",
	"store":    "storePath",
	"workers":  "workers",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "hwcompare",
	Short:        "hwcompare: summarize and compare hardware sensor captures",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// Flags the user did not set take the config value so pflags and
		// viper agree on the final value.
		for name, key := range flagKeys {
			if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
				continue
			}
			switch name {
			case "debug", "jsonMode":
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(key)))
			case "tjmax":
				_ = cmd.Flags().Set(name, strconv.FormatFloat(viper.GetFloat64(key), 'f', -1, 64))
			case "workers":
				_ = cmd.Flags().Set(name, strconv.Itoa(viper.GetInt(key)))
			default:
				_ = cmd.Flags().Set(name, viper.GetString(key))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" && exists(used) {
			cfg.ConfigPath = used
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		logging.SetDebug(cfg.Debug)
		if cfg.JSONMode {
			logging.SetColor(false)
			render.SetColor(false)
		}
		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	flags.Bool("debug", false, "enable debug logging and metric dumps")
	flags.Bool("jsonMode", false, "print results as JSON")
	flags.String("logFile", "", "path to the log file (default hwcompare.log)")
	flags.Float64("tjmax", 0, "CPU TjMAX in °C for thermal headroom (0 = 100)")
	flags.String("hardware", "", "HWiNFO XML hardware export to attach to the result")
	flags.String("catalog", "", "catalog override file (.json, .jsonc, .yaml)")
	flags.String("store", "", "SQLite file recording every analysis")
	flags.Int("workers", 0, "parallel report decoders (0 = one per CPU)")

	for name, key := range flagKeys {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// initConfig points viper at the config file, falling back to the legacy
// location when the default one is absent.
func initConfig() {
	if cfgFile == "" {
		return
	}
	path := cfgFile
	if path == appconfig.DefaultConfigPath && !exists(path) && exists(appconfig.LegacyConfigPath) {
		path = appconfig.LegacyConfigPath
	}
	viper.SetConfigFile(path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureConfigLoaded reads the config file. A missing file leaves the
// defaults and flags in charge.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the merged configuration of the running command.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// config never returns nil.
func config() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

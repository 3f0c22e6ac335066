package hwcompare

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/hwcompare/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:        viper.GetBool("debug"),
			JSONMode:     viper.GetBool("jsonMode"),
			TjMax:        viper.GetFloat64("tjmax"),
			HardwarePath: viper.GetString("hardwarePath"),
			CatalogPath:  viper.GetString("catalogPath"),
			StorePath:    viper.GetString("storePath"),
			LogFile:      viper.GetString("logFile"),
			Workers:      viper.GetInt("workers"),
		}
		file := ""
		if cfg := GetConfig(); cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}

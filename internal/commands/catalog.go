// internal/commands/catalog.go
package hwcompare

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/logging"
	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

var catalogFormat string

// catalogCmd groups the catalog commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate metric catalogs",
	Long: `The catalog maps sensor headers to canonical metrics and defines the
chart categories and comparison rows. Override files are JSON (comments
allowed) or YAML and are laid over the built-in catalog.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(config())
		if err != nil {
			return err
		}
		return writeCatalog(cmd.OutOrStdout(), cat, catalogFormat)
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog override file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		if _, err := pipeline.New(pipeline.Config{Catalog: cat, Sanitize: telemetry.Sanitize, Logger: logging.Logger()}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d metrics, %d chart categories, %d comparison groups, %d GPU device rows\n",
			len(cat.Metrics), len(cat.Charts), len(cat.Comparison), len(cat.GPUDeviceRows))
		return nil
	},
}

func init() {
	catalogShowCmd.Flags().StringVar(&catalogFormat, "format", "json", "output format: json or yaml")
	catalogCmd.AddCommand(catalogShowCmd, catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

// writeCatalog prints c in the field names Load accepts.
func writeCatalog(w io.Writer, c *catalog.Catalog, format string) error {
	switch strings.ToLower(format) {
	case "json", "":
		return writeJSON(w, c)
	case "yaml", "yml":
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
}

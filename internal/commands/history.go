// internal/commands/history.go
package hwcompare

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/store"
)

// historyCmd lists the analyses recorded in the store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List analyses recorded in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		if cfg.StorePath == "" {
			return fmt.Errorf("no store configured: set --store or storePath")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.List(ctx)
		if err != nil {
			return err
		}
		if cfg.JSONMode {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		printHistory(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func printHistory(w io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "Nenhuma análise registrada.")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "HASH", "RELATÓRIO", "AMOSTRAS", "TjMAX", "ANALISADO EM")
	for _, r := range records {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.ShortHash(),
			r.Name,
			strconv.Itoa(r.Metrics.Samples),
			strconv.FormatFloat(r.TjMax, 'f', -1, 64),
			r.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// internal/commands/compare.go
package hwcompare

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/compare"
	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/render"
	"github.com/mwiater/hwcompare/internal/store"
)

var compareStored []string

// compareCmd rebuilds the comparison grid from stored analyses.
var compareCmd = &cobra.Command{
	Use:   "compare --stored <ref> [--stored <ref>...]",
	Short: "Compare analyses recorded in the store",
	Long: `Build the comparison grid from analyses saved by earlier 'analyze'
runs, without reading the CSV files again. A reference is a report name or
at least six leading hex digits of its content hash (see 'history').
Positional arguments are treated as extra references.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refs := append(append([]string(nil), compareStored...), args...)
		if len(refs) == 0 {
			return fmt.Errorf("at least one --stored reference is required")
		}
		res, err := compareStoredRefs(cmd.Context(), refs)
		if err != nil {
			return err
		}
		if config().JSONMode {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		render.Result(cmd.OutOrStdout(), res, nil)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringArrayVar(&compareStored, "stored", nil, "stored analysis reference (name or hash prefix); repeatable")
	rootCmd.AddCommand(compareCmd)
}

// compareStoredRefs resolves every reference before building anything, so
// an unknown reference fails the whole comparison.
func compareStoredRefs(ctx context.Context, refs []string) (pipeline.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config()
	if cfg.StorePath == "" {
		return pipeline.Result{}, fmt.Errorf("no store configured: set --store or storePath")
	}
	pipe, err := newPipeline(cfg)
	if err != nil {
		return pipeline.Result{}, err
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return pipeline.Result{}, err
	}
	defer st.Close()

	res := pipeline.Result{TjMax: cfg.TjMaxValue()}
	entries := make([]compare.Entry, 0, len(refs))
	for _, ref := range refs {
		rec, err := st.Find(ctx, ref)
		if err != nil {
			return pipeline.Result{}, fmt.Errorf("%s: %w", ref, err)
		}
		metrics := rec.Metrics
		res.Reports = append(res.Reports, pipeline.Report{
			Name:         rec.Name,
			Path:         rec.Path,
			SummaryLines: rec.Summary,
			Metrics:      &metrics,
		})
		entries = append(entries, compare.Entry{Name: rec.Name, Metrics: &metrics})
	}
	res.Comparison = compare.Build(pipe.Catalog(), entries)
	return res, nil
}

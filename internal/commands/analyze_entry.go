package hwcompare

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwiater/hwcompare/internal/appconfig"
	"github.com/mwiater/hwcompare/internal/export"
	"github.com/mwiater/hwcompare/internal/logging"
	"github.com/mwiater/hwcompare/internal/render"
	"github.com/mwiater/hwcompare/internal/store"
	"github.com/mwiater/hwcompare/internal/util"
)

// ErrAllReportsFailed is returned when no input could be analyzed.
var ErrAllReportsFailed = errors.New("no report could be analyzed")

func runAnalyze(cmd *cobra.Command, paths []string) error {
	cfg := config()
	a, err := analyzeFiles(cfg, paths)
	if err != nil {
		return err
	}

	if err := printAnalysis(cmd.OutOrStdout(), cfg, a); err != nil {
		return err
	}
	if cfg.Debug {
		for _, r := range a.Result.Reports {
			render.Dump(cmd.ErrOrStderr(), r.Metrics)
		}
	}
	if err := writeExports(cmd, cfg, a); err != nil {
		return err
	}
	if cfg.StorePath != "" {
		if err := recordAnalysis(cmd.Context(), cfg, a); err != nil {
			logging.Logger().Warn("analysis not recorded", "store", cfg.StorePath, "error", err)
		}
	}

	if !a.Result.Succeeded() {
		return ErrAllReportsFailed
	}
	return nil
}

func printAnalysis(w io.Writer, cfg *appconfig.Config, a analysis) error {
	if cfg.JSONMode {
		return writeJSON(w, a.Result)
	}
	render.Result(w, a.Result, a.hardwareLines())
	return nil
}

func writeExports(cmd *cobra.Command, cfg *appconfig.Config, a analysis) error {
	doc := export.Document{Result: a.Result, Hardware: a.hardwareLines()}

	if cfg.Export != "" {
		if err := export.WriteJSON(cfg.Export, a.Result); err != nil {
			return err
		}
		cmd.PrintErrf("Result JSON written to %s\n", cfg.Export)
	}
	if cfg.ExportMarkdown != "" {
		if err := util.WriteFile(cfg.ExportMarkdown, []byte(export.Markdown(doc))); err != nil {
			return fmt.Errorf("unable to write Markdown report %s: %w", cfg.ExportMarkdown, err)
		}
		cmd.PrintErrf("Markdown report written to %s\n", cfg.ExportMarkdown)
	}
	if cfg.ExportHTML != "" {
		if err := export.WriteHTML(cfg.ExportHTML, doc); err != nil {
			return err
		}
		cmd.PrintErrf("HTML report written to %s\n", cfg.ExportHTML)
	}
	if cfg.ExportXLSX != "" {
		if err := export.WriteXLSX(cfg.ExportXLSX, doc); err != nil {
			return err
		}
		cmd.PrintErrf("XLSX workbook written to %s\n", cfg.ExportXLSX)
	}
	if cfg.ChartsDir != "" {
		files, err := export.WriteChartPNGs(cfg.ChartsDir, a.Result.Charts, a.Result.ChartCategories)
		if err != nil {
			return err
		}
		cmd.PrintErrf("%d chart(s) written to %s\n", len(files), cfg.ChartsDir)
	}
	return nil
}

// recordAnalysis saves every analyzed report under one run id.
func recordAnalysis(ctx context.Context, cfg *appconfig.Config, a analysis) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := store.NewRunID()
	var errs []error
	for _, r := range a.Result.Reports {
		hash, err := store.HashFile(r.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rec, err := st.Save(ctx, store.Record{
			Hash:    hash,
			RunID:   runID,
			Name:    r.Name,
			Path:    r.Path,
			TjMax:   a.Result.TjMax,
			Metrics: *r.Metrics,
			Summary: r.SummaryLines,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logging.LogReport("stored", rec.Name, rec.Path, rec.ShortHash())
	}
	return errors.Join(errs...)
}

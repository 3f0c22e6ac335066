// Package pipeline turns decoded sensor tables into summaries, a
// cross-report comparison grid and chart series.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mwiater/hwcompare/internal/analyzer"
	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/charts"
	"github.com/mwiater/hwcompare/internal/compare"
	"github.com/mwiater/hwcompare/internal/summary"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

var (
	ErrMissingCatalog   = errors.New("pipeline: catalog is required")
	ErrMissingSanitizer = errors.New("pipeline: sanitizer is required")
	ErrNoHeaders        = errors.New("table has no headers")
	ErrAnalysisPanic    = errors.New("analysis panicked")
)

// Config holds the collaborators of a Pipeline. Catalog and Sanitize are
// required.
type Config struct {
	Catalog  *catalog.Catalog
	Sanitize telemetry.SanitizeFunc
	Logger   *slog.Logger
}

// Input is one decoded report.
type Input struct {
	Name  string
	Path  string
	Table telemetry.Table
}

// Options apply to a whole batch.
type Options struct {
	// TjMax is the CPU junction limit used for headroom inference. Values
	// that are not positive and finite fall back to analyzer.DefaultTjMax.
	TjMax float64
	// Hardware is copied to the result unchanged.
	Hardware any
}

// Report is the per-report section of a Result.
type Report struct {
	Name         string                  `json:"name"`
	Path         string                  `json:"path"`
	SummaryLines []string                `json:"summaryLines"`
	Metrics      *analyzer.ReportMetrics `json:"metrics"`
}

// Result is the outcome of one batch.
type Result struct {
	Reports         []Report                `json:"reports"`
	Failures        []*ReportError          `json:"failures,omitempty"`
	Comparison      compare.Grid            `json:"comparison"`
	Charts          map[string]charts.Chart `json:"charts"`
	ChartCategories []charts.Category       `json:"chartCategories"`
	Hardware        any                     `json:"hardware"`
	TjMax           float64                 `json:"tjmax"`
}

// ReportError identifies a report that could not be analyzed.
type ReportError struct {
	Report string
	Path   string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report %q: %v", e.Report, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// MarshalJSON renders the error as {report, path, error}.
func (e *ReportError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Report string `json:"report"`
		Path   string `json:"path,omitempty"`
		Error  string `json:"error"`
	}{e.Report, e.Path, msg})
}

// Pipeline analyzes batches of reports against one catalog.
type Pipeline struct {
	catalog  *catalog.Catalog
	analyzer *analyzer.Analyzer
	log      *slog.Logger
}

// New validates cfg and returns a Pipeline. Every configuration problem is
// reported here, before any report is processed.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Catalog == nil {
		return nil, ErrMissingCatalog
	}
	if cfg.Sanitize == nil {
		return nil, ErrMissingSanitizer
	}
	if err := catalog.Validate(cfg.Catalog); err != nil {
		return nil, err
	}
	if err := checkFields(cfg.Catalog); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		catalog:  cfg.Catalog,
		analyzer: analyzer.New(cfg.Catalog, cfg.Sanitize),
		log:      logger,
	}, nil
}

func checkFields(c *catalog.Catalog) error {
	for _, g := range c.Comparison {
		for _, r := range g.Rows {
			if !analyzer.KnownField(r.Field) {
				return fmt.Errorf("%w: group %q: unknown field %q", catalog.ErrInvalidCatalog, g.Title, r.Field)
			}
		}
	}
	for _, r := range c.GPUDeviceRows {
		if !analyzer.KnownDeviceField(r.Field) {
			return fmt.Errorf("%w: gpu device rows: unknown field %q", catalog.ErrInvalidCatalog, r.Field)
		}
	}
	return nil
}

// Catalog returns the catalog the pipeline was built with.
func (p *Pipeline) Catalog() *catalog.Catalog { return p.catalog }

// Analyze reduces every input independently, then builds the comparison
// grid and charts over the reports that succeeded. Failed reports are
// listed in Result.Failures and left out of the grid and charts.
func (p *Pipeline) Analyze(inputs []Input, opts Options) Result {
	tjmax := opts.TjMax
	if tjmax <= 0 || math.IsNaN(tjmax) || math.IsInf(tjmax, 0) {
		tjmax = analyzer.DefaultTjMax
	}

	res := Result{
		Reports:  make([]Report, 0, len(inputs)),
		Hardware: opts.Hardware,
		TjMax:    tjmax,
	}
	analyzed := make([]*analyzer.Report, 0, len(inputs))
	entries := make([]compare.Entry, 0, len(inputs))

	for _, in := range inputs {
		r, err := p.analyzeOne(in, tjmax)
		if err != nil {
			var re *ReportError
			if !errors.As(err, &re) {
				re = &ReportError{Report: in.Name, Path: in.Path, Err: err}
			}
			p.log.Warn("report failed", "report", in.Name, "path", in.Path, "error", re.Err)
			res.Failures = append(res.Failures, re)
			continue
		}

		metrics := r.Metrics
		res.Reports = append(res.Reports, Report{
			Name:         in.Name,
			Path:         in.Path,
			SummaryLines: summary.Lines(in.Name, &metrics, tjmax),
			Metrics:      &metrics,
		})
		analyzed = append(analyzed, r)
		entries = append(entries, compare.Entry{Name: in.Name, Metrics: &metrics})
		p.log.Debug("report analyzed",
			"report", in.Name,
			"samples", metrics.Samples,
			"resolved", len(r.Resolutions),
			"gpus", len(metrics.GPUDevices),
		)
	}

	res.Comparison = compare.Build(p.catalog, entries)
	payload := charts.Build(p.catalog, analyzed)
	res.Charts = payload.Charts
	res.ChartCategories = payload.Categories
	return res
}

func (p *Pipeline) analyzeOne(in Input, tjmax float64) (r *analyzer.Report, err error) {
	if len(in.Table.Headers) == 0 {
		return nil, &ReportError{Report: in.Name, Path: in.Path, Err: ErrNoHeaders}
	}
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = &ReportError{Report: in.Name, Path: in.Path, Err: fmt.Errorf("%w: %v", ErrAnalysisPanic, rec)}
		}
	}()
	return p.analyzer.Analyze(in.Name, in.Table, tjmax), nil
}

// Succeeded reports whether at least one report was analyzed, or the batch
// was empty.
func (r Result) Succeeded() bool {
	return len(r.Reports) > 0 || len(r.Failures) == 0
}

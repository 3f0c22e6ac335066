// internal/commands/session.go
package hwcompare

import (
	"encoding/json"
	"io"

	"github.com/mwiater/hwcompare/internal/appconfig"
	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/hardware"
	"github.com/mwiater/hwcompare/internal/logging"
	"github.com/mwiater/hwcompare/internal/pipeline"
	"github.com/mwiater/hwcompare/internal/reader"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

// analysis is one pipeline run together with the hardware it was given.
type analysis struct {
	Result  pipeline.Result
	Profile *hardware.Profile
}

// hardwareLines is nil when no hardware export was loaded.
func (a analysis) hardwareLines() []string {
	if a.Profile == nil {
		return nil
	}
	return a.Profile.Lines()
}

func loadCatalog(cfg *appconfig.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

func newPipeline(cfg *appconfig.Config) (*pipeline.Pipeline, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Config{
		Catalog:  cat,
		Sanitize: telemetry.Sanitize,
		Logger:   logging.Logger(),
	})
}

// loadHardware returns the parsed export and its profile. A document that
// parses but does not look like an HWiNFO report keeps the tree and drops
// the profile.
func loadHardware(cfg *appconfig.Config) (*hardware.Node, *hardware.Profile, error) {
	if cfg.HardwarePath == "" {
		return nil, nil, nil
	}
	root, err := hardware.Load(cfg.HardwarePath)
	if err != nil {
		return nil, nil, err
	}
	profile, err := hardware.ExtractProfile(root)
	if err != nil {
		logging.Logger().Warn("hardware profile unavailable", "path", cfg.HardwarePath, "error", err)
		return root, nil, nil
	}
	return root, profile, nil
}

// analyzeFiles decodes paths in parallel and runs them through one
// pipeline. Files that fail to decode are reported alongside analysis
// failures, in input order.
func analyzeFiles(cfg *appconfig.Config, paths []string) (analysis, error) {
	pipe, err := newPipeline(cfg)
	if err != nil {
		return analysis{}, err
	}
	root, profile, err := loadHardware(cfg)
	if err != nil {
		return analysis{}, err
	}

	var (
		inputs   []pipeline.Input
		failures []*pipeline.ReportError
	)
	for _, l := range reader.LoadAll(paths, cfg.WorkerCount()) {
		if l.Err != nil {
			logging.Logger().Warn("report unreadable", "report", l.Name, "path", l.Path, "error", l.Err)
			failures = append(failures, &pipeline.ReportError{Report: l.Name, Path: l.Path, Err: l.Err})
			continue
		}
		inputs = append(inputs, pipeline.Input{Name: l.Name, Path: l.Path, Table: l.Table})
	}

	opts := pipeline.Options{TjMax: cfg.TjMaxValue()}
	if root != nil {
		opts.Hardware = root
	}
	res := pipe.Analyze(inputs, opts)
	res.Failures = append(failures, res.Failures...)
	return analysis{Result: res, Profile: profile}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

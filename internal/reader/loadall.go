package reader

import (
	"path/filepath"

	"github.com/sourcegraph/conc/pool"

	"github.com/mwiater/hwcompare/internal/telemetry"
)

// Loaded is the outcome of decoding one file.
type Loaded struct {
	Name  string
	Path  string
	Table telemetry.Table
	Err   error
}

// LoadAll decodes paths with at most workers files in flight. Results keep
// the order of paths; a failed file carries its error and does not stop
// the others.
func LoadAll(paths []string, workers int) []Loaded {
	if workers < 1 {
		workers = 1
	}
	out := make([]Loaded, len(paths))
	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range paths {
		p.Go(func() {
			t, err := Load(path)
			out[i] = Loaded{Name: filepath.Base(path), Path: path, Table: t, Err: err}
		})
	}
	p.Wait()
	return out
}

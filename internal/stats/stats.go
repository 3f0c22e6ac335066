// Package stats reduces sanitized sample series into summary figures.
//
// Missing samples are represented as NaN. None of the functions here panic
// on empty or all-missing input; they report absence instead.
package stats

import (
	"math"
	"sort"
)

// Bounds is an inclusive plausibility range.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the range.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Summary holds the reduction of a series over its finite samples.
type Summary struct {
	Avg    float64
	Min    float64
	Max    float64
	Values []float64
}

// Compute drops non-finite samples and returns avg/min/max over the rest.
// The boolean is false when nothing remains.
func Compute(series []float64) (Summary, bool) {
	return reduce(series, nil)
}

// ComputeBounded behaves like Compute but also discards samples outside
// bounds. When that leaves nothing, it falls back to Compute over the
// unfiltered series so an implausible series still surfaces.
func ComputeBounded(series []float64, bounds *Bounds) (Summary, bool) {
	if bounds == nil {
		return Compute(series)
	}
	if s, ok := reduce(series, bounds); ok {
		return s, true
	}
	return Compute(series)
}

func reduce(series []float64, bounds *Bounds) (Summary, bool) {
	values := make([]float64, 0, len(series))
	for _, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if bounds != nil && !bounds.Contains(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return Summary{}, false
	}

	sum := 0.0
	lo, hi := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Summary{
		Avg:    sum / float64(len(values)),
		Min:    lo,
		Max:    hi,
		Values: values,
	}, true
}

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks (R-7). values is not modified. Empty input yields NaN.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < len(sorted) {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// ClampPercent pins v to [0, 100]. NaN passes through.
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Missing reports whether v is the missing-sample sentinel or otherwise
// not a usable number.
func Missing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

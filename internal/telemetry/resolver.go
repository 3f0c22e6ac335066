package telemetry

import (
	"strings"

	"github.com/mwiater/hwcompare/internal/textnorm"
)

// Binding ties one raw column to its normalized header and, when the
// descriptor row names one, its device.
type Binding struct {
	Header     string      `json:"header"`
	Normalized string      `json:"normalized"`
	Label      string      `json:"label,omitempty"`
	Device     *DeviceInfo `json:"device,omitempty"`
}

// OnDevice reports whether the binding belongs to the given device class
// and key.
func (b Binding) OnDevice(class DeviceClass, key string) bool {
	return b.Device != nil && b.Device.Class == class && b.Device.Key == key
}

// MatchKind records which resolution phase produced a result.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchSubstring
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Resolution is the ordered set of bindings found for one metric. The
// first binding is the primary one.
type Resolution struct {
	Kind     MatchKind
	Bindings []Binding
}

// Resolved reports whether anything matched.
func (r Resolution) Resolved() bool { return len(r.Bindings) > 0 }

// Primary returns the first binding.
func (r Resolution) Primary() (Binding, bool) {
	if len(r.Bindings) == 0 {
		return Binding{}, false
	}
	return r.Bindings[0], true
}

// Predicate filters bindings during resolution.
type Predicate func(Binding) bool

// DevicePredicate keeps bindings of one device.
func DevicePredicate(class DeviceClass, key string) Predicate {
	return func(b Binding) bool { return b.OnDevice(class, key) }
}

// Resolver is a multimap from normalized header text to bindings, built
// once per table. Keys keep header scan order.
type Resolver struct {
	keys  []string
	index map[string][]Binding
	all   []Binding
}

// NewResolver indexes headers. Headers that normalize to nothing are
// skipped; headers colliding after normalization are all kept.
func NewResolver(headers []string, descriptors map[string]string) *Resolver {
	r := &Resolver{index: make(map[string][]Binding, len(headers))}
	for _, h := range headers {
		key := textnorm.Normalize(h)
		if key == "" {
			continue
		}
		b := Binding{Header: h, Normalized: key}
		if label := strings.TrimSpace(descriptors[h]); label != "" {
			b.Label = label
			b.Device = ParseDeviceLabel(label)
		}
		if _, ok := r.index[key]; !ok {
			r.keys = append(r.keys, key)
		}
		r.index[key] = append(r.index[key], b)
		r.all = append(r.all, b)
	}
	return r
}

// Bindings returns every indexed binding in header order.
func (r *Resolver) Bindings() []Binding {
	return append([]Binding(nil), r.all...)
}

// Resolve finds the bindings denoting a metric. Candidates are looked up
// exactly, in order; only when that yields nothing is every key containing
// a candidate accepted. pred, when non-nil, filters both phases. Each
// header appears at most once.
func (r *Resolver) Resolve(candidates []string, pred Predicate) Resolution {
	normalized := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if n := textnorm.Normalize(c); n != "" {
			normalized = append(normalized, n)
		}
	}

	seen := make(map[string]struct{})
	var matches []Binding
	add := func(bindings []Binding) {
		for _, b := range bindings {
			if _, dup := seen[b.Header]; dup {
				continue
			}
			if pred != nil && !pred(b) {
				continue
			}
			seen[b.Header] = struct{}{}
			matches = append(matches, b)
		}
	}

	for _, c := range normalized {
		add(r.index[c])
	}
	if len(matches) > 0 {
		return Resolution{Kind: MatchExact, Bindings: matches}
	}

	for _, key := range r.keys {
		for _, c := range normalized {
			if strings.Contains(key, c) {
				add(r.index[key])
				break
			}
		}
	}
	if len(matches) > 0 {
		return Resolution{Kind: MatchSubstring, Bindings: matches}
	}
	return Resolution{Kind: MatchNone}
}

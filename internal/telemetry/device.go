package telemetry

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/hwcompare/internal/textnorm"
)

// DeviceClass separates GPU sensors from everything else.
type DeviceClass string

const (
	ClassGPU   DeviceClass = "gpu"
	ClassOther DeviceClass = "other"
)

// DeviceInfo identifies the physical unit a column belongs to.
type DeviceInfo struct {
	Class DeviceClass `json:"deviceClass"`
	Index *int        `json:"index"`
	Name  string      `json:"name"`
	Label string      `json:"label"`
	// Key groups every column of the same unit within a report.
	Key string `json:"key"`
}

var gpuLabelPattern = regexp.MustCompile(`(?i)gpu\s*\[#(\d+)\]\s*:\s*(.+)`)

// ParseDeviceLabel parses one descriptor cell such as "GPU [#1]: RTX 4080".
// Empty labels yield nil. GPU keys are "gpu-<index>" so they survive name
// formatting changes between captures.
func ParseDeviceLabel(label string) *DeviceInfo {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return nil
	}

	if m := gpuLabelPattern.FindStringSubmatch(trimmed); m != nil {
		name := strings.TrimSpace(m[2])
		info := &DeviceInfo{Class: ClassGPU, Name: name, Label: trimmed}
		if idx, err := strconv.Atoi(m[1]); err == nil {
			info.Index = &idx
			info.Key = "gpu-" + strconv.Itoa(idx)
		} else {
			info.Key = textnorm.Normalize(name)
		}
		if info.Key == "" {
			info.Key = "gpu-" + strings.ToLower(trimmed)
		}
		return info
	}

	key := textnorm.Normalize(trimmed)
	if key == "" {
		key = strings.ToLower(trimmed)
	}
	return &DeviceInfo{Class: ClassOther, Name: trimmed, Label: trimmed, Key: key}
}

// IndexOr returns the device index, or fallback when it has none.
func (d DeviceInfo) IndexOr(fallback int) int {
	if d.Index == nil {
		return fallback
	}
	return *d.Index
}

// DisplayName is the name shown for the device, falling back to its label
// and then its key.
func (d DeviceInfo) DisplayName() string {
	switch {
	case d.Name != "":
		return d.Name
	case d.Label != "":
		return d.Label
	default:
		return d.Key
	}
}

// Less orders devices for display: indexed devices first by index, then
// unindexed devices by name.
func (d DeviceInfo) Less(o DeviceInfo) bool {
	switch {
	case d.Index != nil && o.Index != nil:
		return *d.Index < *o.Index
	case d.Index != nil:
		return true
	case o.Index != nil:
		return false
	}
	return strings.ToLower(d.DisplayName()) < strings.ToLower(o.DisplayName())
}

// SortDevices sorts in display order. The sort is stable.
func SortDevices(devices []DeviceInfo) {
	sort.SliceStable(devices, func(i, j int) bool { return devices[i].Less(devices[j]) })
}

const descriptorColonCap = 10

// IsDescriptorRow reports whether row is a device descriptor row rather
// than a timestamped sample. Rows with a Date or Time value never are.
// Otherwise at least min(10, ceil(n/2)) of the n non-empty cells must
// contain a colon.
func IsDescriptorRow(row map[string]string) bool {
	if row == nil {
		return false
	}
	if strings.TrimSpace(row["Date"]) != "" || strings.TrimSpace(row["Time"]) != "" {
		return false
	}

	total, withColon := 0, 0
	for _, v := range row {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		total++
		if strings.Contains(v, ":") {
			withColon++
		}
	}
	if total == 0 {
		return false
	}
	need := int(math.Ceil(float64(total) * 0.5))
	if need > descriptorColonCap {
		need = descriptorColonCap
	}
	return withColon >= need
}

package telemetry

import (
	"math"
	"testing"

	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := map[string]struct {
		in   string
		want float64
		ok   bool
	}{
		"plain":             {in: "45.2", want: 45.2, ok: true},
		"decimal comma":     {in: "45,2", want: 45.2, ok: true},
		"padded":            {in: "  12  ", want: 12, ok: true},
		"eu thousands":      {in: "1.234,5", want: 1234.5, ok: true},
		"us thousands":      {in: "1,234.5", want: 1234.5, ok: true},
		"space thousands":   {in: "1 234,5", want: 1234.5, ok: true},
		"dotted thousands":  {in: "1.234.567", want: 1234567, ok: true},
		"comma thousands":   {in: "1,234,567", want: 1234567, ok: true},
		"exponent":          {in: "1,5e3", want: 1500, ok: true},
		"negative":          {in: "-3.1", want: -3.1, ok: true},
		"trailing comma":    {in: "12,", want: 12, ok: true},
		"empty":             {in: "", ok: false},
		"placeholder":       {in: "abc", ok: false},
		"unit suffix":       {in: "45 W", ok: false},
		"na":                {in: "N/A", ok: false},
		"dashes":            {in: "--", ok: false},
		"hex":               {in: "0x10", ok: false},
		"non-breaking pad":  {in: "\u00a07,5\u00a0", want: 7.5, ok: true},
		"only separators":   {in: ",,", ok: false},
		"bare exponent":     {in: "e", ok: false},
		"overflow rejected": {in: "1e400", ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseNumber(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestSanitizeAppliesBounds(t *testing.T) {
	usage := catalog.Metric{Key: catalog.CPUUsage, Unit: "%", Bounds: &stats.Bounds{Min: 0, Max: 100}}

	assert.Equal(t, 45.2, Sanitize(usage, "45.2"))
	assert.True(t, math.IsNaN(Sanitize(usage, "104.2")))
	assert.True(t, math.IsNaN(Sanitize(usage, "-3")))
	assert.True(t, math.IsNaN(Sanitize(usage, "abc")))

	clock := catalog.Metric{Key: catalog.CPUClock, Unit: "MHz"}
	assert.Equal(t, 99999.0, Sanitize(clock, "99999"))
}

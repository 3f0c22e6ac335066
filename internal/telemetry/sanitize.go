package telemetry

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mwiater/hwcompare/internal/catalog"
)

// SanitizeFunc converts one raw cell of metric into a number, returning NaN
// for a missing sample.
type SanitizeFunc func(metric catalog.Metric, raw string) float64

// Sanitize is the default SanitizeFunc. Cells carrying anything besides
// digits, signs, separators, exponent markers and whitespace are rejected,
// as are values outside the metric's bounds.
func Sanitize(metric catalog.Metric, raw string) float64 {
	v, ok := ParseNumber(raw)
	if !ok {
		return math.NaN()
	}
	if metric.Bounds != nil && !metric.Bounds.Contains(v) {
		return math.NaN()
	}
	return v
}

// ParseNumber parses a locale-formatted number. Decimal commas and
// thousands separators ("1.234,5", "1,234.5", "1 234,5") are accepted.
func ParseNumber(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if !numericRune(r) {
			return 0, false
		}
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	text = strings.Trim(text, ",")
	if text == "" {
		return 0, false
	}
	text = normalizeSeparators(text)

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func numericRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == 'e' || r == 'E' || r == '+' || r == '-' || r == '.' || r == ',':
		return true
	}
	return unicode.IsSpace(r)
}

// normalizeSeparators rewrites text so '.' is the only decimal separator
// and no grouping separators remain.
func normalizeSeparators(text string) string {
	commas := strings.Count(text, ",")
	dots := strings.Count(text, ".")

	switch {
	case commas > 0 && dots > 0:
		// the separator appearing last is the decimal one
		if strings.LastIndex(text, ",") > strings.LastIndex(text, ".") {
			text = strings.ReplaceAll(text, ".", "")
			return strings.Replace(text, ",", ".", 1)
		}
		return strings.ReplaceAll(text, ",", "")
	case commas > 1:
		return strings.ReplaceAll(text, ",", "")
	case commas == 1:
		return strings.Replace(text, ",", ".", 1)
	case dots > 1:
		return strings.ReplaceAll(text, ".", "")
	}
	return text
}

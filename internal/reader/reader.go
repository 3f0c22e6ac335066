// Package reader decodes sensor-log CSV exports into telemetry tables.
package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/text/encoding/charmap"

	"github.com/mwiater/hwcompare/internal/telemetry"
)

// ErrEmptyFile is returned when a file holds no header row.
var ErrEmptyFile = errors.New("empty report file")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	utf8BOM   = []byte{0xef, 0xbb, 0xbf}
)

// Load reads and decodes the report at path.
func Load(path string) (telemetry.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return telemetry.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := Decode(data)
	if err != nil {
		return telemetry.Table{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Decode parses raw file bytes. Compressed input is detected by its magic
// number; text that is not valid UTF-8 is read as Windows-1252.
func Decode(data []byte) (telemetry.Table, error) {
	raw, err := decompress(data)
	if err != nil {
		return telemetry.Table{}, err
	}
	text, err := toUTF8(raw)
	if err != nil {
		return telemetry.Table{}, err
	}
	return Parse(text)
}

func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, lz4Magic):
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return out, nil
	}
	return data, nil
}

func toUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("windows-1252: %w", err)
	}
	return string(out), nil
}

// Parse reads CSV text. The delimiter is taken from the header line.
// Duplicate headers get a " #" suffix per repeat so they stay distinct
// while normalizing to the same text. The first descriptor row becomes
// Table.Descriptors. When the table has Date and Time columns, rows
// without either are dropped, as are repeated header rows.
func Parse(text string) (telemetry.Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = SniffDelimiter(firstLine(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	var (
		t      telemetry.Table
		header []string
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return telemetry.Table{}, fmt.Errorf("csv: %w", err)
		}
		if blank(rec) {
			continue
		}
		if header == nil {
			header = uniqueHeaders(rec)
			t.Headers = header
			continue
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}

		if t.Descriptors == nil && telemetry.IsDescriptorRow(row) {
			t.Descriptors = make(map[string]string)
			for _, h := range header {
				if label := strings.TrimSpace(row[h]); label != "" {
					t.Descriptors[h] = label
				}
			}
			continue
		}
		if t.HasTimestamps() && !keepTimestamped(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if header == nil {
		return telemetry.Table{}, ErrEmptyFile
	}
	return t, nil
}

func keepTimestamped(row map[string]string) bool {
	date := strings.TrimSpace(row["Date"])
	clock := strings.TrimSpace(row["Time"])
	if date == "" && clock == "" {
		return false
	}
	return date != "Date" && clock != "Time"
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// SniffDelimiter picks the most frequent of ',', ';' and tab outside
// quotes, preferring ',' on ties.
func SniffDelimiter(line string) rune {
	counts := map[rune]int{}
	quoted := false
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case !quoted && (c == ',' || c == ';' || c == '\t'):
			counts[c]++
		}
	}
	best := ','
	for _, c := range []rune{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func uniqueHeaders(rec []string) []string {
	out := make([]string, len(rec))
	seen := make(map[string]struct{}, len(rec))
	for i, h := range rec {
		h = strings.TrimSpace(h)
		name := h
		for n := 1; ; n++ {
			if _, dup := seen[name]; !dup {
				break
			}
			name = h + " " + strings.Repeat("#", n)
		}
		seen[name] = struct{}{}
		out[i] = name
	}
	return out
}

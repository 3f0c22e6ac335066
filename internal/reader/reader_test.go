package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = "Date,Time,CPU Package Power [W],GPU Power [W],GPU Power [W]\n" +
	"2.1.2024,10:00:00.000,40,200,100\n" +
	"2.1.2024,10:00:02.000,50,210,110\n" +
	",,\n" +
	"Date,Time,CPU Package Power [W],GPU Power [W],GPU Power [W]\n" +
	",,CPU [#0]: Ryzen 7: Enhanced,GPU [#0]: RTX 4080: ,GPU [#1]: RTX 3060: \n"

func TestParseHWiNFOLayout(t *testing.T) {
	tbl, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Time", "CPU Package Power [W]", "GPU Power [W]", "GPU Power [W] #"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2, "blank and repeated header rows are dropped")
	assert.Equal(t, "50", tbl.Rows[1]["CPU Package Power [W]"])
	assert.Equal(t, "110", tbl.Rows[1]["GPU Power [W] #"])

	assert.Equal(t, "GPU [#0]: RTX 4080:", tbl.Descriptors["GPU Power [W]"])
	assert.Equal(t, "GPU [#1]: RTX 3060:", tbl.Descriptors["GPU Power [W] #"])
	assert.NotContains(t, tbl.Descriptors, "Date")
}

func TestParseSemicolonAndShortRows(t *testing.T) {
	tbl, err := Parse("A;B;C\n1,5;2\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "1,5", tbl.Rows[0]["A"])
	assert.Equal(t, "", tbl.Rows[0]["C"])
}

func TestParseWithoutTimestampsKeepsRows(t *testing.T) {
	tbl, err := Parse("CPU Usage [%]\n10\n20\n")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 2)
	assert.Nil(t, tbl.Descriptors)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyFile)
	_, err = Parse("\n , ,\n")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', SniffDelimiter("a,b,c"))
	assert.Equal(t, ';', SniffDelimiter("a;b;c"))
	assert.Equal(t, '\t', SniffDelimiter("a\tb\tc"))
	assert.Equal(t, ';', SniffDelimiter(`"x,y";b;c`))
	assert.Equal(t, ',', SniffDelimiter("single"))
}

func TestDecodeEncodings(t *testing.T) {
	bom := append([]byte{0xef, 0xbb, 0xbf}, []byte("Date,Time\n1.1.2024,10:00:00\n")...)
	tbl, err := Decode(bom)
	require.NoError(t, err)
	assert.Equal(t, "Date", tbl.Headers[0])

	latin, err := charmap.Windows1252.NewEncoder().String("Temperatura GPU [°C]\n55\n")
	require.NoError(t, err)
	tbl, err = Decode([]byte(latin))
	require.NoError(t, err)
	assert.Equal(t, "Temperatura GPU [°C]", tbl.Headers[0])
}

func TestDecodeCompressed(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll([]byte(sample), nil)
	require.NoError(t, enc.Close())

	var lz bytes.Buffer
	lw := lz4.NewWriter(&lz)
	_, err = lw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	for name, data := range map[string][]byte{"gzip": gz.Bytes(), "zstd": zst, "lz4": lz.Bytes()} {
		t.Run(name, func(t *testing.T) {
			tbl, err := Decode(data)
			require.NoError(t, err)
			assert.Len(t, tbl.Rows, 2)
			assert.Len(t, tbl.Descriptors, 3)
		})
	}
}

func TestLoadAllKeepsOrderAndErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(good, []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	missing := filepath.Join(dir, "missing.csv")

	out := LoadAll([]string{good, empty, missing}, 2)
	require.Len(t, out, 3)

	assert.Equal(t, "good.csv", out[0].Name)
	assert.NoError(t, out[0].Err)
	assert.Len(t, out[0].Table.Rows, 2)

	assert.ErrorIs(t, out[1].Err, ErrEmptyFile)
	assert.ErrorIs(t, out[2].Err, os.ErrNotExist)
}

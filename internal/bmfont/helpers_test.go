package bmfont

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/stretchr/testify/require"
)

// glyphFor returns a bitmap whose bytes identify code.
func glyphFor(code rune, size int) []byte {
	b := make([]byte, bitmap.Len(size))
	for i := range b {
		b[i] = byte(code) ^ byte(i)
	}
	return b
}

// buildFont encodes a font holding codes at the given size.
func buildFont(t *testing.T, size int, codes []rune) []byte {
	t.Helper()
	glyphs := make(map[rune][]byte, len(codes))
	for _, c := range codes {
		glyphs[c] = glyphFor(c, size)
	}
	data, err := Build(size, glyphs)
	require.NoError(t, err)
	return data
}

// randomCodes returns n distinct ascending code points drawn from ranges.
func randomCodes(rng *rand.Rand, n int, ranges ...[2]rune) []rune {
	seen := make(map[rune]bool)
	for len(seen) < n {
		r := ranges[rng.Intn(len(ranges))]
		seen[r[0]+rune(rng.Intn(int(r[1]-r[0]+1)))] = true
	}
	codes := make([]rune, 0, n)
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// countingReader counts ReadAt calls.
type countingReader struct {
	r     *bytes.Reader
	reads int
}

func (c *countingReader) ReadAt(p []byte, off int64) (int, error) {
	c.reads++
	return c.r.ReadAt(p, off)
}

// strategies lists every way a font can be opened.
var strategies = map[string]Options{
	"disk":         {Index: IndexDisk},
	"memory":       {Index: IndexMemory},
	"disk+blocks":  {Index: IndexDisk, BlockIndex: true},
	"memory+block": {Index: IndexMemory, BlockIndex: true},
	"preload":      {Preload: true},
}

func openAll(t *testing.T, data []byte) map[string]*Font {
	t.Helper()
	fonts := make(map[string]*Font, len(strategies))
	for name, opts := range strategies {
		f, err := Open(bytes.NewReader(data), opts)
		require.NoError(t, err, name)
		fonts[name] = f
	}
	return fonts
}

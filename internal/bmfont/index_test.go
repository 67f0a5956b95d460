package bmfont

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mixedRanges = [][2]rune{
	{0x0020, 0x024F},
	{0x0400, 0x052F},
	{0x3000, 0x303F},
	{0x4E00, 0x9FFF},
	{0xFF00, 0xFFEF},
}

func TestStrategiesResolvePresentAndAbsent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 5; round++ {
		codes := randomCodes(rng, 50+rng.Intn(300), mixedRanges...)
		fonts := openAll(t, buildFont(t, 8, codes))

		present := make(map[rune]int, len(codes))
		for slot, c := range codes {
			present[c] = slot
		}

		for name, f := range fonts {
			for slot, c := range codes {
				got, err := f.Resolve(c)
				require.NoError(t, err)
				assert.Equal(t, slot, got, "%s: U+%04X", name, c)
			}
			for i := 0; i < 500; i++ {
				c := rune(rng.Intn(MaxCode + 1))
				if _, ok := present[c]; ok {
					continue
				}
				got, err := f.Resolve(c)
				require.NoError(t, err)
				assert.Equal(t, NotFound, got, "%s: U+%04X", name, c)
			}
		}
	}
}

func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	codes := randomCodes(rng, 400, mixedRanges...)
	fonts := openAll(t, buildFont(t, 12, codes))

	reference := fonts["disk"]
	for c := rune(0); c <= MaxCode; c += 7 {
		want, err := reference.Resolve(c)
		require.NoError(t, err)
		for name, f := range fonts {
			got, err := f.Resolve(c)
			require.NoError(t, err)
			require.Equal(t, want, got, "%s disagrees on U+%04X", name, c)
		}
	}
}

func TestSingleBlockMatchesFullRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	codes := randomCodes(rng, 200, [2]rune{0x0400, 0x052F})
	data := buildFont(t, 8, codes)

	for _, mode := range []IndexMode{IndexDisk, IndexMemory} {
		full, err := Open(bytes.NewReader(data), Options{Index: mode})
		require.NoError(t, err)
		blocked, err := Open(bytes.NewReader(data), Options{Index: mode, BlockIndex: true})
		require.NoError(t, err)

		require.Len(t, blocked.Blocks(), 1)
		assert.Equal(t, BlockCyrillic, blocked.Blocks()[0].Block)

		for c := rune(0x0300); c <= 0x0600; c++ {
			want, err := full.Resolve(c)
			require.NoError(t, err)
			got, err := blocked.Resolve(c)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s: U+%04X", mode, c)
		}
	}
}

func TestOutOfRangeDoesNoIO(t *testing.T) {
	codes := []rune{'A', 'B', 'C', 0x4E00, 0x4E01}
	reader := &countingReader{r: bytes.NewReader(buildFont(t, 8, codes))}

	f, err := Open(reader, Options{Index: IndexDisk, BlockIndex: true})
	require.NoError(t, err)
	reader.reads = 0

	for _, c := range []rune{0, ' ', '@', 0x4E02, 0x9FFF, MaxCode} {
		slot, err := f.Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, NotFound, slot)
	}
	assert.Zero(t, reader.reads)

	slot, err := f.Resolve('B')
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	assert.NotZero(t, reader.reads)
}

func TestBlockNarrowingReducesProbes(t *testing.T) {
	var codes []rune
	for c := rune(0x20); c < 0x7F; c++ {
		codes = append(codes, c)
	}
	for c := rune(0x4E00); c < 0x4E00+2000; c++ {
		codes = append(codes, c)
	}
	data := buildFont(t, 8, codes)

	full := &countingReader{r: bytes.NewReader(data)}
	fFull, err := Open(full, Options{Index: IndexDisk})
	require.NoError(t, err)
	blocked := &countingReader{r: bytes.NewReader(data)}
	fBlocked, err := Open(blocked, Options{Index: IndexDisk, BlockIndex: true})
	require.NoError(t, err)
	full.reads, blocked.reads = 0, 0

	for c := rune(0x20); c < 0x7F; c++ {
		_, err := fFull.Resolve(c)
		require.NoError(t, err)
		_, err = fBlocked.Resolve(c)
		require.NoError(t, err)
	}
	assert.Less(t, blocked.reads, full.reads)
}

func TestScanBlocks(t *testing.T) {
	codes := []rune{'A', 'z', 0x00E9, 0x0410, 0x0411, 0x3000, 0x4E2D}
	f, err := Open(bytes.NewReader(buildFont(t, 8, codes)), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []BlockRange{
		{Block: BlockLatin, Start: HeaderLen, End: HeaderLen + 3*EntryLen},
		{Block: BlockCyrillic, Start: HeaderLen + 3*EntryLen, End: HeaderLen + 5*EntryLen},
		{Block: BlockCJK, Start: HeaderLen + 6*EntryLen, End: HeaderLen + 7*EntryLen},
	}, f.Blocks())
}

func TestScanBlocksMissingBlock(t *testing.T) {
	codes := []rune{'A', 'B', 0x3000}
	f, err := Open(bytes.NewReader(buildFont(t, 8, codes)), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, f.Blocks(), 1)
	assert.Equal(t, BlockLatin, f.Blocks()[0].Block)

	// CJK has no run, so the search falls back to the whole table.
	slot, err := f.Resolve(0x4E00)
	require.NoError(t, err)
	assert.Equal(t, NotFound, slot)
}

func TestBlockOf(t *testing.T) {
	b, ok := BlockOf('A')
	assert.True(t, ok)
	assert.Equal(t, BlockLatin, b)

	b, ok = BlockOf(0x042F)
	assert.True(t, ok)
	assert.Equal(t, BlockCyrillic, b)

	b, ok = BlockOf(0x9FFF)
	assert.True(t, ok)
	assert.Equal(t, BlockCJK, b)

	_, ok = BlockOf(0x3000)
	assert.False(t, ok)

	assert.Equal(t, "cyrillic", BlockCyrillic.String())
}

func TestEmptyFont(t *testing.T) {
	fonts := openAll(t, buildFont(t, 8, nil))
	for name, f := range fonts {
		slot, err := f.Resolve('A')
		require.NoError(t, err, name)
		assert.Equal(t, NotFound, slot, name)
	}
}

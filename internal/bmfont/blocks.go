package bmfont

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Block identifies one of the Unicode blocks the index can be narrowed to.
type Block int

const (
	BlockLatin Block = iota
	BlockCyrillic
	BlockCJK
	numBlocks
)

var blockRanges = [numBlocks]struct{ lo, hi rune }{
	BlockLatin:    {0x0000, 0x024F},
	BlockCyrillic: {0x0400, 0x052F},
	BlockCJK:      {0x4E00, 0x9FFF},
}

// String returns the block name.
func (b Block) String() string {
	switch b {
	case BlockLatin:
		return "latin"
	case BlockCyrillic:
		return "cyrillic"
	case BlockCJK:
		return "cjk"
	default:
		return fmt.Sprintf("block(%d)", int(b))
	}
}

// BlockOf returns the block containing code, if any.
func BlockOf(code rune) (Block, bool) {
	for b, r := range blockRanges {
		if code >= r.lo && code <= r.hi {
			return Block(b), true
		}
	}
	return 0, false
}

// BlockRange is the run of index entries whose code points fall in one block.
// Start and End are absolute byte offsets in the file; End is exclusive.
type BlockRange struct {
	Block Block
	Start int64
	End   int64
}

// entries converts the byte range to a half-open range of entry numbers.
func (r BlockRange) entries() (lo, hi int) {
	return int((r.Start - HeaderLen) / EntryLen), int((r.End - HeaderLen) / EntryLen)
}

// scanBlocks reads count index entries from r in one pass and records where
// each block's run starts and ends. Blocks with no entries are omitted.
// The index is ascending, so every block occupies one contiguous run.
func scanBlocks(r io.Reader, count int) ([]BlockRange, error) {
	var (
		seen  [numBlocks]bool
		first [numBlocks]int
		last  [numBlocks]int
	)

	br := bufio.NewReaderSize(r, 1024)
	var entry [EntryLen]byte
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(br, entry[:]); err != nil {
			return nil, fmt.Errorf("failed to read index entry %d: %w", i, err)
		}
		b, ok := BlockOf(rune(binary.BigEndian.Uint16(entry[:])))
		if !ok {
			continue
		}
		if !seen[b] {
			seen[b] = true
			first[b] = i
		}
		last[b] = i
	}

	var ranges []BlockRange
	for b := Block(0); b < numBlocks; b++ {
		if !seen[b] {
			continue
		}
		ranges = append(ranges, BlockRange{
			Block: b,
			Start: HeaderLen + int64(first[b])*EntryLen,
			End:   HeaderLen + int64(last[b]+1)*EntryLen,
		})
	}
	return ranges, nil
}

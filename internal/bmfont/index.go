package bmfont

import (
	"encoding/binary"
	"fmt"
	"io"
)

// NotFound is the slot returned for code points the font does not contain.
const NotFound = -1

// Resolver maps a code point to its glyph slot.
type Resolver interface {
	// Resolve returns the slot for code, or NotFound. Errors are I/O failures only.
	Resolve(code rune) (int, error)
}

// searcher runs a binary search over a half-open range of index entries.
type searcher interface {
	search(code rune, lo, hi int) (int, error)
	len() int
}

// diskSearch probes the index table in the font file, one 2-byte read per step.
type diskSearch struct {
	r     io.ReaderAt
	count int
}

func (d *diskSearch) len() int { return d.count }

func (d *diskSearch) search(code rune, lo, hi int) (int, error) {
	var entry [EntryLen]byte
	hi--
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		if n, err := d.r.ReadAt(entry[:], HeaderLen+int64(mid)*EntryLen); n < EntryLen {
			return NotFound, fmt.Errorf("failed to read index entry %d: %w", mid, readErr(err))
		}
		target := rune(binary.BigEndian.Uint16(entry[:]))
		switch {
		case code < target:
			hi = mid - 1
		case code > target:
			lo = mid + 1
		default:
			return mid, nil
		}
	}
	return NotFound, nil
}

// memorySearch holds the whole index table, 2 bytes per glyph.
type memorySearch struct {
	codes []uint16
}

func (m *memorySearch) len() int { return len(m.codes) }

func (m *memorySearch) search(code rune, lo, hi int) (int, error) {
	hi--
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		target := rune(m.codes[mid])
		switch {
		case code < target:
			hi = mid - 1
		case code > target:
			lo = mid + 1
		default:
			return mid, nil
		}
	}
	return NotFound, nil
}

// index is the Resolver shared by every strategy. It rejects codes outside
// [first, last] without touching the searcher, then narrows the search to a
// block's run when block ranges are known.
type index struct {
	s      searcher
	first  rune
	last   rune
	blocks []BlockRange
}

func newIndex(s searcher, first, last rune, blocks []BlockRange) *index {
	return &index{s: s, first: first, last: last, blocks: blocks}
}

// Resolve implements Resolver.
func (x *index) Resolve(code rune) (int, error) {
	if x.s.len() == 0 || code < x.first || code > x.last {
		return NotFound, nil
	}
	lo, hi := x.bounds(code)
	return x.s.search(code, lo, hi)
}

// bounds returns the entry range to search for code.
func (x *index) bounds(code rune) (lo, hi int) {
	if b, ok := BlockOf(code); ok {
		for _, r := range x.blocks {
			if r.Block == b {
				return r.entries()
			}
		}
	}
	return 0, x.s.len()
}

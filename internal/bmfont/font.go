// Package bmfont reads BMF bitmap font containers.
//
// A container is a 16-byte header, an ascending table of 16-bit code points,
// and one packed monochrome bitmap per table entry in the same order. A
// code point's position in the table is its slot number, which also locates
// its bitmap.
package bmfont

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// IndexMode selects where the index table is searched.
type IndexMode int

const (
	// IndexDisk binary-searches the table in the file. O(1) memory.
	IndexDisk IndexMode = iota
	// IndexMemory loads the table at open time. 2 bytes per glyph.
	IndexMemory
)

// String returns the mode name.
func (m IndexMode) String() string {
	if m == IndexMemory {
		return "memory"
	}
	return "disk"
}

// Options configures how a font is opened.
type Options struct {
	Index IndexMode
	// BlockIndex narrows searches to per-Unicode-block runs of the table.
	BlockIndex bool
	// Preload reads every bitmap into memory. Index and BlockIndex are ignored.
	Preload bool
	// NoBitmapCache makes every render pass allocate its own glyph buffer
	// instead of reusing the one owned by the font.
	NoBitmapCache bool
}

// DefaultOptions returns disk search with block acceleration.
func DefaultOptions() Options {
	return Options{Index: IndexDisk, BlockIndex: true}
}

// Font is an open bitmap font. Metadata is immutable after open. The bitmap
// cache is the only mutable state and is handed out through Scratch.
type Font struct {
	header Header
	src    io.ReaderAt
	closer io.Closer
	index  Resolver
	blocks []BlockRange
	first  rune
	last   rune

	// preloaded fonts
	slots   map[rune]int
	bitmaps [][]byte

	cacheMu sync.Mutex
	cache   []byte
	closed  atomic.Bool
}

// OpenFile opens the font file at path. The file stays open until Close.
func OpenFile(path string, opts Options) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open font: %w", err)
	}
	f, err := Open(file, opts)
	if err != nil {
		file.Close()
		return nil, err
	}
	f.closer = file
	return f, nil
}

// Open reads a font from r. If r is also an io.Closer, Close releases it.
func Open(r io.ReaderAt, opts Options) (*Font, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	f := &Font{header: h, src: r}
	if c, ok := r.(io.Closer); ok {
		f.closer = c
	}
	if !opts.NoBitmapCache {
		f.cache = make([]byte, h.GlyphByteSize)
	}

	count := h.GlyphCount()
	if count > 0 {
		if f.first, err = readCode(r, 0); err != nil {
			return nil, err
		}
		if f.last, err = readCode(r, count-1); err != nil {
			return nil, err
		}
	}

	if opts.Preload {
		if err := f.preload(count); err != nil {
			return nil, err
		}
		Logger().Debug("bmfont: opened", "glyphs", count, "size", h.NativeSize, "index", "preload")
		return f, nil
	}

	var s searcher = &diskSearch{r: r, count: count}
	var table io.Reader = io.NewSectionReader(r, HeaderLen, int64(count)*EntryLen)
	if opts.Index == IndexMemory {
		raw := make([]byte, count*EntryLen)
		if _, err := io.ReadFull(table, raw); err != nil {
			return nil, fmt.Errorf("failed to read index table: %w", err)
		}
		codes := make([]uint16, count)
		for i := range codes {
			codes[i] = binary.BigEndian.Uint16(raw[i*EntryLen:])
		}
		s = &memorySearch{codes: codes}
		table = bytes.NewReader(raw)
	}

	if opts.BlockIndex {
		if f.blocks, err = scanBlocks(table, count); err != nil {
			return nil, err
		}
	}

	f.index = newIndex(s, f.first, f.last, f.blocks)

	Logger().Debug("bmfont: opened", "glyphs", count, "size", h.NativeSize,
		"index", opts.Index.String(), "blocks", len(f.blocks))
	return f, nil
}

// NewMapped builds a preloaded font from a code point to bitmap mapping, such
// as glyphs kept in a catalog. Every bitmap must be exactly one glyph long.
// Only opts.NoBitmapCache applies; the font is always preloaded.
func NewMapped(nativeSize int, glyphs map[rune][]byte, opts Options) (*Font, error) {
	data, err := Build(nativeSize, glyphs)
	if err != nil {
		return nil, err
	}
	return Open(bytes.NewReader(data), Options{Preload: true, NoBitmapCache: opts.NoBitmapCache})
}

func readCode(r io.ReaderAt, entry int) (rune, error) {
	var b [EntryLen]byte
	if n, err := r.ReadAt(b[:], HeaderLen+int64(entry)*EntryLen); n < EntryLen {
		return 0, fmt.Errorf("failed to read index entry %d: %w", entry, readErr(err))
	}
	return rune(binary.BigEndian.Uint16(b[:])), nil
}

// preload reads the index and every bitmap into memory.
func (f *Font) preload(count int) error {
	h := f.header
	raw := make([]byte, count*EntryLen)
	if _, err := io.ReadFull(io.NewSectionReader(f.src, HeaderLen, int64(len(raw))), raw); err != nil {
		return fmt.Errorf("failed to read index table: %w", err)
	}
	data := make([]byte, count*h.GlyphByteSize)
	if _, err := io.ReadFull(io.NewSectionReader(f.src, h.BitmapOffset, int64(len(data))), data); err != nil {
		return fmt.Errorf("failed to read bitmaps: %w", err)
	}

	f.slots = make(map[rune]int, count)
	f.bitmaps = make([][]byte, count)
	for i := 0; i < count; i++ {
		code := rune(binary.BigEndian.Uint16(raw[i*EntryLen:]))
		f.slots[code] = i
		f.bitmaps[i] = data[i*h.GlyphByteSize : (i+1)*h.GlyphByteSize : (i+1)*h.GlyphByteSize]
	}
	return nil
}

// Header returns the decoded file header.
func (f *Font) Header() Header { return f.header }

// NativeSize returns the glyph width and height in pixels.
func (f *Font) NativeSize() int { return f.header.NativeSize }

// GlyphByteSize returns the number of bytes in one stored glyph.
func (f *Font) GlyphByteSize() int { return f.header.GlyphByteSize }

// GlyphCount returns the number of glyphs in the font.
func (f *Font) GlyphCount() int { return f.header.GlyphCount() }

// FirstCode returns the smallest code point in the font.
func (f *Font) FirstCode() rune { return f.first }

// LastCode returns the largest code point in the font.
func (f *Font) LastCode() rune { return f.last }

// Preloaded reports whether every bitmap is held in memory.
func (f *Font) Preloaded() bool { return f.bitmaps != nil }

// Blocks returns the block ranges found at open time.
func (f *Font) Blocks() []BlockRange {
	out := make([]BlockRange, len(f.blocks))
	copy(out, f.blocks)
	return out
}

// Resolve returns the slot of code, or NotFound.
func (f *Font) Resolve(code rune) (int, error) {
	if f.closed.Load() {
		return NotFound, errClosed
	}
	if f.bitmaps != nil {
		if slot, ok := f.slots[code]; ok {
			return slot, nil
		}
		return NotFound, nil
	}
	return f.index.Resolve(code)
}

// Fetch copies the bitmap stored in slot into dst. At most GlyphByteSize
// bytes are written; a shorter dst receives a prefix. For NotFound every byte
// of dst is set to the fallback pattern.
func (f *Font) Fetch(slot int, dst []byte) error {
	if f.closed.Load() {
		return errClosed
	}
	if slot == NotFound {
		fillFallback(dst)
		return nil
	}
	if slot < 0 || slot >= f.GlyphCount() {
		return fmt.Errorf("slot %d out of range [0, %d)", slot, f.GlyphCount())
	}
	if f.bitmaps != nil {
		copy(dst, f.bitmaps[slot])
		return nil
	}

	n := len(dst)
	if n > f.header.GlyphByteSize {
		n = f.header.GlyphByteSize
	}
	off := f.header.BitmapOffset + int64(slot)*int64(f.header.GlyphByteSize)
	if got, err := f.src.ReadAt(dst[:n], off); got < n {
		return fmt.Errorf("failed to read glyph %d: %w", slot, readErr(err))
	}
	return nil
}

// Glyph resolves code and fetches its bitmap into dst. Missing glyphs are not
// an error: dst receives the fallback block.
func (f *Font) Glyph(code rune, dst []byte) error {
	slot, err := f.Resolve(code)
	if err != nil {
		return err
	}
	if slot == NotFound {
		Logger().Debug("bmfont: glyph not found", "code", fmt.Sprintf("U+%04X", code))
	}
	return f.Fetch(slot, dst)
}

// Each calls fn for every glyph in slot order. The bitmap passed to fn is
// only valid during the call.
func (f *Font) Each(fn func(code rune, bitmap []byte) error) error {
	buf := make([]byte, f.header.GlyphByteSize)
	for slot := 0; slot < f.GlyphCount(); slot++ {
		if f.closed.Load() {
			return errClosed
		}
		code, err := readCode(f.src, slot)
		if err != nil {
			return err
		}
		if err := f.Fetch(slot, buf); err != nil {
			return err
		}
		if err := fn(code, buf); err != nil {
			return err
		}
	}
	return nil
}

// Scratch runs fn with exclusive use of the font's bitmap cache. The buffer
// is GlyphByteSize long and must not be retained after fn returns. Each
// fetch overwrites it, so a glyph must be fully consumed before the next one
// is fetched.
func (f *Font) Scratch(fn func(buf []byte) error) error {
	if f.closed.Load() {
		return errClosed
	}
	if f.cache == nil {
		return fn(make([]byte, f.header.GlyphByteSize))
	}
	f.cacheMu.Lock()
	defer f.cacheMu.Unlock()
	return fn(f.cache)
}

// Close releases the underlying resource. Any later call fails with an error
// wrapping fs.ErrClosed.
func (f *Font) Close() error {
	if f.closed.Swap(true) {
		return errClosed
	}
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// fallbackByte fills the block drawn for missing glyphs.
const fallbackByte = 0xFF

func fillFallback(dst []byte) {
	for i := range dst {
		dst[i] = fallbackByte
	}
}

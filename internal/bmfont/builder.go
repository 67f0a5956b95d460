package bmfont

import (
	"fmt"
	"sort"

	"github.com/jwulff/bmfont-go/internal/bitmap"
)

// MaxCode is the largest code point an index entry can hold.
const MaxCode = 0xFFFF

// Build encodes glyphs as a BMF container with the given native size.
// Bitmaps must be packed with bitmap.Stride(nativeSize) bytes per row.
func Build(nativeSize int, glyphs map[rune][]byte) ([]byte, error) {
	glyphSize := bitmap.Len(nativeSize)
	if nativeSize <= 0 || nativeSize > 0xFF || glyphSize > 0xFF {
		return nil, fmt.Errorf("unsupported glyph size %d", nativeSize)
	}

	codes := make([]rune, 0, len(glyphs))
	for code, data := range glyphs {
		if code < 0 || code > MaxCode {
			return nil, fmt.Errorf("code point U+%04X does not fit the index", code)
		}
		if len(data) != glyphSize {
			return nil, fmt.Errorf("glyph U+%04X has %d bytes, want %d", code, len(data), glyphSize)
		}
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	offset := int64(HeaderLen + len(codes)*EntryLen)
	if offset > maxOffset {
		return nil, fmt.Errorf("index of %d glyphs does not fit the header", len(codes))
	}

	h := Header{
		Version:       Version,
		MapMode:       MapModeHLSB,
		BitmapOffset:  offset,
		NativeSize:    nativeSize,
		GlyphByteSize: glyphSize,
	}

	out := make([]byte, 0, int(offset)+len(codes)*glyphSize)
	out = append(out, h.Bytes()...)
	for _, code := range codes {
		out = append(out, byte(code>>8), byte(code))
	}
	for _, code := range codes {
		out = append(out, glyphs[code]...)
	}
	return out, nil
}

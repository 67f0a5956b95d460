package bmfont

import (
	"fmt"
	"io"

	"github.com/jwulff/bmfont-go/internal/bitmap"
)

// File layout constants.
const (
	// HeaderLen is the size of the fixed file header in bytes.
	HeaderLen = 16
	// Version is the only container version this package reads.
	Version = 3
	// EntryLen is the size of one index table entry (a big-endian code point).
	EntryLen = 2
	// MapModeHLSB marks horizontally packed, MSB-first bitmaps.
	MapModeHLSB = 0
	// maxOffset is the largest value the 3-byte bitmap offset can hold.
	maxOffset = 1<<24 - 1
)

// Magic is the marker every font file starts with.
var Magic = [2]byte{'B', 'M'}

// Header is the decoded 16-byte file header.
type Header struct {
	Version       byte
	MapMode       byte
	BitmapOffset  int64 // absolute offset of the first glyph bitmap
	NativeSize    int   // glyph width and height in pixels
	GlyphByteSize int   // bytes per stored glyph bitmap
}

// GlyphCount returns the number of index entries between the header and the bitmaps.
func (h Header) GlyphCount() int {
	return int((h.BitmapOffset - HeaderLen) / EntryLen)
}

// Bytes encodes the header into its 16-byte on-disk form.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderLen)
	b[0], b[1] = Magic[0], Magic[1]
	b[2] = h.Version
	b[3] = h.MapMode
	b[4] = byte(h.BitmapOffset >> 16)
	b[5] = byte(h.BitmapOffset >> 8)
	b[6] = byte(h.BitmapOffset)
	b[7] = byte(h.NativeSize)
	b[8] = byte(h.GlyphByteSize)
	return b
}

// ParseHeader decodes and validates a header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, FormatError{Reason: fmt.Sprintf("header too short: %d bytes", len(b))}
	}
	if b[0] != Magic[0] || b[1] != Magic[1] {
		return Header{}, FormatError{Reason: fmt.Sprintf("bad magic %q", b[0:2])}
	}
	if b[2] != Version {
		return Header{}, VersionError{Version: b[2]}
	}

	h := Header{
		Version:       b[2],
		MapMode:       b[3],
		BitmapOffset:  int64(b[4])<<16 | int64(b[5])<<8 | int64(b[6]),
		NativeSize:    int(b[7]),
		GlyphByteSize: int(b[8]),
	}

	if h.BitmapOffset < HeaderLen || (h.BitmapOffset-HeaderLen)%EntryLen != 0 {
		return Header{}, FormatError{Reason: fmt.Sprintf("bad bitmap offset %d", h.BitmapOffset)}
	}
	if h.NativeSize == 0 {
		return Header{}, FormatError{Reason: "zero glyph size"}
	}
	if want := bitmap.Len(h.NativeSize); h.GlyphByteSize != want {
		return Header{}, FormatError{
			Reason: fmt.Sprintf("glyph byte size %d does not match size %d (want %d)", h.GlyphByteSize, h.NativeSize, want),
		}
	}
	return h, nil
}

// ReadHeader reads exactly HeaderLen bytes from the start of r and parses them.
func ReadHeader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, HeaderLen)
	n, err := r.ReadAt(buf, 0)
	if n < HeaderLen {
		if err == nil || err == io.EOF {
			return Header{}, FormatError{Reason: fmt.Sprintf("header too short: %d bytes", n)}
		}
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	return ParseHeader(buf)
}

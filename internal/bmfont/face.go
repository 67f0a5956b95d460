package bmfont

import (
	"image"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// HalfWidthLimit is the first code point never drawn at half width.
const HalfWidthLimit = 0x7F

// Face exposes a font at a fixed pixel size as a font.Face, so it can be
// drawn with font.Drawer. The baseline sits at the bottom edge of the glyph
// cell. Missing glyphs draw the fallback block.
//
// A Face is not safe for concurrent use.
type Face struct {
	font      *Font
	size      int
	halfWidth bool
	buf       []byte
	mask      *image.Alpha
}

// NewFace returns a face drawing f at size pixels. When halfWidth is set,
// code points below U+007F advance by half the size.
func NewFace(f *Font, size int, halfWidth bool) *Face {
	if size <= 0 {
		size = f.NativeSize()
	}
	return &Face{
		font:      f,
		size:      size,
		halfWidth: halfWidth,
		buf:       make([]byte, f.GlyphByteSize()),
		mask:      image.NewAlpha(image.Rect(0, 0, size, size)),
	}
}

var _ font.Face = (*Face)(nil)

// Close is a no-op; the font is owned by the caller.
func (fc *Face) Close() error { return nil }

// Glyph implements font.Face. The returned mask is reused by the next call.
func (fc *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	if err := fc.font.Glyph(r, fc.buf); err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	bm := bitmap.Bitmap{
		Size: fc.size,
		Data: bitmap.Resize(fc.buf, fc.font.NativeSize(), fc.size),
	}
	for y := 0; y < fc.size; y++ {
		row := fc.mask.Pix[y*fc.mask.Stride:]
		for x := 0; x < fc.size; x++ {
			row[x] = byte(0xFF * bm.Bit(x, y))
		}
	}

	x0 := dot.X.Floor()
	y0 := dot.Y.Floor() - fc.size
	dr = image.Rect(x0, y0, x0+fc.size, y0+fc.size)
	return dr, fc.mask, image.Point{}, fc.advance(r), true
}

// GlyphBounds implements font.Face.
func (fc *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	bounds = fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: 0, Y: -fixed.I(fc.size)},
		Max: fixed.Point26_6{X: fixed.I(fc.size), Y: 0},
	}
	return bounds, fc.advance(r), true
}

// GlyphAdvance implements font.Face.
func (fc *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	return fc.advance(r), true
}

// Kern implements font.Face. Bitmap cells are never kerned.
func (fc *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

// Metrics implements font.Face.
func (fc *Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:  fixed.I(fc.size),
		Ascent:  fixed.I(fc.size),
		Descent: 0,
	}
}

func (fc *Face) advance(r rune) fixed.Int26_6 {
	if fc.halfWidth && r < HalfWidthLimit {
		return fixed.I(fc.size / 2)
	}
	return fixed.I(fc.size)
}

// Package palette maps glyph bit values to surface colors.
//
// A palette has exactly two entries: index 0 for background bits and index 1
// for foreground bits. A key color marks pixels that must not be drawn.
package palette

import (
	"fmt"

	"github.com/jwulff/bmfont-go/internal/bitmap"
)

// Mode selects how palette entries are interpreted.
type Mode int

const (
	// ModeAuto lets the caller pick a mode from the destination surface.
	ModeAuto Mode = iota
	// ModeMono entries are single bits (0 or 1).
	ModeMono
	// ModeRGB565 entries are 16-bit RGB565 colors.
	ModeRGB565
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMono:
		return "mono"
	case ModeRGB565:
		return "rgb565"
	default:
		return "auto"
	}
}

// ParseMode converts a mode name to a Mode. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "mono":
		return ModeMono, nil
	case "rgb565", "color":
		return ModeRGB565, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode %q", s)
}

// NoKey disables transparency: every pixel is drawn.
const NoKey = -1

// BytesPerPixel is the size of one expanded RGB565 pixel.
const BytesPerPixel = 2

// Palette is a two-entry color table plus a transparent key.
type Palette struct {
	mode   Mode
	colors [2]uint16
	key    int
}

// New builds a palette.
//
// In mono mode bit 1 maps to 1 and bit 0 to 0, unless reverse is set or the
// foreground is 0 while the background is not. In that case the mapping is
// swapped and the key follows the swap, so the bit value that was transparent
// becomes opaque and the other one becomes transparent.
//
// In RGB565 mode bit 0 maps to bg and bit 1 to fg.
//
// ModeAuto is treated as ModeRGB565; callers resolve it against a surface first.
func New(fg, bg uint16, key int, mode Mode, reverse bool) Palette {
	if mode == ModeMono {
		p := Palette{mode: ModeMono, colors: [2]uint16{0, 1}, key: key}
		if reverse || (fg == 0 && bg != 0) {
			p.colors = [2]uint16{1, 0}
		}
		return p
	}
	return Palette{mode: ModeRGB565, colors: [2]uint16{bg, fg}, key: key}
}

// Mode returns the palette mode.
func (p Palette) Mode() Mode {
	return p.mode
}

// Key returns the transparent key color, or NoKey.
func (p Palette) Key() int {
	return p.key
}

// Color returns the color a bit value maps to.
func (p Palette) Color(bit int) uint16 {
	return p.colors[bit&1]
}

// Transparent reports whether pixels with this bit value are skipped.
func (p Palette) Transparent(bit int) bool {
	return p.key != NoKey && int(p.colors[bit&1]) == p.key
}

// TransparentBit returns the bit value that maps to the key, or -1 when
// neither does.
func (p Palette) TransparentBit() int {
	for bit := 0; bit < 2; bit++ {
		if p.Transparent(bit) {
			return bit
		}
	}
	return -1
}

// Composite converts a packed bitmap for the palette's mode.
//
// Mono palettes pass the packed bits through, inverting them when the mapping
// is swapped. RGB565 palettes expand every pixel to two big-endian bytes,
// row-major, with no row padding.
func (p Palette) Composite(src bitmap.Bitmap) []byte {
	if p.mode == ModeMono {
		if p.colors[1] == 1 {
			return src.Data
		}
		out := make([]byte, len(src.Data))
		for i, b := range src.Data {
			out[i] = ^b
		}
		return out
	}
	return p.Expand(src)
}

// Expand writes one RGB565 pixel per source bit.
func (p Palette) Expand(src bitmap.Bitmap) []byte {
	size := src.Size
	out := make([]byte, size*size*BytesPerPixel)
	stride := bitmap.Stride(size)
	i := 0
	for y := 0; y < size; y++ {
		row := src.Data[y*stride:]
		for x := 0; x < size; x++ {
			c := p.colors[(row[x>>3]>>(7-uint(x&7)))&1]
			out[i] = byte(c >> 8)
			out[i+1] = byte(c)
			i += BytesPerPixel
		}
	}
	return out
}

package domain

import (
	"strings"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// MonoFrame is a 1 bit per pixel surface laid out like an SSD1306 buffer in
// horizontal mode: rows of ceil(width/8) bytes, most significant bit leftmost.
type MonoFrame struct {
	Width  int
	Height int
	Pixels []byte
}

// NewMonoFrame creates a cleared monochrome frame.
func NewMonoFrame(width, height int) *MonoFrame {
	return &MonoFrame{
		Width:  width,
		Height: height,
		Pixels: make([]byte, bitmap.Stride(width)*height),
	}
}

// Dimensions implements Surface.
func (m *MonoFrame) Dimensions() (int, int) {
	return m.Width, m.Height
}

// BufferSize implements Surface.
func (m *MonoFrame) BufferSize() int {
	return len(m.Pixels)
}

// SetPixel turns a pixel on or off. Out of bounds coordinates are silently ignored.
func (m *MonoFrame) SetPixel(x, y int, on bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	i := y*bitmap.Stride(m.Width) + x>>3
	mask := byte(0x80) >> uint(x&7)
	if on {
		m.Pixels[i] |= mask
	} else {
		m.Pixels[i] &^= mask
	}
}

// GetPixel reports whether a pixel is on. Out of bounds pixels are off.
func (m *MonoFrame) GetPixel(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Pixels[y*bitmap.Stride(m.Width)+x>>3]&(0x80>>uint(x&7)) != 0
}

// Clear turns every pixel off.
func (m *MonoFrame) Clear() {
	for i := range m.Pixels {
		m.Pixels[i] = 0
	}
}

// Blit implements Surface. A mono palette's composited bits are the pixel
// values; with an RGB565 palette any non-zero color turns the pixel on.
func (m *MonoFrame) Blit(src bitmap.Bitmap, x, y, key int, pal palette.Palette) {
	if pal.Mode() == palette.ModeMono {
		m.blitBits(bitmap.Bitmap{Size: src.Size, Data: pal.Composite(src)}, x, y, key)
		return
	}
	for row := 0; row < src.Size; row++ {
		for col := 0; col < src.Size; col++ {
			c := pal.Color(src.Bit(col, row))
			if !opaque(c, key) {
				continue
			}
			m.SetPixel(x+col, y+row, c != 0)
		}
	}
}

// blitBits copies packed pixel values, skipping those equal to key.
func (m *MonoFrame) blitBits(bits bitmap.Bitmap, x, y, key int) {
	for row := 0; row < bits.Size; row++ {
		for col := 0; col < bits.Size; col++ {
			v := bits.Bit(col, row)
			if !opaque(uint16(v), key) {
				continue
			}
			m.SetPixel(x+col, y+row, v == 1)
		}
	}
}

// String renders the frame as text, '#' for on and '.' for off.
func (m *MonoFrame) String() string {
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.GetPixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

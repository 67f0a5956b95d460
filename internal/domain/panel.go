package domain

import (
	"encoding/binary"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// Panel565 is an RGB565 surface stored big-endian, the byte order SPI TFT
// controllers such as the ST7789 expect.
type Panel565 struct {
	Width  int
	Height int
	Pixels []byte
}

// NewPanel565 creates a black RGB565 panel.
func NewPanel565(width, height int) *Panel565 {
	return &Panel565{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*palette.BytesPerPixel),
	}
}

// Dimensions implements Surface.
func (p *Panel565) Dimensions() (int, int) {
	return p.Width, p.Height
}

// BufferSize implements Surface.
func (p *Panel565) BufferSize() int {
	return len(p.Pixels)
}

// SetPixel stores an RGB565 color. Out of bounds coordinates are silently ignored.
func (p *Panel565) SetPixel(x, y int, c uint16) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return
	}
	binary.BigEndian.PutUint16(p.Pixels[(y*p.Width+x)*palette.BytesPerPixel:], c)
}

// GetPixel returns the color at (x, y), or 0 when out of bounds.
func (p *Panel565) GetPixel(x, y int) uint16 {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0
	}
	return binary.BigEndian.Uint16(p.Pixels[(y*p.Width+x)*palette.BytesPerPixel:])
}

// Clear sets every pixel to black.
func (p *Panel565) Clear() {
	for i := range p.Pixels {
		p.Pixels[i] = 0
	}
}

// Blit implements Surface. Color palettes are expanded to a pixel stream
// first; mono palettes draw 0xFFFF for 1 and 0 for 0.
func (p *Panel565) Blit(src bitmap.Bitmap, x, y, key int, pal palette.Palette) {
	if pal.Mode() == palette.ModeMono {
		for row := 0; row < src.Size; row++ {
			for col := 0; col < src.Size; col++ {
				c := pal.Color(src.Bit(col, row))
				if !opaque(c, key) {
					continue
				}
				if c != 0 {
					c = 0xFFFF
				}
				p.SetPixel(x+col, y+row, c)
			}
		}
		return
	}

	pixels := pal.Composite(src)
	i := 0
	for row := 0; row < src.Size; row++ {
		for col := 0; col < src.Size; col++ {
			c := binary.BigEndian.Uint16(pixels[i:])
			i += palette.BytesPerPixel
			if opaque(c, key) {
				p.SetPixel(x+col, y+row, c)
			}
		}
	}
}

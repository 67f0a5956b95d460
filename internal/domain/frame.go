// Package domain contains the pixel surfaces text is rendered onto and the
// descriptors used to pick one.
package domain

import (
	"image"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// Pixoo64Size is the Pixoo64 display size (64x64).
const Pixoo64Size = 64

// BytesPerPixel is the number of bytes per pixel (RGB).
const BytesPerPixel = 3

// Frame is an RGB888 surface.
type Frame struct {
	Width  int
	Height int
	// Pixels is a flat array of RGB values: [r0,g0,b0, r1,g1,b1, ...]
	Pixels []byte
}

// NewFrame creates a new frame filled with black (0, 0, 0).
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*BytesPerPixel),
	}
}

// NewFrameWithColor creates a new frame filled with the specified color.
func NewFrameWithColor(width, height int, color RGB) *Frame {
	f := NewFrame(width, height)
	f.Fill(color)
	return f
}

// Dimensions implements Surface.
func (f *Frame) Dimensions() (int, int) {
	return f.Width, f.Height
}

// BufferSize implements Surface.
func (f *Frame) BufferSize() int {
	return len(f.Pixels)
}

// SetPixel sets a single pixel in the frame. Out of bounds coordinates are silently ignored.
func (f *Frame) SetPixel(x, y int, color RGB) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	offset := (y*f.Width + x) * BytesPerPixel
	f.Pixels[offset] = color.R
	f.Pixels[offset+1] = color.G
	f.Pixels[offset+2] = color.B
}

// GetPixel returns the color at the specified coordinates, or nil if out of bounds.
func (f *Frame) GetPixel(x, y int) *RGB {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return nil
	}
	offset := (y*f.Width + x) * BytesPerPixel
	return &RGB{
		R: f.Pixels[offset],
		G: f.Pixels[offset+1],
		B: f.Pixels[offset+2],
	}
}

// Fill fills the entire frame with the specified color.
func (f *Frame) Fill(color RGB) {
	for i := 0; i < f.Width*f.Height; i++ {
		offset := i * BytesPerPixel
		f.Pixels[offset] = color.R
		f.Pixels[offset+1] = color.G
		f.Pixels[offset+2] = color.B
	}
}

// Clear clears the frame to black (0, 0, 0).
func (f *Frame) Clear() {
	for i := range f.Pixels {
		f.Pixels[i] = 0
	}
}

// Clone creates a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	clone := &Frame{
		Width:  f.Width,
		Height: f.Height,
		Pixels: make([]byte, len(f.Pixels)),
	}
	copy(clone.Pixels, f.Pixels)
	return clone
}

// Blit implements Surface. RGB565 palette colors are expanded to RGB888;
// mono palette colors draw white for 1 and black for 0.
func (f *Frame) Blit(src bitmap.Bitmap, x, y, key int, pal palette.Palette) {
	for row := 0; row < src.Size; row++ {
		for col := 0; col < src.Size; col++ {
			c := pal.Color(src.Bit(col, row))
			if !opaque(c, key) {
				continue
			}
			f.SetPixel(x+col, y+row, frameColor(c, pal.Mode()))
		}
	}
}

func frameColor(c uint16, mode palette.Mode) RGB {
	if mode == palette.ModeMono {
		if c != 0 {
			return RGB{R: 255, G: 255, B: 255}
		}
		return RGB{}
	}
	return RGBFrom565(c)
}

// Image copies the frame into an RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		img.Pix[i*4] = f.Pixels[i*BytesPerPixel]
		img.Pix[i*4+1] = f.Pixels[i*BytesPerPixel+1]
		img.Pix[i*4+2] = f.Pixels[i*BytesPerPixel+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

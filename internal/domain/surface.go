package domain

import (
	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// Surface is a rectangular pixel buffer that glyphs can be blitted onto.
type Surface interface {
	// Dimensions returns the surface size in pixels.
	Dimensions() (width, height int)
	// BufferSize returns the capacity of the backing buffer in bytes.
	BufferSize() int
	// Blit draws src with its top-left corner at (x, y). Each bit is mapped
	// through pal; pixels whose color equals key are not drawn.
	Blit(src bitmap.Bitmap, x, y, key int, pal palette.Palette)
}

// Clearer is implemented by surfaces that can erase their contents.
type Clearer interface {
	Clear()
}

// Shower is implemented by surfaces that push their buffer to a device.
type Shower interface {
	Show() error
}

// opaque reports whether a pixel of color c is drawn under key.
func opaque(c uint16, key int) bool {
	return key == palette.NoKey || int(c) != key
}

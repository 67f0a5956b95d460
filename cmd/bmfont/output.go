package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/render"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// brightness returns a 0-255 level for a surface pixel.
func brightness(s domain.Surface, x, y int) int {
	switch s := s.(type) {
	case *domain.MonoFrame:
		if s.GetPixel(x, y) {
			return 255
		}
		return 0
	case *domain.Panel565:
		c := domain.RGBFrom565(s.GetPixel(x, y))
		return (int(c.R) + int(c.G) + int(c.B)) / 3
	case *domain.Frame:
		if p := s.GetPixel(x, y); p != nil {
			return (int(p.R) + int(p.G) + int(p.B)) / 3
		}
	}
	return 0
}

// printSurface renders the surface as ASCII art
func printSurface(w io.Writer, s domain.Surface) {
	width, height := s.Dimensions()
	border := strings.Repeat("─", width)

	fmt.Fprintf(w, "  ┌%s┐\n", border)
	for y := 0; y < height; y++ {
		var line strings.Builder
		for x := 0; x < width; x++ {
			switch b := brightness(s, x, y); {
			case b > 200:
				line.WriteString("█")
			case b > 150:
				line.WriteString("▓")
			case b > 100:
				line.WriteString("▒")
			case b > 50:
				line.WriteString("░")
			case b > 10:
				line.WriteString("·")
			default:
				line.WriteString(" ")
			}
		}
		fmt.Fprintf(w, "%2d│%s│\n", y, line.String())
	}
	fmt.Fprintf(w, "  └%s┘\n", border)
}

// writeBMP encodes src as a BMP, scaled up zoom times with
// nearest-neighbour sampling so pixels stay sharp.
func writeBMP(w io.Writer, src image.Image, zoom int) error {
	if zoom <= 1 {
		return bmp.Encode(w, src)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return bmp.Encode(w, dst)
}

// drawFace draws text with a font.Drawer over the font's x/image face, with
// the top-left of the first glyph at (x, y). Newlines start a new line at x;
// other control characters are dropped. There is no wrapping or palette:
// glyph pixels take opts.Color and everything else is left as is.
func drawFace(dst draw.Image, f *bmfont.Font, text string, x, y int, opts render.Options) {
	opts.ApplyDefaults(f.NativeSize())
	c := domain.RGBFrom565(opts.Color)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}),
		Face: bmfont.NewFace(f, opts.Size, opts.HalfWidth),
	}
	for i, line := range strings.Split(text, "\n") {
		line = strings.Map(func(r rune) rune {
			if r < ' ' {
				return -1
			}
			return r
		}, line)
		d.Dot = fixed.P(x, y+opts.Size+i*(opts.Size+opts.LineSpacing))
		d.DrawString(line)
	}
}

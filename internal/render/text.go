package render

import (
	"fmt"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// minPrintable is the first code point that draws a glyph.
const minPrintable = 0x20

// Cursor is a pen position in surface pixels.
type Cursor struct {
	X int
	Y int
}

// Bounds represents the bounding box of rendered text.
type Bounds struct {
	Width  int
	Height int
}

// ResolveMode returns mode unless it is ModeAuto. An auto mode becomes mono
// when the surface buffer holds fewer bytes than it has pixels.
func ResolveMode(s domain.Surface, mode palette.Mode) palette.Mode {
	if mode != palette.ModeAuto {
		return mode
	}
	w, h := s.Dimensions()
	if w*h > s.BufferSize() {
		return palette.ModeMono
	}
	return palette.ModeRGB565
}

// layout walks text and calls draw for every glyph that lands inside the
// width x height area. It returns the cursor after the last character.
func layout(text string, x, y, width, height int, opts Options, draw func(code rune, at Cursor) error) (Cursor, error) {
	size := opts.Size
	cur := Cursor{X: x, Y: y}
	lineBreak := func() {
		cur.X = x
		cur.Y += size + opts.LineSpacing
	}

	for _, code := range text {
		switch {
		case code == '\n':
			lineBreak()
			continue
		case code == '\t':
			cur.X = ((cur.X/size)+1)*size + mod(x, size)
			continue
		case code < minPrintable:
			continue
		}

		advance := size
		if opts.HalfWidth && code < bmfont.HalfWidthLimit {
			advance = size / 2
		}
		if opts.AutoWrap && cur.X+advance > width {
			lineBreak()
		}
		if cur.X >= width || cur.Y >= height {
			continue
		}
		if err := draw(code, cur); err != nil {
			return cur, err
		}
		cur.X += advance
	}
	return cur, nil
}

// mod returns a non-negative remainder.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Render draws text onto s with its first glyph's top-left corner at (x, y).
//
// Newlines return to x and move down one line. Tabs jump to the next tab stop
// without drawing. Other code points below U+0020 are ignored. Glyphs whose
// origin lies outside the surface are skipped without advancing the cursor.
// Missing glyphs draw as a solid block.
//
// The font's bitmap cache is held for the whole pass. Render returns the
// cursor position after the last character.
func Render(s domain.Surface, f *bmfont.Font, text string, x, y int, opts Options) (Cursor, error) {
	native := f.NativeSize()
	opts.ApplyDefaults(native)
	width, height := s.Dimensions()
	mode := ResolveMode(s, opts.Mode)

	if opts.Clear {
		if c, ok := s.(domain.Clearer); ok {
			c.Clear()
		} else {
			bmfont.Logger().Warn("render: surface cannot clear itself, clear it before drawing",
				"surface", fmt.Sprintf("%T", s))
		}
	}

	pal := palette.New(opts.Color, opts.Background, opts.Transparent, mode, opts.Reverse)

	var cur Cursor
	err := f.Scratch(func(buf []byte) error {
		var err error
		cur, err = layout(text, x, y, width, height, opts, func(code rune, at Cursor) error {
			if err := f.Glyph(code, buf); err != nil {
				return err
			}
			glyph := bitmap.Bitmap{Size: opts.Size, Data: bitmap.Resize(buf, native, opts.Size)}
			s.Blit(glyph, at.X, at.Y, pal.Key(), pal)
			return nil
		})
		return err
	})
	if err != nil {
		return cur, fmt.Errorf("failed to render text: %w", err)
	}

	if opts.Show {
		if sh, ok := s.(domain.Shower); ok {
			if err := sh.Show(); err != nil {
				return cur, fmt.Errorf("failed to show surface: %w", err)
			}
		}
	}
	return cur, nil
}

// Measure returns the box text covers when laid out from the origin on an
// unbounded surface. Size 0 in opts means native.
func Measure(f *bmfont.Font, text string, opts Options) Bounds {
	opts.ApplyDefaults(f.NativeSize())
	opts.AutoWrap = false

	var b Bounds
	const unbounded = int(^uint(0) >> 1)
	layout(text, 0, 0, unbounded, unbounded, opts, func(code rune, at Cursor) error {
		advance := opts.Size
		if opts.HalfWidth && code < bmfont.HalfWidthLimit {
			advance = opts.Size / 2
		}
		b.Width = max(b.Width, at.X+advance)
		b.Height = max(b.Height, at.Y+opts.Size)
		return nil
	})
	return b
}

// RenderCentered draws a single line of text centered horizontally on s.
func RenderCentered(s domain.Surface, f *bmfont.Font, text string, y int, opts Options) (Cursor, error) {
	width, _ := s.Dimensions()
	x := (width - Measure(f, text, opts).Width) / 2
	return Render(s, f, text, x, y, opts)
}

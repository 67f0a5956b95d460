package render

import (
	"bytes"
	"testing"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/palette"
	"github.com/stretchr/testify/require"
)

// dotFont builds a font whose glyphs only set their top-left pixel.
func dotFont(t *testing.T, size int, codes ...rune) *bmfont.Font {
	t.Helper()
	glyphs := make(map[rune][]byte, len(codes))
	for _, c := range codes {
		g := bitmap.New(size)
		g.Set(0, 0)
		glyphs[c] = g.Data
	}
	data, err := bmfont.Build(size, glyphs)
	require.NoError(t, err)
	f, err := bmfont.Open(bytes.NewReader(data), bmfont.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

type blit struct {
	X, Y int
	Size int
	Key  int
	Mode palette.Mode
	Data []byte
}

// recorder is a surface that only records blits.
type recorder struct {
	width, height int
	buffer        int
	blits         []blit
}

func newRecorder(width, height int) *recorder {
	return &recorder{width: width, height: height, buffer: width * height * palette.BytesPerPixel}
}

func (r *recorder) Dimensions() (int, int) { return r.width, r.height }

func (r *recorder) BufferSize() int { return r.buffer }

func (r *recorder) Blit(src bitmap.Bitmap, x, y, key int, pal palette.Palette) {
	r.blits = append(r.blits, blit{
		X: x, Y: y, Size: src.Size, Key: key, Mode: pal.Mode(),
		Data: bytes.Clone(src.Data),
	})
}

func (r *recorder) positions() [][2]int {
	out := make([][2]int, len(r.blits))
	for i, b := range r.blits {
		out[i] = [2]int{b.X, b.Y}
	}
	return out
}

// device adds the optional clear and show capabilities.
type device struct {
	*recorder
	cleared int
	shown   int
	showErr error
}

func (d *device) Clear() { d.cleared++ }

func (d *device) Show() error {
	d.shown++
	return d.showErr
}

package render

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullWidth() Options {
	opts := DefaultOptions()
	opts.HalfWidth = false
	return opts
}

func TestRenderHalfWidthAdvance(t *testing.T) {
	f := dotFont(t, 16, 'A', 'B')
	s := newRecorder(64, 64)

	cur, err := Render(s, f, "AB", 5, 0, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{5, 0}, {13, 0}}, s.positions())
	assert.Equal(t, 5+16, cur.X)
}

func TestRenderFullWidthOutsideASCII(t *testing.T) {
	f := dotFont(t, 16, 'A', 0x4E2D, 0x7F)
	s := newRecorder(128, 64)

	cur, err := Render(s, f, "中A\u007FA", 0, 0, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {16, 0}, {24, 0}, {40, 0}}, s.positions())
	assert.Equal(t, 48, cur.X)
}

func TestRenderHalfWidthDisabled(t *testing.T) {
	f := dotFont(t, 8, 'A', 'B')
	s := newRecorder(64, 64)

	cur, err := Render(s, f, "AB", 0, 0, fullWidth())

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {8, 0}}, s.positions())
	assert.Equal(t, 16, cur.X)
}

func TestRenderNewline(t *testing.T) {
	f := dotFont(t, 8, 'A', 'B')
	s := newRecorder(64, 64)
	opts := fullWidth()
	opts.LineSpacing = 2

	cur, err := Render(s, f, "AA\nB", 3, 2, opts)

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{3, 2}, {11, 2}, {3, 12}}, s.positions())
	assert.Equal(t, Cursor{X: 11, Y: 12}, cur)
}

func TestRenderTab(t *testing.T) {
	f := dotFont(t, 8, 'A')
	s := newRecorder(128, 64)

	_, err := Render(s, f, "\tA", 0, 0, fullWidth())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{8, 0}}, s.positions())

	s = newRecorder(128, 64)
	_, err = Render(s, f, "\tA", 3, 0, fullWidth())
	require.NoError(t, err)
	// ((3/8)+1)*8 + 3%8
	assert.Equal(t, [][2]int{{11, 0}}, s.positions())
}

func TestRenderTabNeverMovesBackward(t *testing.T) {
	f := dotFont(t, 8, 'A')
	for initial := 0; initial < 24; initial++ {
		for prefix := 0; prefix < 4; prefix++ {
			text := string(bytes.Repeat([]byte("A"), prefix))
			s := newRecorder(1024, 64)

			before, err := Render(s, f, text, initial, 0, DefaultOptions())
			require.NoError(t, err)
			after, err := Render(s, f, text+"\t", initial, 0, DefaultOptions())
			require.NoError(t, err)

			assert.Greater(t, after.X, before.X, "initial %d prefix %d", initial, prefix)
			assert.Zero(t, (after.X-initial%8)%8, "initial %d prefix %d", initial, prefix)
			assert.Equal(t, before.Y, after.Y)
		}
	}
}

func TestRenderSkipsControlCharacters(t *testing.T) {
	f := dotFont(t, 8, 'A', 'B')
	s := newRecorder(64, 64)

	cur, err := Render(s, f, "A\x01\x1b\rB", 0, 0, fullWidth())

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {8, 0}}, s.positions())
	assert.Equal(t, 16, cur.X)
}

func TestRenderAutoWrap(t *testing.T) {
	f := dotFont(t, 8, 'A', 'B', 'C', 'D')
	s := newRecorder(28, 64)
	opts := fullWidth()
	opts.AutoWrap = true

	cur, err := Render(s, f, "ABCD", 4, 0, opts)

	require.NoError(t, err)
	// C ends exactly on the right edge, D does not fit.
	assert.Equal(t, [][2]int{{4, 0}, {12, 0}, {20, 0}, {4, 8}}, s.positions())
	assert.Equal(t, Cursor{X: 12, Y: 8}, cur)
}

func TestRenderAutoWrapHalfWidth(t *testing.T) {
	f := dotFont(t, 16, 'A')
	s := newRecorder(20, 64)
	opts := DefaultOptions()
	opts.AutoWrap = true

	_, err := Render(s, f, "AAA", 0, 0, opts)

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {8, 0}, {0, 16}}, s.positions())
}

func TestRenderLongLineWrapsToInitialX(t *testing.T) {
	f := dotFont(t, 8, 'W')
	s := newRecorder(64, 128)
	opts := fullWidth()
	opts.AutoWrap = true
	text := "WWWWWWWWWWWWWWWWWWWW"

	_, err := Render(s, f, text, 10, 0, opts)

	require.NoError(t, err)
	require.Len(t, s.blits, len(text))
	lines := 0
	for i := 1; i < len(s.blits); i++ {
		if s.blits[i].Y > s.blits[i-1].Y {
			lines++
			assert.Equal(t, 10, s.blits[i].X)
		}
		assert.LessOrEqual(t, s.blits[i].X+8, 64)
	}
	assert.GreaterOrEqual(t, lines, 1)
}

func TestRenderClipsOutsideSurface(t *testing.T) {
	f := dotFont(t, 8, 'A', 'B', 'C', 'D')
	s := newRecorder(16, 16)

	cur, err := Render(s, f, "ABCD", 0, 0, fullWidth())

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {8, 0}}, s.positions())
	assert.Equal(t, 16, cur.X, "skipped glyphs do not advance")

	s = newRecorder(16, 16)
	_, err = Render(s, f, "AB", 0, 16, fullWidth())
	require.NoError(t, err)
	assert.Empty(t, s.blits)

	// A newline brings the cursor back inside.
	s = newRecorder(16, 32)
	_, err = Render(s, f, "ABC\nD", 0, 0, fullWidth())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {8, 0}, {0, 8}}, s.positions())
}

func TestRenderClear(t *testing.T) {
	f := dotFont(t, 8, 'A')
	d := &device{recorder: newRecorder(32, 32)}
	opts := DefaultOptions()
	opts.Clear = true

	_, err := Render(d, f, "A", 0, 0, opts)

	require.NoError(t, err)
	assert.Equal(t, 1, d.cleared)
}

func TestRenderClearUnsupportedWarns(t *testing.T) {
	var logs bytes.Buffer
	bmfont.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { bmfont.SetLogger(nil) })

	f := dotFont(t, 8, 'A')
	s := newRecorder(32, 32)
	opts := DefaultOptions()
	opts.Clear = true

	_, err := Render(s, f, "A", 0, 0, opts)

	require.NoError(t, err)
	assert.Len(t, s.blits, 1)
	assert.Contains(t, logs.String(), "cannot clear")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestRenderShow(t *testing.T) {
	f := dotFont(t, 8, 'A')

	d := &device{recorder: newRecorder(32, 32)}
	_, err := Render(d, f, "A", 0, 0, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, d.shown)
	assert.Zero(t, d.cleared)

	d = &device{recorder: newRecorder(32, 32)}
	opts := DefaultOptions()
	opts.Show = false
	_, err = Render(d, f, "A", 0, 0, opts)
	require.NoError(t, err)
	assert.Zero(t, d.shown)
}

func TestRenderShowError(t *testing.T) {
	f := dotFont(t, 8, 'A')
	boom := errors.New("device offline")
	d := &device{recorder: newRecorder(32, 32), showErr: boom}

	_, err := Render(d, f, "A", 0, 0, DefaultOptions())

	assert.ErrorIs(t, err, boom)
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, palette.ModeMono, ResolveMode(domain.NewMonoFrame(128, 64), palette.ModeAuto))
	assert.Equal(t, palette.ModeRGB565, ResolveMode(domain.NewPanel565(240, 240), palette.ModeAuto))
	assert.Equal(t, palette.ModeRGB565, ResolveMode(domain.NewFrame(64, 64), palette.ModeAuto))
	assert.Equal(t, palette.ModeMono, ResolveMode(domain.NewPanel565(240, 240), palette.ModeMono))
}

func TestRenderUsesDetectedMode(t *testing.T) {
	f := dotFont(t, 8, 'A')

	mono := newRecorder(32, 32)
	mono.buffer = 32 * 32 / 8
	_, err := Render(mono, f, "A", 0, 0, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, palette.ModeMono, mono.blits[0].Mode)

	color := newRecorder(32, 32)
	_, err = Render(color, f, "A", 0, 0, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, palette.ModeRGB565, color.blits[0].Mode)
	assert.Equal(t, 0, color.blits[0].Key)
}

func TestRenderScalesGlyphs(t *testing.T) {
	f := dotFont(t, 8, 'A')
	s := newRecorder(64, 64)
	opts := DefaultOptions()
	opts.Size = 24

	cur, err := Render(s, f, "AA", 0, 0, opts)

	require.NoError(t, err)
	require.Len(t, s.blits, 2)
	assert.Equal(t, 12, s.blits[1].X)
	assert.Equal(t, 24, cur.X)

	g := bitmap.Bitmap{Size: s.blits[0].Size, Data: s.blits[0].Data}
	require.Equal(t, 24, g.Size)
	require.Len(t, g.Data, bitmap.Len(24))
	assert.Equal(t, 1, g.Bit(2, 2))
	assert.Equal(t, 0, g.Bit(3, 0))
	assert.Equal(t, 0, g.Bit(0, 3))
}

func TestRenderMissingGlyphDrawsBlock(t *testing.T) {
	f := dotFont(t, 8, 'A')
	s := newRecorder(64, 64)

	_, err := Render(s, f, "Z", 0, 0, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, s.blits, 1)
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 8), s.blits[0].Data)
}

func TestRenderClosedFont(t *testing.T) {
	f := dotFont(t, 8, 'A')
	require.NoError(t, f.Close())

	_, err := Render(newRecorder(32, 32), f, "A", 0, 0, DefaultOptions())

	assert.True(t, errors.Is(err, fs.ErrClosed))
}

func TestRenderMonoFrameBuiltin(t *testing.T) {
	f, err := OpenBuiltin()
	require.NoError(t, err)
	defer f.Close()
	frame := domain.NewMonoFrame(16, 8)

	cur, err := Render(frame, f, "HI", 0, 0, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, 8, cur.X)
	// 'H' top row is 0b101, one pixel below the cell top.
	assert.True(t, frame.GetPixel(0, 1))
	assert.False(t, frame.GetPixel(1, 1))
	assert.True(t, frame.GetPixel(2, 1))
	// 'I' top row is 0b111, starting half a cell to the right.
	assert.True(t, frame.GetPixel(4, 1))
	assert.True(t, frame.GetPixel(5, 1))
	assert.True(t, frame.GetPixel(6, 1))
	assert.False(t, frame.GetPixel(3, 1))
	assert.False(t, frame.GetPixel(0, 0))
}

func TestRenderPanelColors(t *testing.T) {
	f, err := OpenBuiltin()
	require.NoError(t, err)
	defer f.Close()
	panel := domain.NewPanel565(16, 8)
	panel.SetPixel(1, 1, ColorBlue)
	opts := DefaultOptions()
	opts.Color = ColorRed

	_, err = Render(panel, f, "H", 0, 0, opts)

	require.NoError(t, err)
	assert.Equal(t, ColorRed, panel.GetPixel(0, 1))
	assert.Equal(t, ColorBlue, panel.GetPixel(1, 1), "background is transparent by default")

	opts.Transparent = palette.NoKey
	opts.Background = ColorGreen
	_, err = Render(panel, f, "H", 0, 0, opts)
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, panel.GetPixel(1, 1))
}

func TestRenderReverseMono(t *testing.T) {
	f := dotFont(t, 8, 'A')
	frame := domain.NewMonoFrame(8, 8)
	opts := DefaultOptions()
	opts.Reverse = true

	_, err := Render(frame, f, "A", 0, 0, opts)

	require.NoError(t, err)
	assert.False(t, frame.GetPixel(0, 0))
	assert.True(t, frame.GetPixel(1, 0))
	assert.True(t, frame.GetPixel(7, 7))
}

func TestRenderCentered(t *testing.T) {
	f := dotFont(t, 8, 'A')
	s := newRecorder(64, 64)

	_, err := RenderCentered(s, f, "AAAA", 10, DefaultOptions())

	require.NoError(t, err)
	// Four half-width cells are 16 pixels wide.
	assert.Equal(t, 24, s.blits[0].X)
	assert.Equal(t, 10, s.blits[0].Y)
}

func TestMeasure(t *testing.T) {
	f := dotFont(t, 16, 'A', 'B')

	assert.Equal(t, Bounds{Width: 16, Height: 16}, Measure(f, "AB", DefaultOptions()))
	assert.Equal(t, Bounds{Width: 32, Height: 16}, Measure(f, "AB", fullWidth()))
	assert.Equal(t, Bounds{Width: 24, Height: 32}, Measure(f, "A\nABB", DefaultOptions()))
	assert.Equal(t, Bounds{}, Measure(f, "", DefaultOptions()))

	opts := DefaultOptions()
	opts.Size = 8
	opts.LineSpacing = 2
	assert.Equal(t, Bounds{Width: 4, Height: 18}, Measure(f, "A\nA", opts))
}

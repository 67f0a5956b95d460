package render

import (
	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/palette"
)

// Options configures a render pass.
type Options struct {
	Color      uint16 // Foreground, RGB565 (default: white)
	Background uint16 // Background, RGB565
	Size       int    // Glyph size in pixels, 0 means the font's native size
	HalfWidth  bool   // Advance half a cell for code points below U+007F (default: true)
	AutoWrap   bool   // Break the line when a glyph would cross the right edge
	Show       bool   // Flush the surface after drawing (default: true)
	Clear      bool   // Clear the surface before drawing
	// Transparent is the key color that is never drawn, or palette.NoKey.
	Transparent int
	Reverse     bool         // Invert a mono palette
	Mode        palette.Mode // Palette mode, auto-detected from the surface by default
	LineSpacing int          // Extra pixels between lines
}

// DefaultOptions returns white text on black, half-width ASCII, transparent
// background, shown after drawing.
func DefaultOptions() Options {
	return Options{
		Color:       ColorWhite,
		Background:  ColorBlack,
		HalfWidth:   true,
		Show:        true,
		Transparent: 0,
		Mode:        palette.ModeAuto,
	}
}

// ApplyDefaults fills in fields that depend on the font.
func (o *Options) ApplyDefaults(native int) {
	if o.Size <= 0 {
		o.Size = native
	}
	if o.LineSpacing < 0 {
		o.LineSpacing = 0
	}
}

// Preset keys.
const (
	KeyColor       = "color"
	KeyBackground  = "background"
	KeySize        = "size"
	KeyHalfWidth   = "half_width"
	KeyAutoWrap    = "auto_wrap"
	KeyShow        = "show"
	KeyClear       = "clear"
	KeyTransparent = "transparent"
	KeyReverse     = "reverse"
	KeyMode        = "mode"
	KeyLineSpacing = "line_spacing"
)

// OptionsFromPreset starts from DefaultOptions and overrides every setting
// the preset carries. Colors may be stored as numbers or as names accepted
// by ParseColor.
func OptionsFromPreset(p domain.Preset) Options {
	o := DefaultOptions()
	o.Color = presetColor(p, KeyColor, o.Color)
	o.Background = presetColor(p, KeyBackground, o.Background)
	o.Size = p.GetInt(KeySize, o.Size)
	o.HalfWidth = p.GetBool(KeyHalfWidth, o.HalfWidth)
	o.AutoWrap = p.GetBool(KeyAutoWrap, o.AutoWrap)
	o.Show = p.GetBool(KeyShow, o.Show)
	o.Clear = p.GetBool(KeyClear, o.Clear)
	o.Transparent = p.GetInt(KeyTransparent, o.Transparent)
	o.Reverse = p.GetBool(KeyReverse, o.Reverse)
	if m, err := palette.ParseMode(p.GetString(KeyMode, "")); err == nil {
		o.Mode = m
	}
	o.LineSpacing = p.GetInt(KeyLineSpacing, o.LineSpacing)
	return o
}

// Preset stores the options under name.
func (o Options) Preset(name string) *domain.Preset {
	p := domain.NewPreset(name)
	p.Set(KeyColor, int(o.Color))
	p.Set(KeyBackground, int(o.Background))
	p.Set(KeySize, o.Size)
	p.Set(KeyHalfWidth, o.HalfWidth)
	p.Set(KeyAutoWrap, o.AutoWrap)
	p.Set(KeyShow, o.Show)
	p.Set(KeyClear, o.Clear)
	p.Set(KeyTransparent, o.Transparent)
	p.Set(KeyReverse, o.Reverse)
	p.Set(KeyMode, o.Mode.String())
	p.Set(KeyLineSpacing, o.LineSpacing)
	return p
}

func presetColor(p domain.Preset, key string, def uint16) uint16 {
	if s := p.GetString(key, ""); s != "" {
		if c, err := ParseColor(s); err == nil {
			return c
		}
		return def
	}
	return uint16(p.GetInt(key, int(def)))
}

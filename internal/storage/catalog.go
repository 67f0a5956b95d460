package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jwulff/bmfont-go/internal/bmfont"
)

// ImportFont copies every glyph of f into the catalog under name, replacing
// any font already stored with that name.
func ImportFont(ctx context.Context, s Store, name string, f *bmfont.Font) (*Font, error) {
	glyphs := make([]Glyph, 0, f.GlyphCount())
	slot := 0
	err := f.Each(func(code rune, bitmap []byte) error {
		glyphs = append(glyphs, Glyph{Code: code, Slot: slot, Bitmap: bytes.Clone(bitmap)})
		slot++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read glyphs: %w", err)
	}

	rec := &Font{
		Name:          name,
		NativeSize:    f.NativeSize(),
		GlyphByteSize: f.GlyphByteSize(),
		GlyphCount:    len(glyphs),
		ImportedAt:    time.Now(),
	}
	if err := s.SaveFont(ctx, rec, glyphs); err != nil {
		return nil, fmt.Errorf("failed to save font %q: %w", name, err)
	}
	return rec, nil
}

// LoadFont opens a catalog font as a preloaded bmfont.Font. Of opts only
// NoBitmapCache applies.
func LoadFont(ctx context.Context, s Store, name string, opts bmfont.Options) (*bmfont.Font, error) {
	rec, err := s.GetFont(ctx, name)
	if err != nil {
		return nil, err
	}
	glyphs, err := s.GetGlyphs(ctx, name)
	if err != nil {
		return nil, err
	}

	mapped := make(map[rune][]byte, len(glyphs))
	for _, g := range glyphs {
		mapped[g.Code] = g.Bitmap
	}
	f, err := bmfont.NewMapped(rec.NativeSize, mapped, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open font %q: %w", name, err)
	}
	return f, nil
}

// ExportFont encodes a catalog font as a BMF container.
func ExportFont(ctx context.Context, s Store, name string) ([]byte, error) {
	rec, err := s.GetFont(ctx, name)
	if err != nil {
		return nil, err
	}
	glyphs, err := s.GetGlyphs(ctx, name)
	if err != nil {
		return nil, err
	}
	mapped := make(map[rune][]byte, len(glyphs))
	for _, g := range glyphs {
		mapped[g.Code] = g.Bitmap
	}
	return bmfont.Build(rec.NativeSize, mapped)
}

package render

import (
	"bytes"
	"sync"
	"unicode"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/bmfont"
)

// Built-in font geometry. Each 3x5 glyph sits in the top-left of an 8x8 cell
// with a one pixel top margin, so a half-width advance leaves one blank column.
const (
	BuiltinSize    = 8
	TinyCharWidth  = 3
	TinyCharHeight = 5
	tinyTopMargin  = 1
)

// tinyFontData contains the 3x5 bitmap font data.
var tinyFontData = map[rune][TinyCharHeight]uint8{
	// Numbers
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},

	// Uppercase letters
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b011, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b110, 0b100, 0b110, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},

	// Symbols
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'!': {0b010, 0b010, 0b010, 0b000, 0b010},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	',': {0b000, 0b000, 0b000, 0b010, 0b100},
	'?': {0b111, 0b001, 0b010, 0b000, 0b010},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
}

// tinyCell places a 3x5 glyph in a BuiltinSize cell.
func tinyCell(rows [TinyCharHeight]uint8) []byte {
	cell := bitmap.New(BuiltinSize)
	for row := 0; row < TinyCharHeight; row++ {
		for col := 0; col < TinyCharWidth; col++ {
			if rows[row]&(1<<(TinyCharWidth-1-col)) != 0 {
				cell.Set(col, row+tinyTopMargin)
			}
		}
	}
	return cell.Data
}

// builtinData encodes the tiny font once. Lowercase letters share the
// uppercase shapes.
var builtinData = sync.OnceValues(func() ([]byte, error) {
	glyphs := make(map[rune][]byte, 2*len(tinyFontData))
	for code, rows := range tinyFontData {
		glyphs[code] = tinyCell(rows)
		if lower := unicode.ToLower(code); lower != code {
			glyphs[lower] = glyphs[code]
		}
	}
	return bmfont.Build(BuiltinSize, glyphs)
})

// BuiltinFontData returns the built-in font as a BMF container.
func BuiltinFontData() ([]byte, error) {
	data, err := builtinData()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}

// OpenBuiltin opens the built-in font with an in-memory index.
func OpenBuiltin() (*bmfont.Font, error) {
	data, err := builtinData()
	if err != nil {
		return nil, err
	}
	return bmfont.Open(bytes.NewReader(data), bmfont.Options{Index: bmfont.IndexMemory, BlockIndex: true})
}

// Package main dumps single glyphs from a BMF font for debugging.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jwulff/bmfont-go/internal/bitmap"
	"github.com/jwulff/bmfont-go/internal/bmfont"
	"github.com/jwulff/bmfont-go/internal/render"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: debug <font.bmf|builtin> <char|U+XXXX> [size]")
		os.Exit(1)
	}

	bmfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	var f *bmfont.Font
	var err error
	if os.Args[1] == "builtin" {
		f, err = render.OpenBuiltin()
	} else {
		f, err = bmfont.OpenFile(os.Args[1], bmfont.DefaultOptions())
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	code, err := parseCode(os.Args[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	slot, err := f.Resolve(code)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	native := f.NativeSize()
	fmt.Printf("Code:  U+%04X\n", code)
	if slot == bmfont.NotFound {
		fmt.Println("Slot:  not found (fallback block)")
	} else {
		fmt.Printf("Slot:  %d\n", slot)
		fmt.Printf("Offset: %d\n", f.Header().BitmapOffset+int64(slot*f.GlyphByteSize()))
	}

	buf := make([]byte, f.GlyphByteSize())
	if err := f.Fetch(slot, buf); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Bytes: % X\n\n", buf)
	dump(bitmap.Bitmap{Size: native, Data: buf})

	if len(os.Args) > 3 {
		size, err := strconv.Atoi(os.Args[3])
		if err != nil || size <= 0 {
			fmt.Printf("Error: invalid size %q\n", os.Args[3])
			os.Exit(1)
		}
		fmt.Printf("\nScaled %d -> %d (factor %d/1024):\n\n", native, size, bitmap.ScaleFactor(native, size))
		dump(bitmap.Bitmap{Size: size, Data: bitmap.Resize(buf, native, size)})
	}
}

// parseCode accepts a single character or U+XXXX.
func parseCode(s string) (rune, error) {
	if hex, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid code point %q: %w", s, err)
		}
		return rune(v), nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("expected one character, got %q", s)
	}
	return runes[0], nil
}

func dump(b bitmap.Bitmap) {
	for y := 0; y < b.Size; y++ {
		var line strings.Builder
		for x := 0; x < b.Size; x++ {
			if b.Bit(x, y) == 1 {
				line.WriteString("██")
			} else {
				line.WriteString("··")
			}
		}
		fmt.Println(line.String())
	}
}

// Package bitmap holds packed monochrome glyph bitmaps and the scaler that
// resamples them.
//
// Layout: square, row-major, 1 bit per pixel, most significant bit first.
// Each row occupies Stride(size) = ceil(size/8) bytes. Bits past the last
// column of a row are padding and carry no meaning.
package bitmap

// Bitmap is a packed square monochrome image.
type Bitmap struct {
	Size int
	Data []byte
}

// New allocates a cleared bitmap of the given size.
func New(size int) Bitmap {
	return Bitmap{Size: size, Data: make([]byte, Len(size))}
}

// Stride returns the number of bytes per row for a bitmap of the given size.
func Stride(size int) int {
	return (size + 7) >> 3
}

// Len returns the number of bytes needed to store a bitmap of the given size.
func Len(size int) int {
	return Stride(size) * size
}

// Bit returns the pixel at (x, y) as 0 or 1. Out of bounds coordinates read as 0.
func (b Bitmap) Bit(x, y int) int {
	if x < 0 || x >= b.Size || y < 0 || y >= b.Size {
		return 0
	}
	i := y*Stride(b.Size) + x>>3
	if i >= len(b.Data) {
		return 0
	}
	return int(b.Data[i]>>(7-uint(x&7))) & 1
}

// Set sets the pixel at (x, y) to 1. Out of bounds coordinates are silently ignored.
func (b Bitmap) Set(x, y int) {
	if x < 0 || x >= b.Size || y < 0 || y >= b.Size {
		return
	}
	b.Data[y*Stride(b.Size)+x>>3] |= 0x80 >> uint(x&7)
}

// Equal reports whether two bitmaps have the same size and the same visible
// pixels. Row padding bits are ignored.
func (b Bitmap) Equal(other Bitmap) bool {
	if b.Size != other.Size {
		return false
	}
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Bit(x, y) != other.Bit(x, y) {
				return false
			}
		}
	}
	return true
}

// FromRows builds a bitmap from rows given as right-aligned bit patterns,
// where the leftmost pixel is bit size-1 of each row value.
func FromRows(size int, rows []uint64) Bitmap {
	b := New(size)
	for y, row := range rows {
		if y >= size {
			break
		}
		for x := 0; x < size; x++ {
			if row&(1<<uint(size-1-x)) != 0 {
				b.Set(x, y)
			}
		}
	}
	return b
}

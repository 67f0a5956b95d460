package bitmap

// fixedShift is the number of fractional bits in the nearest-neighbour scale factor.
const fixedShift = 10

// Resize resamples src, a packed bitmap of size native, to size target.
//
// When target equals native, src is returned unchanged. An exact integer
// upscale takes the row-replicating fast path; every other ratio goes through
// nearest-neighbour sampling. The result always has Stride(target) bytes per row.
func Resize(src []byte, native, target int) []byte {
	if target == native {
		return src
	}
	if target > native && native > 0 && target%native == 0 {
		return resizeMultiple(src, native, target/native)
	}
	return resizeNearest(src, native, target)
}

// resizeMultiple upscales by an integer factor. Each source row is expanded
// column-wise once, and the expanded row is then copied scale times.
func resizeMultiple(src []byte, native, scale int) []byte {
	target := native * scale
	srcStride := Stride(native)
	dstStride := Stride(target)
	dst := make([]byte, dstStride*target)

	row := make([]byte, dstStride)
	off := 0
	for y := 0; y < native; y++ {
		for i := range row {
			row[i] = 0
		}
		line := src[y*srcStride:]
		for x := 0; x < native; x++ {
			if line[x>>3]&(0x80>>uint(x&7)) == 0 {
				continue
			}
			setRun(row, x*scale, scale)
		}
		for r := 0; r < scale; r++ {
			copy(dst[off:off+dstStride], row)
			off += dstStride
		}
	}
	return dst
}

// setRun sets n consecutive bits of row starting at bit position start.
func setRun(row []byte, start, n int) {
	for n > 0 {
		bit := start & 7
		width := 8 - bit
		if width > n {
			width = n
		}
		mask := byte(0xFF<<uint(8-width)) >> uint(bit)
		row[start>>3] |= mask
		start += width
		n -= width
	}
}

// ScaleFactor returns the 10-bit fixed-point ratio native/target used by the
// nearest-neighbour path.
//
// The division rounds up, not down. A truncated factor drifts low on exact
// multiples: 12 to 36 gives 341, which maps destination column 3 to source
// column 0 where the replicating fast path uses column 1. Rounding up keeps
// both paths identical; indices past the last source pixel are clamped.
func ScaleFactor(native, target int) int {
	return ((native << fixedShift) + target - 1) / target
}

// resizeNearest samples src with a fixed-point nearest-neighbour mapping.
// It handles any ratio, including downscaling.
func resizeNearest(src []byte, native, target int) []byte {
	dstStride := Stride(target)
	dst := make([]byte, dstStride*target)
	if target <= 0 || native <= 0 {
		return dst
	}
	srcStride := Stride(native)
	factor := ScaleFactor(native, target)

	indices := make([]int, target)
	for i := range indices {
		idx := (i * factor) >> fixedShift
		if idx >= native {
			idx = native - 1
		}
		indices[i] = idx
	}

	for y, sy := range indices {
		line := src[sy*srcStride:]
		out := dst[y*dstStride : (y+1)*dstStride]
		for x, sx := range indices {
			if line[sx>>3]&(0x80>>uint(sx&7)) != 0 {
				out[x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return dst
}

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwulff/bmfont-go/internal/domain"
)

// Common RGB565 colors.
var (
	ColorBlack   = domain.NewRGB(0, 0, 0).To565()
	ColorWhite   = domain.NewRGB(255, 255, 255).To565()
	ColorGray    = domain.NewRGB(128, 128, 128).To565()
	ColorRed     = domain.NewRGB(255, 0, 0).To565()
	ColorGreen   = domain.NewRGB(0, 255, 0).To565()
	ColorBlue    = domain.NewRGB(0, 0, 255).To565()
	ColorYellow  = domain.NewRGB(255, 255, 0).To565()
	ColorOrange  = domain.NewRGB(255, 165, 0).To565()
	ColorCyan    = domain.NewRGB(0, 255, 255).To565()
	ColorMagenta = domain.NewRGB(255, 0, 255).To565()
)

var namedColors = map[string]uint16{
	"black":   ColorBlack,
	"white":   ColorWhite,
	"gray":    ColorGray,
	"grey":    ColorGray,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"yellow":  ColorYellow,
	"orange":  ColorOrange,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
}

// ParseColor reads a color name, a #RRGGBB hex triplet, or a raw RGB565
// value written in decimal or with a 0x prefix.
func ParseColor(s string) (uint16, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return 0, fmt.Errorf("invalid color %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return domain.NewRGB(uint8(v>>16), uint8(v>>8), uint8(v)).To565(), nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint16(v), nil
}

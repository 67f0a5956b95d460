package domain

import "fmt"

// DisplayType represents the kind of panel text is rendered for.
type DisplayType string

const (
	DisplayTypePixoo64 DisplayType = "pixoo64"
	DisplayTypeMono    DisplayType = "mono"
	DisplayTypeRGB565  DisplayType = "rgb565"
)

// DisplaySize represents display dimensions.
type DisplaySize struct {
	Width  int
	Height int
}

// Display describes a target panel.
type Display struct {
	Name string
	Size DisplaySize
	Type DisplayType
}

// NewDisplay creates a new display descriptor.
func NewDisplay(name string, displayType DisplayType, width, height int) *Display {
	return &Display{
		Name: name,
		Type: displayType,
		Size: DisplaySize{
			Width:  width,
			Height: height,
		},
	}
}

// ParseDisplayType checks a display type name.
func ParseDisplayType(s string) (DisplayType, error) {
	switch t := DisplayType(s); t {
	case DisplayTypePixoo64, DisplayTypeMono, DisplayTypeRGB565:
		return t, nil
	}
	return "", fmt.Errorf("unknown display type %q", s)
}

// NewSurface allocates a blank surface matching the display.
func (d *Display) NewSurface() Surface {
	switch d.Type {
	case DisplayTypeMono:
		return NewMonoFrame(d.Size.Width, d.Size.Height)
	case DisplayTypeRGB565:
		return NewPanel565(d.Size.Width, d.Size.Height)
	default:
		return NewFrame(d.Size.Width, d.Size.Height)
	}
}

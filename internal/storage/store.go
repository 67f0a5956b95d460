// Package storage provides the font catalog and render settings store.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jwulff/bmfont-go/internal/domain"
)

// Store is the interface for persistent storage.
type Store interface {
	// Font catalog
	SaveFont(ctx context.Context, font *Font, glyphs []Glyph) error
	GetFont(ctx context.Context, name string) (*Font, error)
	GetFonts(ctx context.Context) ([]*Font, error)
	GetGlyphs(ctx context.Context, fontName string) ([]Glyph, error)
	GetGlyph(ctx context.Context, fontName string, code rune) (*Glyph, error)
	DeleteFont(ctx context.Context, name string) error

	// Render presets
	SavePreset(ctx context.Context, preset *domain.Preset) error
	GetPreset(ctx context.Context, name string) (*domain.Preset, error)
	GetPresets(ctx context.Context) ([]*domain.Preset, error)
	DeletePreset(ctx context.Context, name string) error

	// Frame cache
	CacheFrame(ctx context.Context, frame *CachedFrame) error
	GetCachedFrame(ctx context.Context) (*CachedFrame, error)

	// Configuration
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error

	// Device management
	SaveDevice(ctx context.Context, device *Device) error
	GetDevice(ctx context.Context, id string) (*Device, error)
	GetDevices(ctx context.Context) ([]*Device, error)
	DeleteDevice(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// Font describes a font held in the catalog.
type Font struct {
	ID            int64
	Name          string
	NativeSize    int
	GlyphByteSize int
	GlyphCount    int
	ImportedAt    time.Time
}

// Glyph is one catalog bitmap. Slot is the glyph's position in the font
// the catalog entry was imported from.
type Glyph struct {
	Code   rune
	Slot   int
	Bitmap []byte
}

// CachedFrame is the last frame pushed to a device.
type CachedFrame struct {
	Width       int
	Height      int
	FrameData   []byte
	GeneratedAt time.Time
}

// Device represents a stored Pixoo device.
type Device struct {
	ID        string
	IP        string
	Name      string
	Type      string
	CreatedAt time.Time
	LastSeen  time.Time
}

// NewDevice creates a new device record.
func NewDevice(id, ip, name, deviceType string) *Device {
	now := time.Now()
	return &Device{
		ID:        id,
		IP:        ip,
		Name:      name,
		Type:      deviceType,
		CreatedAt: now,
		LastSeen:  now,
	}
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is, or wraps, a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

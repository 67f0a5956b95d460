// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/jwulff/bmfont-go/internal/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Font methods

// SaveFont stores a font and its glyphs, replacing a font with the same name.
func (s *Store) SaveFont(ctx context.Context, font *storage.Font, glyphs []storage.Glyph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteFont(ctx, tx, font.Name); err != nil {
		return err
	}
	if font.ImportedAt.IsZero() {
		font.ImportedAt = time.Now()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO fonts (name, native_size, glyph_byte_size, glyph_count, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`, font.Name, font.NativeSize, font.GlyphByteSize, len(glyphs), font.ImportedAt)
	if err != nil {
		return fmt.Errorf("failed to insert font: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO glyphs (font_id, code, slot, bitmap) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range glyphs {
		if len(g.Bitmap) != font.GlyphByteSize {
			return fmt.Errorf("glyph U+%04X has %d bytes, want %d", g.Code, len(g.Bitmap), font.GlyphByteSize)
		}
		if _, err := stmt.ExecContext(ctx, id, int64(g.Code), g.Slot, g.Bitmap); err != nil {
			return fmt.Errorf("failed to insert glyph U+%04X: %w", g.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	font.ID = id
	font.GlyphCount = len(glyphs)
	return nil
}

func deleteFont(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM glyphs WHERE font_id IN (SELECT id FROM fonts WHERE name = ?)
	`, name); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DELETE FROM fonts WHERE name = ?", name)
	return err
}

const fontColumns = "id, name, native_size, glyph_byte_size, glyph_count, imported_at"

func scanFont(row interface{ Scan(...any) error }) (*storage.Font, error) {
	var font storage.Font
	err := row.Scan(&font.ID, &font.Name, &font.NativeSize, &font.GlyphByteSize, &font.GlyphCount, &font.ImportedAt)
	if err != nil {
		return nil, err
	}
	return &font, nil
}

func (s *Store) GetFont(ctx context.Context, name string) (*storage.Font, error) {
	font, err := scanFont(s.db.QueryRowContext(ctx, "SELECT "+fontColumns+" FROM fonts WHERE name = ?", name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "font", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return font, nil
}

func (s *Store) GetFonts(ctx context.Context) ([]*storage.Font, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+fontColumns+" FROM fonts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fonts []*storage.Font
	for rows.Next() {
		font, err := scanFont(rows)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, font)
	}
	return fonts, rows.Err()
}

// GetGlyphs returns every glyph of a font in slot order.
func (s *Store) GetGlyphs(ctx context.Context, fontName string) ([]storage.Glyph, error) {
	font, err := s.GetFont(ctx, fontName)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, slot, bitmap FROM glyphs WHERE font_id = ? ORDER BY slot
	`, font.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	glyphs := make([]storage.Glyph, 0, font.GlyphCount)
	for rows.Next() {
		var g storage.Glyph
		var code int64
		if err := rows.Scan(&code, &g.Slot, &g.Bitmap); err != nil {
			return nil, err
		}
		g.Code = rune(code)
		glyphs = append(glyphs, g)
	}
	return glyphs, rows.Err()
}

func (s *Store) GetGlyph(ctx context.Context, fontName string, code rune) (*storage.Glyph, error) {
	g := storage.Glyph{Code: code}
	err := s.db.QueryRowContext(ctx, `
		SELECT g.slot, g.bitmap FROM glyphs g JOIN fonts f ON f.id = g.font_id
		WHERE f.name = ? AND g.code = ?
	`, fontName, int64(code)).Scan(&g.Slot, &g.Bitmap)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "glyph", ID: fmt.Sprintf("%s U+%04X", fontName, code)}
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) DeleteFont(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteFont(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

// Preset methods

func (s *Store) SavePreset(ctx context.Context, preset *domain.Preset) error {
	settings, err := json.Marshal(preset.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO presets (name, settings, updated_at)
		VALUES (?, ?, ?)
	`, preset.Name, string(settings), time.Now())
	return err
}

func (s *Store) GetPreset(ctx context.Context, name string) (*domain.Preset, error) {
	var settings string
	err := s.db.QueryRowContext(ctx, "SELECT settings FROM presets WHERE name = ?", name).Scan(&settings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "preset", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return decodePreset(name, settings)
}

func (s *Store) GetPresets(ctx context.Context) ([]*domain.Preset, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, settings FROM presets ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*domain.Preset
	for rows.Next() {
		var name, settings string
		if err := rows.Scan(&name, &settings); err != nil {
			return nil, err
		}
		preset, err := decodePreset(name, settings)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, rows.Err()
}

func decodePreset(name, settings string) (*domain.Preset, error) {
	preset := domain.NewPreset(name)
	if err := json.Unmarshal([]byte(settings), &preset.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return preset, nil
}

func (s *Store) DeletePreset(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE name = ?", name)
	return err
}

// Device methods

func (s *Store) SaveDevice(ctx context.Context, device *storage.Device) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO devices (id, ip, name, type, created_at, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
	`, device.ID, device.IP, device.Name, device.Type, device.CreatedAt, device.LastSeen)
	return err
}

func (s *Store) GetDevice(ctx context.Context, id string) (*storage.Device, error) {
	var device storage.Device
	err := s.db.QueryRowContext(ctx, `
		SELECT id, ip, name, type, created_at, last_seen FROM devices WHERE id = ?
	`, id).Scan(&device.ID, &device.IP, &device.Name, &device.Type, &device.CreatedAt, &device.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "device", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *Store) GetDevices(ctx context.Context) ([]*storage.Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ip, name, type, created_at, last_seen FROM devices ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []*storage.Device
	for rows.Next() {
		var device storage.Device
		if err := rows.Scan(&device.ID, &device.IP, &device.Name, &device.Type, &device.CreatedAt, &device.LastSeen); err != nil {
			return nil, err
		}
		devices = append(devices, &device)
	}
	return devices, rows.Err()
}

func (s *Store) DeleteDevice(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id)
	return err
}

// Frame cache methods

func (s *Store) CacheFrame(ctx context.Context, frame *storage.CachedFrame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO frame_cache (id, width, height, frame_data, generated_at)
		VALUES (1, ?, ?, ?, ?)
	`, frame.Width, frame.Height, frame.FrameData, frame.GeneratedAt)
	return err
}

func (s *Store) GetCachedFrame(ctx context.Context) (*storage.CachedFrame, error) {
	var frame storage.CachedFrame
	err := s.db.QueryRowContext(ctx, `
		SELECT width, height, frame_data, generated_at FROM frame_cache WHERE id = 1
	`).Scan(&frame.Width, &frame.Height, &frame.FrameData, &frame.GeneratedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{Resource: "frame_cache", ID: "1"}
	}
	if err != nil {
		return nil, err
	}
	return &frame, nil
}

// Config methods

func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound{Resource: "config", ID: key}
	}
	return value, err
}

func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO config (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now())
	return err
}

func (s *Store) DeleteConfig(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM config WHERE key = ?", key)
	return err
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)

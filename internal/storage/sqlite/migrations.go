package sqlite

// schema contains the database schema DDL.
const schema = `
-- Fonts
CREATE TABLE IF NOT EXISTS fonts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    native_size INTEGER NOT NULL,
    glyph_byte_size INTEGER NOT NULL,
    glyph_count INTEGER NOT NULL DEFAULT 0,
    imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Glyph bitmaps, one row per code point
CREATE TABLE IF NOT EXISTS glyphs (
    font_id INTEGER NOT NULL REFERENCES fonts(id),
    code INTEGER NOT NULL,
    slot INTEGER NOT NULL,
    bitmap BLOB NOT NULL,
    PRIMARY KEY (font_id, code)
);
CREATE INDEX IF NOT EXISTS idx_glyphs_font_slot ON glyphs(font_id, slot);

-- Render presets
CREATE TABLE IF NOT EXISTS presets (
    name TEXT PRIMARY KEY,
    settings TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Devices
CREATE TABLE IF NOT EXISTS devices (
    id TEXT PRIMARY KEY,
    ip TEXT NOT NULL,
    name TEXT,
    type TEXT DEFAULT 'pixoo64',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    last_seen DATETIME
);

-- Configuration
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Frame cache
CREATE TABLE IF NOT EXISTS frame_cache (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    frame_data BLOB NOT NULL,
    generated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

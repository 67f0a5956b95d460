package domain

import "encoding/json"

// Preset is a named set of render settings, stored so a layout can be
// reproduced later.
type Preset struct {
	Name     string
	Settings map[string]any
}

// NewPreset creates an empty preset.
func NewPreset(name string) *Preset {
	return &Preset{Name: name, Settings: map[string]any{}}
}

// Set stores a setting.
func (p *Preset) Set(key string, value any) {
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}
	p.Settings[key] = value
}

// GetString returns a string setting or the default value.
func (p Preset) GetString(key, defaultValue string) string {
	if p.Settings == nil {
		return defaultValue
	}
	if val, ok := p.Settings[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt returns an int setting or the default value.
func (p Preset) GetInt(key string, defaultValue int) int {
	if p.Settings == nil {
		return defaultValue
	}
	if val, ok := p.Settings[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return defaultValue
}

// GetBool returns a bool setting or the default value.
func (p Preset) GetBool(key string, defaultValue bool) bool {
	if p.Settings == nil {
		return defaultValue
	}
	if b, ok := p.Settings[key].(bool); ok {
		return b
	}
	return defaultValue
}

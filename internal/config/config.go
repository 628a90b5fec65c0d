package config

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default/*.toml
var configFS embed.FS

// Current is the configuration the process runs with. It starts as the
// embedded defaults; cmd/wndkit overlays the user file on top.
var Current = loadDefaultConfig()

type Config struct {
	Resize ResizeConfig `toml:"resize"`
	Window WindowConfig `toml:"window"`
	UI     UIConfig     `toml:"ui"`
	Keys   KeysConfig   `toml:"keys"`
	Log    LogConfig    `toml:"log"`
}

type ResizeConfig struct {
	MinWidth    int     `toml:"min_width"`
	MinHeight   int     `toml:"min_height"`
	CornerOnly  bool    `toml:"corner_only"`
	HandleWidth int     `toml:"handle_width"`
	AspectRatio float64 `toml:"aspect_ratio"`
}

type WindowConfig struct {
	TitleBarHeight int `toml:"titlebar_height"`
	DefaultWidth   int `toml:"default_width"`
	DefaultHeight  int `toml:"default_height"`
	// Cascade is the offset between the origins of consecutively opened
	// windows.
	Cascade int `toml:"cascade"`
}

type UIConfig struct {
	Theme  ThemeConfig      `toml:"theme"`
	Border string           `toml:"border"`
	Colors map[string]Color `toml:"colors"`
}

// ThemeConfig accepts either a single theme name or a table with separate
// dark and light names.
type ThemeConfig struct {
	Dark  string `toml:"dark"`
	Light string `toml:"light"`
}

func (t *ThemeConfig) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		t.Dark, t.Light = v, v
	case map[string]any:
		for key, raw := range v {
			name, ok := raw.(string)
			if !ok {
				return fmt.Errorf("theme %s: expected string, got %T", key, raw)
			}
			switch key {
			case "dark":
				t.Dark = name
			case "light":
				t.Light = name
			default:
				return fmt.Errorf("unknown theme key %q", key)
			}
		}
	default:
		return fmt.Errorf("expected theme name or table, got %T", value)
	}
	return nil
}

// Name returns the theme for the terminal background.
func (t ThemeConfig) Name(dark bool) string {
	if dark {
		return t.Dark
	}
	return t.Light
}

type KeysConfig struct {
	Quit             StringList `toml:"quit"`
	NewWindow        StringList `toml:"new_window"`
	CloseWindow      StringList `toml:"close_window"`
	CycleFocus       StringList `toml:"cycle_focus"`
	ToggleCornerOnly StringList `toml:"toggle_corner_only"`
	Menu             StringList `toml:"menu"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// StringList allows TOML values to be specified as a string or array of strings.
type StringList []string

func (l *StringList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = StringList{v}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string in list, got %T", item)
			}
			out = append(out, s)
		}
		*l = StringList(out)
		return nil
	default:
		return fmt.Errorf("expected string or list of strings, got %T", value)
	}
}

// Load decodes data over the current values. Keys missing from data keep
// their previous value.
func (c *Config) Load(data string) error {
	if _, err := toml.Decode(data, c); err != nil {
		return err
	}
	return c.Validate()
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	switch {
	case c.Resize.MinWidth < 0, c.Resize.MinHeight < 0:
		return fmt.Errorf("resize: minimum size must not be negative")
	case c.Resize.HandleWidth < 0:
		return fmt.Errorf("resize: handle_width must not be negative")
	case c.Resize.AspectRatio < 0:
		return fmt.Errorf("resize: aspect_ratio must not be negative")
	case c.Window.TitleBarHeight < 0:
		return fmt.Errorf("window: titlebar_height must not be negative")
	}
	if c.Log.Level != "" {
		level := strings.ToLower(c.Log.Level)
		valid := false
		for _, l := range logLevels {
			valid = valid || l == level
		}
		if !valid {
			return fmt.Errorf("log: unknown level %q", c.Log.Level)
		}
	}
	switch c.UI.Border {
	case "", "normal", "rounded", "thick", "double":
	default:
		return fmt.Errorf("ui: unknown border %q", c.UI.Border)
	}
	return nil
}

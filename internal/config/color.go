package config

import "fmt"

// Color is a style entry. It is written either as a foreground color
// string or as a table of attributes.
type Color struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          *bool  `toml:"bold"`
	Italic        *bool  `toml:"italic"`
	Underline     *bool  `toml:"underline"`
	Strikethrough *bool  `toml:"strikethrough"`
	Reverse       *bool  `toml:"reverse"`
}

func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		*c = Color{}
		for key, raw := range v {
			if err := c.set(key, raw); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("expected color string or table, got %T", value)
	}
}

func (c *Color) set(key string, raw any) error {
	switch key {
	case "fg", "bg":
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("color %s: expected string, got %T", key, raw)
		}
		if key == "fg" {
			c.Fg = s
		} else {
			c.Bg = s
		}
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		return fmt.Errorf("color %s: expected bool, got %T", key, raw)
	}
	switch key {
	case "bold":
		c.Bold = &b
	case "italic":
		c.Italic = &b
	case "underline":
		c.Underline = &b
	case "strikethrough":
		c.Strikethrough = &b
	case "reverse":
		c.Reverse = &b
	default:
		return fmt.Errorf("unknown color attribute %q", key)
	}
	return nil
}
